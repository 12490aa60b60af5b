package db

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/ai-interview/internal/common/utils"
	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/model"
	"github.com/solutions/ai-interview/internal/service/db/dao"
)

// CandidateService 候选人表的读写。
type CandidateService struct {
	candidateCollection *mgo.Collection
	xl                  *xlog.Logger
}

func NewCandidateService(xl *xlog.Logger, config utils.MongoConfig) *CandidateService {
	v := new(CandidateService)
	v.xl = xlog.New("candidate service")
	db, err := mgo.Dial(config.URI)
	if err != nil {
		v.xl.Fatalf("error dialing service error:%v", err)
	}
	err = db.Ping()
	if err != nil {
		v.xl.Fatalf("err ping db error:%v", err)
	}
	v.candidateCollection = db.DB(config.Database).C(dao.CollectionCandidate)
	return v
}

func (v *CandidateService) GetCandidateByID(xl *xlog.Logger, id string) (*model.CandidateDo, error) {
	if xl == nil {
		xl = v.xl
	}
	var candidate model.CandidateDo
	err := v.candidateCollection.FindId(id).One(&candidate)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, &errors.ServerError{Code: errors.ServerErrorCandidateNotFound, Summary: "candidate not found"}
		}
		xl.Errorf("error get candidate %s err:%v", id, err)
		return nil, &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return &candidate, nil
}

// UpsertCandidate 按ID覆盖写入，profile字段以对接方最新传入为准。
func (v *CandidateService) UpsertCandidate(xl *xlog.Logger, candidate *model.CandidateDo) error {
	if xl == nil {
		xl = v.xl
	}
	now := time.Now()
	candidate.UpdateTime = now
	_, err := v.candidateCollection.UpsertId(candidate.ID, bson.M{
		"$set": bson.M{
			"email":        candidate.Email,
			"name":         candidate.Name,
			"passwordHash": candidate.PasswordHash,
			"updateTime":   candidate.UpdateTime,
		},
		"$setOnInsert": bson.M{
			"registerTime": now,
		},
	})
	if err != nil {
		xl.Errorf("error upsert candidate %s err:%v", candidate.ID, err)
		return &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return nil
}

// SetPasswordHash 每次创建面试都会为候选人换发新的临时口令。
func (v *CandidateService) SetPasswordHash(xl *xlog.Logger, id string, passwordHash string) error {
	if xl == nil {
		xl = v.xl
	}
	err := v.candidateCollection.UpdateId(id, bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"updateTime":   time.Now(),
		},
	})
	if err != nil {
		if err == mgo.ErrNotFound {
			return &errors.ServerError{Code: errors.ServerErrorCandidateNotFound, Summary: "candidate not found"}
		}
		xl.Errorf("error set password hash for candidate %s err:%v", id, err)
		return &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return nil
}
