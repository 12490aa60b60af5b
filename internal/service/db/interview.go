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

// InterviewService 面试聚合根的读写。所有状态变更都走单文档原子更新，
// 不依赖外部事务。
type InterviewService struct {
	session             *mgo.Session
	interviewCollection *mgo.Collection
	xl                  *xlog.Logger
}

func NewInterviewService(xl *xlog.Logger, config utils.MongoConfig) *InterviewService {
	v := new(InterviewService)
	v.xl = xlog.New("interview service")
	db, err := mgo.Dial(config.URI)
	if err != nil {
		v.xl.Fatalf("error dialing service error:%v", err)
	}
	err = db.Ping()
	if err != nil {
		v.xl.Fatalf("err ping db error:%v", err)
	}
	v.session = db
	v.interviewCollection = db.DB(config.Database).C(dao.CollectionInterview)
	return v
}

// Ping 健康检查用。
func (v *InterviewService) Ping() error {
	return v.session.Ping()
}

func (v *InterviewService) CreateInterview(xl *xlog.Logger, interview *model.InterviewDo) error {
	if xl == nil {
		xl = v.xl
	}
	if interview.CreateTime.IsZero() {
		interview.CreateTime = time.Now()
	}
	err := v.interviewCollection.Insert(interview)
	if err != nil {
		xl.Errorf("error create interview %s err:%v", interview.ID, err)
		return &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return nil
}

func (v *InterviewService) GetInterviewByID(xl *xlog.Logger, id string) (*model.InterviewDo, error) {
	if xl == nil {
		xl = v.xl
	}
	var interview model.InterviewDo
	err := v.interviewCollection.FindId(id).One(&interview)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
		}
		xl.Errorf("error get interview %s err:%v", id, err)
		return nil, &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return &interview, nil
}

func (v *InterviewService) ListInterviewsByCompany(xl *xlog.Logger, externalCompanyID string) ([]model.InterviewDo, error) {
	if xl == nil {
		xl = v.xl
	}
	interviews := make([]model.InterviewDo, 0)
	err := v.interviewCollection.Find(bson.M{"externalCompanyId": externalCompanyID}).Sort("-scheduledAt").All(&interviews)
	if err != nil {
		xl.Errorf("error list interviews of company %s err:%v", externalCompanyID, err)
		return nil, &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return interviews, nil
}

// ActivateSession 单次登录的核心约束。条件更新保证"检查无活跃token并写入新token"
// 原子完成，两个并发登录至多一个成功。未命中时按已有会话处理，
// 面试是否存在由调用方先行确认。
func (v *InterviewService) ActivateSession(xl *xlog.Logger, id string, token string, loginAt time.Time) error {
	if xl == nil {
		xl = v.xl
	}
	selector := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": model.InterviewStatusCompleted},
		"session.activeToken": bson.M{"$in": []interface{}{"", nil}},
	}
	change := bson.M{
		"$set": bson.M{
			"session.activeToken": token,
			"session.loginAt":     loginAt,
			"status":              model.InterviewStatusInProgress,
		},
		"$inc": bson.M{"session.loginCount": 1},
	}
	err := v.interviewCollection.Update(selector, change)
	if err != nil {
		if err == mgo.ErrNotFound {
			return &errors.ServerError{Code: errors.ServerErrorAlreadyLoggedIn, Summary: "session already active"}
		}
		xl.Errorf("error activate session of interview %s err:%v", id, err)
		return &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return nil
}

// ClearSession 幂等登出。面试不存在也视为成功。
func (v *InterviewService) ClearSession(xl *xlog.Logger, id string) error {
	if xl == nil {
		xl = v.xl
	}
	err := v.interviewCollection.UpdateId(id, bson.M{
		"$set": bson.M{"session.activeToken": ""},
	})
	if err != nil && err != mgo.ErrNotFound {
		xl.Errorf("error clear session of interview %s err:%v", id, err)
		return &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return nil
}

// PushExchange 追加一轮动态问答，返回追加后的轮次总数。
func (v *InterviewService) PushExchange(xl *xlog.Logger, id string, exchange model.ConversationExchangeDo) (int, error) {
	if xl == nil {
		xl = v.xl
	}
	change := mgo.Change{
		Update:    bson.M{"$push": bson.M{"conversationHistory": exchange}},
		ReturnNew: true,
	}
	var updated model.InterviewDo
	_, err := v.interviewCollection.FindId(id).Apply(change, &updated)
	if err != nil {
		if err == mgo.ErrNotFound {
			return 0, &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
		}
		xl.Errorf("error push exchange to interview %s err:%v", id, err)
		return 0, &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return len(updated.ConversationHistory), nil
}

// PushAnswer 追加一条传统模式作答，返回追加后的作答总数。
func (v *InterviewService) PushAnswer(xl *xlog.Logger, id string, answer model.AnswerDo) (int, error) {
	if xl == nil {
		xl = v.xl
	}
	change := mgo.Change{
		Update:    bson.M{"$push": bson.M{"answers": answer}},
		ReturnNew: true,
	}
	var updated model.InterviewDo
	_, err := v.interviewCollection.FindId(id).Apply(change, &updated)
	if err != nil {
		if err == mgo.ErrNotFound {
			return 0, &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
		}
		xl.Errorf("error push answer to interview %s err:%v", id, err)
		return 0, &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return len(updated.Answers), nil
}

func (v *InterviewService) UpdateStatus(xl *xlog.Logger, id string, status model.InterviewStatus, completedAt time.Time) error {
	if xl == nil {
		xl = v.xl
	}
	set := bson.M{"status": status}
	if status == model.InterviewStatusCompleted && !completedAt.IsZero() {
		set["completedAt"] = completedAt
	}
	err := v.interviewCollection.UpdateId(id, bson.M{"$set": set})
	if err != nil {
		if err == mgo.ErrNotFound {
			return &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
		}
		xl.Errorf("error update status of interview %s err:%v", id, err)
		return &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return nil
}

// SaveIncompleteResult 浏览器关闭路径先落一份INCOMPLETE结论，
// 评估稍后异步覆盖。
func (v *InterviewService) SaveIncompleteResult(xl *xlog.Logger, id string, result model.ResultDo) error {
	if xl == nil {
		xl = v.xl
	}
	err := v.interviewCollection.UpdateId(id, bson.M{
		"$set": bson.M{
			"result":      result,
			"status":      model.InterviewStatusCompleted,
			"completedAt": result.CompletedAt,
		},
	})
	if err != nil {
		if err == mgo.ErrNotFound {
			return &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
		}
		xl.Errorf("error save incomplete result of interview %s err:%v", id, err)
		return &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return nil
}

// SaveEvaluation 评估、结论、终态一次写入。
func (v *InterviewService) SaveEvaluation(xl *xlog.Logger, id string, evaluation *model.EvaluationDo, result model.ResultDo) error {
	if xl == nil {
		xl = v.xl
	}
	err := v.interviewCollection.UpdateId(id, bson.M{
		"$set": bson.M{
			"evaluation":  evaluation,
			"result":      result,
			"status":      model.InterviewStatusCompleted,
			"completedAt": result.CompletedAt,
		},
	})
	if err != nil {
		if err == mgo.ErrNotFound {
			return &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
		}
		xl.Errorf("error save evaluation of interview %s err:%v", id, err)
		return &errors.ServerError{Code: errors.ServerErrorMongoOpFail, Summary: err.Error()}
	}
	return nil
}
