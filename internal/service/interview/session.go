package interview

import (
	"crypto/subtle"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/common/utils"
	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

// TokenPurpose token用途声明，防止别处签发的JWT被拿来进面试。
const TokenPurpose = "interview_access"

// SessionService 面试的单次登录会话。一个面试生命周期内activeToken
// 至多激活一次，logout清空后才可再次登录。
type SessionService struct {
	store      InterviewStore
	candidates CandidateStore
	jwtKey     []byte
	conf       utils.SessionConfig
	xl         *xlog.Logger
}

func NewSessionService(xl *xlog.Logger, store InterviewStore, candidates CandidateStore, jwtKey string, conf utils.SessionConfig) *SessionService {
	v := new(SessionService)
	v.xl = xlog.New("session service")
	v.store = store
	v.candidates = candidates
	v.jwtKey = []byte(jwtKey)
	v.conf = conf
	if v.conf.TokenExpireSecond <= 0 {
		v.conf.TokenExpireSecond = 3 * 60 * 60
	}
	return v
}

// Login 前置校验依次为：存在、未过期、未完成、口令正确，之后原子抢占会话。
// 并发登录时条件更新保证至多一个成功。
func (v *SessionService) Login(xl *xlog.Logger, interviewID string, password string) (string, *model.CandidateDo, *model.InterviewDo, error) {
	if xl == nil {
		xl = v.xl
	}
	interview, err := v.store.GetInterviewByID(xl, interviewID)
	if err != nil {
		return "", nil, nil, err
	}
	now := time.Now()
	if interview.Expired(now) {
		return "", nil, nil, &errors.ServerError{Code: errors.ServerErrorInterviewExpired, Summary: "interview link expired"}
	}
	if interview.Status == model.InterviewStatusCompleted {
		return "", nil, nil, &errors.ServerError{Code: errors.ServerErrorAlreadyCompleted, Summary: "interview already completed"}
	}
	if interview.Session.ActiveToken != "" {
		return "", nil, nil, &errors.ServerError{Code: errors.ServerErrorAlreadyLoggedIn, Summary: "session already active"}
	}
	candidate, err := v.candidates.GetCandidateByID(xl, interview.CandidateID)
	if err != nil {
		return "", nil, nil, err
	}
	hash := utils.Sha256Hex(password)
	if candidate.PasswordHash == "" || subtle.ConstantTimeCompare([]byte(candidate.PasswordHash), []byte(hash)) != 1 {
		return "", nil, nil, &errors.ServerError{Code: errors.ServerErrorInvalidCredentials, Summary: "invalid password"}
	}
	token, err := v.signToken(interview.ID, candidate.ID, now)
	if err != nil {
		xl.Errorf("error sign token for interview %s err:%v", interview.ID, err)
		return "", nil, nil, err
	}
	err = v.store.ActivateSession(xl, interview.ID, token, now)
	if err != nil {
		return "", nil, nil, err
	}
	xl.Infof("login successful, session activated for interview %s", interview.ID)
	return token, candidate, interview, nil
}

// Validate 会话校验。token必须是本服务签发的JWT，且与当前存储的
// activeToken一致。logout或顶号后旧token立即失效。
func (v *SessionService) Validate(xl *xlog.Logger, token string) (*model.InterviewDo, error) {
	if xl == nil {
		xl = v.xl
	}
	interviewID, err := v.parseToken(token)
	if err != nil {
		return nil, err
	}
	interview, err := v.store.GetInterviewByID(xl, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Session.ActiveToken == "" || interview.Session.ActiveToken != token {
		return nil, &errors.ServerError{Code: errors.ServerErrorSessionInvalidated, Summary: "session no longer valid"}
	}
	if interview.Status == model.InterviewStatusCompleted {
		return nil, &errors.ServerError{Code: errors.ServerErrorAlreadyCompleted, Summary: "interview already completed"}
	}
	return interview, nil
}

// ResolveByToken 按token取面试详情。JWT解析失败且开启了兜底开关时，
// 把token当作裸的面试ID再查一次。
func (v *SessionService) ResolveByToken(xl *xlog.Logger, token string) (*model.InterviewDo, error) {
	if xl == nil {
		xl = v.xl
	}
	interviewID, err := v.parseToken(token)
	if err != nil {
		if !v.conf.AllowInterviewIDFallback {
			return nil, err
		}
		xl.Debugf("jwt validation failed, trying direct interview id")
		interviewID = token
	}
	interview, err := v.store.GetInterviewByID(xl, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status == model.InterviewStatusCompleted {
		return nil, &errors.ServerError{Code: errors.ServerErrorAlreadyCompleted, Summary: "interview already completed"}
	}
	return interview, nil
}

// Logout 幂等清空会话，面试不存在也不算失败。
func (v *SessionService) Logout(xl *xlog.Logger, interviewID string) error {
	if xl == nil {
		xl = v.xl
	}
	err := v.store.ClearSession(xl, interviewID)
	if err != nil {
		return err
	}
	xl.Infof("session cleared: %s", interviewID)
	return nil
}

func (v *SessionService) signToken(interviewID, candidateID string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"interviewId": interviewID,
		"candidateId": candidateID,
		"type":        TokenPurpose,
		"loginAt":     now.Format(time.RFC3339),
		"exp":         now.Add(time.Duration(v.conf.TokenExpireSecond) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.jwtKey)
	if err != nil {
		return "", &errors.ServerError{Code: errors.ServerErrorSessionInvalidated, Summary: err.Error()}
	}
	return signed, nil
}

func (v *SessionService) parseToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &errors.ServerError{Code: errors.ServerErrorSessionInvalidated, Summary: "unexpected signing method"}
		}
		return v.jwtKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", &errors.ServerError{Code: errors.ServerErrorSessionInvalidated, Summary: "invalid or expired token"}
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", &errors.ServerError{Code: errors.ServerErrorSessionInvalidated, Summary: "invalid token claims"}
	}
	if purpose, _ := claims["type"].(string); purpose != TokenPurpose {
		return "", &errors.ServerError{Code: errors.ServerErrorSessionInvalidated, Summary: "wrong token purpose"}
	}
	interviewID, _ := claims["interviewId"].(string)
	if interviewID == "" {
		return "", &errors.ServerError{Code: errors.ServerErrorSessionInvalidated, Summary: "token missing interview id"}
	}
	return interviewID, nil
}
