package interview

import (
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/form"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

const (
	AnswerModeDynamic     = "dynamic"
	AnswerModeTraditional = "traditional"
)

// AnswerService 作答记录。动态与传统两种模式由字段组合判别，
// 两组字段互斥，混填按先到先得取动态。
type AnswerService struct {
	store InterviewStore
	xl    *xlog.Logger
}

func NewAnswerService(xl *xlog.Logger, store InterviewStore) *AnswerService {
	v := new(AnswerService)
	v.xl = xlog.New("answer service")
	v.store = store
	return v
}

// SaveAnswer 追加一条作答，返回该模式下的累计条数与命中的模式。
// 同一题目允许重复作答，历史全部保留。
func (v *AnswerService) SaveAnswer(xl *xlog.Logger, interviewID string, f *form.AnswerForm) (int, string, error) {
	if xl == nil {
		xl = v.xl
	}
	interview, err := v.store.GetInterviewByID(xl, interviewID)
	if err != nil {
		return 0, "", err
	}

	switch {
	case f.Question != "" && f.Answer != "":
		exchange := model.ConversationExchangeDo{
			Question:  f.Question,
			Answer:    f.Answer,
			Duration:  f.Duration,
			Timestamp: time.Now(),
		}
		count, err := v.store.PushExchange(xl, interviewID, exchange)
		if err != nil {
			return 0, "", err
		}
		return count, AnswerModeDynamic, nil

	case f.QuestionID != "" && f.Text != "":
		if !interview.HasQuestion(f.QuestionID) {
			return 0, "", &errors.ServerError{Code: errors.ServerErrorUnknownQuestion, Summary: "question not found"}
		}
		attempt := f.Attempt
		if attempt <= 0 {
			attempt = 1
		}
		answer := model.AnswerDo{
			QuestionID: f.QuestionID,
			Text:       f.Text,
			Attempt:    attempt,
			Duration:   f.Duration,
			Timestamp:  time.Now(),
		}
		count, err := v.store.PushAnswer(xl, interviewID, answer)
		if err != nil {
			return 0, "", err
		}
		return count, AnswerModeTraditional, nil

	default:
		return 0, "", &errors.ServerError{Code: errors.ServerErrorInvalidRequest, Summary: "invalid request format"}
	}
}
