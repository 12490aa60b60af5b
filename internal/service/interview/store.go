package interview

import (
	"context"
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/protodef/model"
)

// InterviewStore 面试聚合根的持久化依赖。db.InterviewService为生产实现，
// 测试用内存实现替代。
type InterviewStore interface {
	CreateInterview(xl *xlog.Logger, interview *model.InterviewDo) error
	GetInterviewByID(xl *xlog.Logger, id string) (*model.InterviewDo, error)
	ListInterviewsByCompany(xl *xlog.Logger, externalCompanyID string) ([]model.InterviewDo, error)
	ActivateSession(xl *xlog.Logger, id string, token string, loginAt time.Time) error
	ClearSession(xl *xlog.Logger, id string) error
	PushExchange(xl *xlog.Logger, id string, exchange model.ConversationExchangeDo) (int, error)
	PushAnswer(xl *xlog.Logger, id string, answer model.AnswerDo) (int, error)
	UpdateStatus(xl *xlog.Logger, id string, status model.InterviewStatus, completedAt time.Time) error
	SaveIncompleteResult(xl *xlog.Logger, id string, result model.ResultDo) error
	SaveEvaluation(xl *xlog.Logger, id string, evaluation *model.EvaluationDo, result model.ResultDo) error
}

// CandidateStore 候选人表的持久化依赖。
type CandidateStore interface {
	GetCandidateByID(xl *xlog.Logger, id string) (*model.CandidateDo, error)
	UpsertCandidate(xl *xlog.Logger, candidate *model.CandidateDo) error
	SetPasswordHash(xl *xlog.Logger, id string, passwordHash string) error
}

// Completion 文本生成依赖。cloud.CompletionService为生产实现。
type Completion interface {
	GenerateText(ctx context.Context, xl *xlog.Logger, prompt string) (string, error)
}
