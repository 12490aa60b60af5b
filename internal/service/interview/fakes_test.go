package interview

import (
	"context"
	"sync"
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

// fakeStore 内存版InterviewStore，条件更新语义与mongo实现保持一致。
type fakeStore struct {
	mu         sync.Mutex
	interviews map[string]*model.InterviewDo
	candidates map[string]*model.CandidateDo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		interviews: make(map[string]*model.InterviewDo),
		candidates: make(map[string]*model.CandidateDo),
	}
}

func (s *fakeStore) put(interview *model.InterviewDo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *interview
	s.interviews[interview.ID] = &clone
}

func (s *fakeStore) get(id string) *model.InterviewDo {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *s.interviews[id]
	return &clone
}

func (s *fakeStore) CreateInterview(xl *xlog.Logger, interview *model.InterviewDo) error {
	s.put(interview)
	return nil
}

func (s *fakeStore) GetInterviewByID(xl *xlog.Logger, id string) (*model.InterviewDo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	interview, ok := s.interviews[id]
	if !ok {
		return nil, &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
	}
	clone := *interview
	return &clone, nil
}

func (s *fakeStore) ListInterviewsByCompany(xl *xlog.Logger, externalCompanyID string) ([]model.InterviewDo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]model.InterviewDo, 0)
	for _, interview := range s.interviews {
		if interview.ExternalCompanyID == externalCompanyID {
			list = append(list, *interview)
		}
	}
	return list, nil
}

func (s *fakeStore) ActivateSession(xl *xlog.Logger, id string, token string, loginAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	interview, ok := s.interviews[id]
	if !ok || interview.Status == model.InterviewStatusCompleted || interview.Session.ActiveToken != "" {
		return &errors.ServerError{Code: errors.ServerErrorAlreadyLoggedIn, Summary: "session already active"}
	}
	interview.Session.ActiveToken = token
	interview.Session.LoginAt = loginAt
	interview.Session.LoginCount++
	interview.Status = model.InterviewStatusInProgress
	return nil
}

func (s *fakeStore) ClearSession(xl *xlog.Logger, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if interview, ok := s.interviews[id]; ok {
		interview.Session.ActiveToken = ""
	}
	return nil
}

func (s *fakeStore) PushExchange(xl *xlog.Logger, id string, exchange model.ConversationExchangeDo) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	interview, ok := s.interviews[id]
	if !ok {
		return 0, &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
	}
	interview.ConversationHistory = append(interview.ConversationHistory, exchange)
	return len(interview.ConversationHistory), nil
}

func (s *fakeStore) PushAnswer(xl *xlog.Logger, id string, answer model.AnswerDo) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	interview, ok := s.interviews[id]
	if !ok {
		return 0, &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
	}
	interview.Answers = append(interview.Answers, answer)
	return len(interview.Answers), nil
}

func (s *fakeStore) UpdateStatus(xl *xlog.Logger, id string, status model.InterviewStatus, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	interview, ok := s.interviews[id]
	if !ok {
		return &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
	}
	interview.Status = status
	if status == model.InterviewStatusCompleted && !completedAt.IsZero() {
		interview.CompletedAt = completedAt
	}
	return nil
}

func (s *fakeStore) SaveIncompleteResult(xl *xlog.Logger, id string, result model.ResultDo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	interview, ok := s.interviews[id]
	if !ok {
		return &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
	}
	interview.Result = result
	interview.Status = model.InterviewStatusCompleted
	interview.CompletedAt = result.CompletedAt
	return nil
}

func (s *fakeStore) SaveEvaluation(xl *xlog.Logger, id string, evaluation *model.EvaluationDo, result model.ResultDo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	interview, ok := s.interviews[id]
	if !ok {
		return &errors.ServerError{Code: errors.ServerErrorInterviewNotFound, Summary: "interview not found"}
	}
	interview.Evaluation = evaluation
	interview.Result = result
	interview.Status = model.InterviewStatusCompleted
	interview.CompletedAt = result.CompletedAt
	return nil
}

func (s *fakeStore) GetCandidateByID(xl *xlog.Logger, id string) (*model.CandidateDo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate, ok := s.candidates[id]
	if !ok {
		return nil, &errors.ServerError{Code: errors.ServerErrorCandidateNotFound, Summary: "candidate not found"}
	}
	clone := *candidate
	return &clone, nil
}

func (s *fakeStore) UpsertCandidate(xl *xlog.Logger, candidate *model.CandidateDo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *candidate
	s.candidates[candidate.ID] = &clone
	return nil
}

func (s *fakeStore) SetPasswordHash(xl *xlog.Logger, id string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate, ok := s.candidates[id]
	if !ok {
		return &errors.ServerError{Code: errors.ServerErrorCandidateNotFound, Summary: "candidate not found"}
	}
	candidate.PasswordHash = passwordHash
	return nil
}

// fakeCompletion 按脚本吐出生成结果并记录收到的prompt。
type fakeCompletion struct {
	mu      sync.Mutex
	outputs []string
	prompts []string
	err     error
}

func (f *fakeCompletion) GenerateText(ctx context.Context, xl *xlog.Logger, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.outputs) == 0 {
		return "", &errors.ServerError{Code: errors.ServerErrorGenerationFailed, Summary: "no scripted output"}
	}
	out := f.outputs[0]
	f.outputs = f.outputs[1:]
	return out, nil
}

func (f *fakeCompletion) promptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeCompletion) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}
