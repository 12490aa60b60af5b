package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/protodef/model"
)

const (
	// MaxExchanges 动态面试的轮次上限，达到后不再出题。
	MaxExchanges = 15

	// CompleteSentinel 模型宣告面试结束的哨兵值。
	CompleteSentinel = "INTERVIEW_COMPLETE"

	// duplicatePrefixLen 查重时取新题面的前若干字符做子串匹配。
	duplicatePrefixLen = 50

	completeMessage = "Interview complete."
)

// ConversationService 动态模式的问答推进。
type ConversationService struct {
	store      InterviewStore
	completion Completion
	xl         *xlog.Logger
}

func NewConversationService(xl *xlog.Logger, store InterviewStore, completion Completion) *ConversationService {
	v := new(ConversationService)
	v.xl = xlog.New("conversation service")
	v.store = store
	v.completion = completion
	return v
}

// NextQuestion 生成下一问。轮次上限先于模型调用判断，
// 哨兵值与上限都以isComplete收尾。重复题面触发一次重生成，
// 重生成结果不再查重。
func (v *ConversationService) NextQuestion(ctx context.Context, xl *xlog.Logger, interviewID string, lastAnswer string, isFirstQuestion bool) (*model.NextQuestionResponse, error) {
	if xl == nil {
		xl = v.xl
	}
	interview, err := v.store.GetInterviewByID(xl, interviewID)
	if err != nil {
		return nil, err
	}
	history := interview.ConversationHistory
	if len(history) >= MaxExchanges {
		xl.Infof("interview %s reached %d exchanges, complete", interviewID, len(history))
		return &model.NextQuestionResponse{IsComplete: true, Message: completeMessage}, nil
	}

	prompt := buildQuestionPrompt(interview, history, lastAnswer, isFirstQuestion)
	question, err := v.completion.GenerateText(ctx, xl, prompt)
	if err != nil {
		return nil, err
	}
	question = strings.TrimSpace(question)
	if question == CompleteSentinel {
		return &model.NextQuestionResponse{IsComplete: true, Message: completeMessage}, nil
	}

	if isDuplicateQuestion(history, question) {
		xl.Infof("duplicate question detected for interview %s, regenerating", interviewID)
		retry, err := v.completion.GenerateText(ctx, xl, prompt+"\nGenerate a different question.")
		if err != nil {
			return nil, err
		}
		question = strings.TrimSpace(retry)
	}

	return &model.NextQuestionResponse{
		Question:       question,
		QuestionNumber: len(history) + 1,
	}, nil
}

func buildQuestionPrompt(interview *model.InterviewDo, history []model.ConversationExchangeDo, lastAnswer string, isFirstQuestion bool) string {
	if isFirstQuestion {
		return fmt.Sprintf(`You are a Professional AI Interviewer conducting an interview for: %s

Required Skills: %s
Experience Level: %d years

Your task:
Start the interview with a simple introduction question asking the candidate to introduce themselves.

Return only the question text without any explanation.`,
			interview.Role, strings.Join(interview.Skills, ", "), interview.Experience)
	}

	lines := make([]string, 0, len(history))
	for i, item := range history {
		lines = append(lines, fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, item.Question, i+1, item.Answer))
	}
	return fmt.Sprintf(`You are an AI interviewer for: %s (%d years experience)

Rules:
- Generate one unique question
- No repetition
- Adjust question difficulty based on last answer
- Keep it short and clear

Conversation so far:
%s

Candidate's last answer:
%s

Generate the next question. If interview is complete return only: %s`,
		interview.Role, interview.Experience, strings.Join(lines, "\n\n"), lastAnswer, CompleteSentinel)
}

// isDuplicateQuestion 新题面的小写前缀在任何历史题面中出现即视为重复。
func isDuplicateQuestion(history []model.ConversationExchangeDo, question string) bool {
	prefix := strings.ToLower(question)
	if runes := []rune(prefix); len(runes) > duplicatePrefixLen {
		prefix = string(runes[:duplicatePrefixLen])
	}
	if prefix == "" {
		return false
	}
	for _, item := range history {
		if strings.Contains(strings.ToLower(item.Question), prefix) {
			return true
		}
	}
	return false
}
