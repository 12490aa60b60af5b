package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/qiniu/x/xlog"
	"github.com/tidwall/gjson"

	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/form"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

// PassScoreThreshold 综合得分达到该值判PASS，否则FAIL。
const PassScoreThreshold = 75

// minTranscriptLen 评估文本必须超过该长度才有评估价值。
const minTranscriptLen = 50

// minValidAnswerLen 动态模式下短于该长度的回答不计入评估。
const minValidAnswerLen = 10

// EvaluationService 面试评估。违规与中途退出走固定结论，
// 正常结束交给模型打分。
type EvaluationService struct {
	store      InterviewStore
	completion Completion
	xl         *xlog.Logger
}

func NewEvaluationService(xl *xlog.Logger, store InterviewStore, completion Completion) *EvaluationService {
	v := new(EvaluationService)
	v.xl = xlog.New("evaluation service")
	v.store = store
	v.completion = completion
	return v
}

// Evaluate 产出评估与终局结论并落库，面试随之进入终态。
// 重复调用会覆盖上一次的评估结果。
func (v *EvaluationService) Evaluate(ctx context.Context, xl *xlog.Logger, interviewID string, f *form.EvaluateForm) (*model.EvaluationDo, *model.ResultDo, error) {
	if xl == nil {
		xl = v.xl
	}
	interview, err := v.store.GetInterviewByID(xl, interviewID)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()

	if f.IsFailed {
		evaluation := &model.EvaluationDo{
			OverallScore:   0,
			Answers:        []model.AnswerEvaluationDo{},
			Strengths:      []string{},
			Weaknesses:     []string{"Failed to maintain focus"},
			Summary:        "Interview terminated due to violations.",
			Recommendation: string(model.RecommendationFail),
			EvaluatedAt:    now,
		}
		result := model.ResultDo{
			Status:             model.ResultStatusFail,
			Reason:             "Security violations",
			TabWarnings:        f.TabWarnings,
			FullscreenWarnings: f.FullscreenWarnings,
			CompletedAt:        now,
		}
		if err := v.store.SaveEvaluation(xl, interviewID, evaluation, result); err != nil {
			return nil, nil, err
		}
		return evaluation, &result, nil
	}

	if f.IsIncomplete {
		evaluation := &model.EvaluationDo{
			OverallScore:   0,
			Answers:        []model.AnswerEvaluationDo{},
			Strengths:      []string{},
			Weaknesses:     []string{"Interview not completed"},
			Summary:        "Interview was closed early.",
			Recommendation: string(model.RecommendationIncomplete),
			EvaluatedAt:    now,
		}
		result := model.ResultDo{
			Status:             model.ResultStatusIncomplete,
			Reason:             "Closed early",
			TabWarnings:        f.TabWarnings,
			FullscreenWarnings: f.FullscreenWarnings,
			CompletedAt:        now,
		}
		if err := v.store.SaveEvaluation(xl, interviewID, evaluation, result); err != nil {
			return nil, nil, err
		}
		return evaluation, &result, nil
	}

	transcript, err := buildTranscript(interview)
	if err != nil {
		return nil, nil, err
	}

	prompt := fmt.Sprintf(`You are an interview evaluator. Evaluate the following interview for a %s position requiring %d years experience.

Required Skills: %s

Interview Responses:
%s

Return evaluation in valid JSON format with these fields:
- overallScore (number 0-100)
- answers (array of objects with: question, score, feedback)
- strengths (array of strings)
- weaknesses (array of strings)
- summary (string)
- recommendation (string: PASS/FAIL)`,
		interview.Role, interview.Experience, strings.Join(interview.Skills, ", "), transcript)

	responseText, err := v.completion.GenerateText(ctx, xl, prompt)
	if err != nil {
		return nil, nil, err
	}

	raw, err := extractJSONObject(responseText)
	if err != nil {
		xl.Errorf("malformed evaluation response: %.200s", responseText)
		return nil, nil, err
	}
	var payload struct {
		OverallScore   float64                    `json:"overallScore"`
		Answers        []model.AnswerEvaluationDo `json:"answers"`
		Strengths      []string                   `json:"strengths"`
		Weaknesses     []string                   `json:"weaknesses"`
		Summary        string                     `json:"summary"`
		Recommendation string                     `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		xl.Errorf("error parse evaluation json err:%v", err)
		return nil, nil, &errors.ServerError{Code: errors.ServerErrorMalformedEvaluation, Summary: err.Error()}
	}

	evaluation := &model.EvaluationDo{
		OverallScore:   payload.OverallScore,
		Answers:        payload.Answers,
		Strengths:      payload.Strengths,
		Weaknesses:     payload.Weaknesses,
		Summary:        payload.Summary,
		Recommendation: payload.Recommendation,
		EvaluatedAt:    now,
	}
	status := model.ResultStatusFail
	if payload.OverallScore >= PassScoreThreshold {
		status = model.ResultStatusPass
	}
	result := model.ResultDo{
		Status:             status,
		Reason:             "Auto-evaluated",
		TabWarnings:        f.TabWarnings,
		FullscreenWarnings: f.FullscreenWarnings,
		CompletedAt:        now,
	}
	if err := v.store.SaveEvaluation(xl, interviewID, evaluation, result); err != nil {
		return nil, nil, err
	}
	xl.Infof("interview %s evaluated, score %.1f verdict %s", interviewID, payload.OverallScore, status)
	return evaluation, &result, nil
}

// buildTranscript 动态模式优先。动态轮次存在时只看对话历史，
// 否则回退到传统作答。
func buildTranscript(interview *model.InterviewDo) (string, error) {
	isDynamic := len(interview.ConversationHistory) > 0
	isTraditional := len(interview.Answers) > 0
	if !isDynamic && !isTraditional {
		return "", &errors.ServerError{Code: errors.ServerErrorNoAnswers, Summary: "no answers to evaluate"}
	}

	var lines []string
	if isDynamic {
		idx := 0
		for _, item := range interview.ConversationHistory {
			answer := strings.TrimSpace(item.Answer)
			if len([]rune(answer)) <= minValidAnswerLen {
				continue
			}
			idx++
			lines = append(lines, fmt.Sprintf("Q%d: %s\nA%d: %s (%ds)", idx, item.Question, idx, answer, item.Duration))
		}
		if len(lines) == 0 {
			return "", &errors.ServerError{Code: errors.ServerErrorNoValidAnswers, Summary: "no valid answers to evaluate"}
		}
	} else {
		for i, answer := range interview.Answers {
			lines = append(lines, fmt.Sprintf("Q%d: %s\nA%d: %s (%ds)",
				i+1, interview.QuestionText(answer.QuestionID), i+1, answer.Text, answer.Duration))
		}
	}

	transcript := strings.Join(lines, "\n\n")
	if len([]rune(strings.TrimSpace(transcript))) <= minTranscriptLen {
		return "", &errors.ServerError{Code: errors.ServerErrorInsufficientContent, Summary: "insufficient content to evaluate"}
	}
	return transcript, nil
}

// extractJSONObject 从模型回复中截取首个大括号到最后一个大括号的片段。
// 首次截取非法时剥掉markdown围栏再试一次。
func extractJSONObject(text string) (string, error) {
	if raw, ok := sliceBraces(text); ok {
		return raw, nil
	}
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	if raw, ok := sliceBraces(cleaned); ok {
		return raw, nil
	}
	return "", &errors.ServerError{Code: errors.ServerErrorMalformedEvaluation, Summary: "invalid model response format"}
}

func sliceBraces(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	raw := text[start : end+1]
	if !gjson.Valid(raw) {
		return "", false
	}
	return raw, true
}
