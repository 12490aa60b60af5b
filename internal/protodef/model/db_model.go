package model

import (
	"time"
)

/*
	db_model.go: 规定数据存储的格式。
*/

// CandidateDo 候选人账号信息。由integration对接方创建，面试核心只读。
type CandidateDo struct {
	// 候选人ID，作为数据库唯一标识。
	ID    string `json:"candidateId" bson:"_id"`
	Email string `json:"email" bson:"email"`
	Name  string `json:"name" bson:"name"`
	// PasswordHash 临时口令的sha256摘要，由integration创建面试时下发。
	PasswordHash string `json:"-" bson:"passwordHash"`
	RegisterTime time.Time `json:"registerTime" bson:"registerTime"`
	UpdateTime   time.Time `json:"updateTime" bson:"updateTime"`
}

type InterviewStatus string

const (
	InterviewStatusScheduled  InterviewStatus = "scheduled"
	InterviewStatusInProgress InterviewStatus = "in_progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
)

// Valid 是否为已知的生命周期状态。
func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusInProgress, InterviewStatusCompleted:
		return true
	}
	return false
}

// Terminal completed为终态，无复活路径。
func (s InterviewStatus) Terminal() bool {
	return s == InterviewStatusCompleted
}

// CanTransition 状态机只允许 scheduled->in_progress 与 *->completed 两类边。
func (s InterviewStatus) CanTransition(next InterviewStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case InterviewStatusInProgress:
		return s == InterviewStatusScheduled
	case InterviewStatusCompleted:
		return true
	}
	return false
}

// SessionDo 面试的单次登录会话。activeToken一个生命周期内至多激活一次，
// logout显式清空后才能再次登录。
type SessionDo struct {
	ActiveToken string    `json:"activeToken" bson:"activeToken"`
	LoginAt     time.Time `json:"loginAt" bson:"loginAt"`
	LoginCount  int       `json:"loginCount" bson:"loginCount"`
}

// QuestionDo 传统模式的固定题目。
type QuestionDo struct {
	ID   string `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
}

// AnswerDo 传统模式的答题记录。同一题目允许多次作答，全部保留。
type AnswerDo struct {
	QuestionID string    `json:"questionId" bson:"questionId"`
	Text       string    `json:"text" bson:"text"`
	Attempt    int       `json:"attempt" bson:"attempt"`
	Duration   int       `json:"duration" bson:"duration"`
	Timestamp  time.Time `json:"ts" bson:"ts"`
}

// ConversationExchangeDo 动态模式的一轮问答。只追加，顺序即轮次顺序。
type ConversationExchangeDo struct {
	Question  string    `json:"question" bson:"question"`
	Answer    string    `json:"answer" bson:"answer"`
	Duration  int       `json:"duration" bson:"duration"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// AnswerEvaluationDo 评估结果里的单题评分。
type AnswerEvaluationDo struct {
	QuestionIndex int     `json:"questionIndex,omitempty" bson:"questionIndex,omitempty"`
	Question      string  `json:"question,omitempty" bson:"question,omitempty"`
	Score         float64 `json:"score" bson:"score"`
	Feedback      string  `json:"feedback" bson:"feedback"`
}

type Recommendation string

const (
	RecommendationPass       Recommendation = "PASS"
	RecommendationFail       Recommendation = "FAIL"
	RecommendationIncomplete Recommendation = "INCOMPLETE"
)

// EvaluationDo 模型产出的面试评估。
type EvaluationDo struct {
	OverallScore   float64              `json:"overallScore" bson:"overallScore"`
	Answers        []AnswerEvaluationDo `json:"answers" bson:"answers"`
	Strengths      []string             `json:"strengths" bson:"strengths"`
	Weaknesses     []string             `json:"weaknesses" bson:"weaknesses"`
	Summary        string               `json:"summary" bson:"summary"`
	Recommendation string               `json:"recommendation" bson:"recommendation"`
	EvaluatedAt    time.Time            `json:"evaluatedAt" bson:"evaluatedAt"`
}

type ResultStatus string

const (
	ResultStatusPass       ResultStatus = "PASS"
	ResultStatusFail       ResultStatus = "FAIL"
	ResultStatusIncomplete ResultStatus = "INCOMPLETE"
)

// ResultDo 终局结论与违规计数。计数由前端上报，核心只负责记录。
type ResultDo struct {
	Status             ResultStatus `json:"status" bson:"status"`
	Reason             string       `json:"reason" bson:"reason"`
	TabWarnings        int          `json:"tabWarnings" bson:"tabWarnings"`
	FullscreenWarnings int          `json:"fullscreenWarnings" bson:"fullscreenWarnings"`
	CompletedAt        time.Time    `json:"completedAt" bson:"completedAt"`
}

// InterviewDo 面试聚合根。
type InterviewDo struct {
	ID                string                   `json:"interviewId" bson:"_id"`
	CandidateID       string                   `json:"candidateId" bson:"candidateId"`
	ExternalCompanyID string                   `json:"externalCompanyId" bson:"externalCompanyId"`
	Role              string                   `json:"role" bson:"role"`
	Experience        int                      `json:"experience" bson:"experience"`
	Skills            []string                 `json:"skills" bson:"skills"`
	Questions         []QuestionDo             `json:"questions" bson:"questions"`
	Answers           []AnswerDo               `json:"answers" bson:"answers"`
	ConversationHistory []ConversationExchangeDo `json:"conversationHistory" bson:"conversationHistory"`
	Evaluation        *EvaluationDo            `json:"evaluation,omitempty" bson:"evaluation,omitempty"`
	Result            ResultDo                 `json:"result" bson:"result"`
	Session           SessionDo                `json:"session" bson:"session"`
	Status            InterviewStatus          `json:"status" bson:"status"`
	ScheduledAt       time.Time                `json:"scheduledAt" bson:"scheduledAt"`
	CompletedAt       time.Time                `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	ExpiresAt         time.Time                `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	CreateTime        time.Time                `json:"createTime" bson:"createTime"`
}

// Expired expiresAt未设置时视作永不过期。
func (i *InterviewDo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// HasQuestion 固定题目集中是否存在该题。
func (i *InterviewDo) HasQuestion(questionID string) bool {
	for _, q := range i.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// QuestionText 按题目ID取题面，缺失时返回"Unknown"，评估阶段不因此失败。
func (i *InterviewDo) QuestionText(questionID string) string {
	for _, q := range i.Questions {
		if q.ID == questionID {
			return q.Text
		}
	}
	return "Unknown"
}
