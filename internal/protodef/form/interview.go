package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/solutions/ai-interview/internal/protodef/model"
)

// NextQuestionForm lastAnswer在首问时允许为空。
type NextQuestionForm struct {
	LastAnswer      string `json:"lastAnswer" form:"lastAnswer"`
	IsFirstQuestion bool   `json:"isFirstQuestion" form:"isFirstQuestion"`
}

func (f *NextQuestionForm) Validate() error {
	return nil
}

// AnswerForm 两种互斥的记录模式共用一个表单：
// question+answer 为动态模式，questionId+text 为传统模式。
// 两组字段由AnswerService判别，这里只做基础校验。
type AnswerForm struct {
	Question string `json:"question" form:"question"`
	Answer   string `json:"answer" form:"answer"`
	Duration int    `json:"duration" form:"duration"`

	QuestionID string `json:"questionId" form:"questionId"`
	Text       string `json:"text" form:"text"`
	Attempt    int    `json:"attempt" form:"attempt"`
}

func (f *AnswerForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Duration, validation.Min(0)),
		validation.Field(&f.Attempt, validation.Min(0)),
	)
}

type UpdateStatusForm struct {
	Status model.InterviewStatus `json:"status" form:"status"`
}

func (f *UpdateStatusForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Status, validation.Required,
			validation.In(model.InterviewStatusScheduled, model.InterviewStatusInProgress, model.InterviewStatusCompleted)),
	)
}

type CompleteOnCloseForm struct {
	Reason             string `json:"reason" form:"reason"`
	TabWarnings        int    `json:"tabWarnings" form:"tabWarnings"`
	FullscreenWarnings int    `json:"fullscreenWarnings" form:"fullscreenWarnings"`
}

func (f *CompleteOnCloseForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.TabWarnings, validation.Min(0)),
		validation.Field(&f.FullscreenWarnings, validation.Min(0)),
	)
}

type EvaluateForm struct {
	TabWarnings        int  `json:"tabWarnings" form:"tabWarnings"`
	FullscreenWarnings int  `json:"fullscreenWarnings" form:"fullscreenWarnings"`
	IsFailed           bool `json:"isFailed" form:"isFailed"`
	IsIncomplete       bool `json:"isIncomplete" form:"isIncomplete"`
}

func (f *EvaluateForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.TabWarnings, validation.Min(0)),
		validation.Field(&f.FullscreenWarnings, validation.Min(0)),
	)
}
