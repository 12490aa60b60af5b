package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ErrInterviewIDRequiredMsg = "interviewId required"
	ErrPasswordRequiredMsg    = "password required"
	ErrTokenRequiredMsg       = "token required"
)

// LoginForm 凭面试ID+临时口令登录。
type LoginForm struct {
	InterviewID string `json:"interviewId" form:"interviewId"`
	Password    string `json:"password" form:"password"`
}

func (f *LoginForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.InterviewID, validation.Required.Error(ErrInterviewIDRequiredMsg)),
		validation.Field(&f.Password, validation.Required.Error(ErrPasswordRequiredMsg)),
	)
}

type ValidateSessionForm struct {
	Token string `json:"token" form:"token"`
}

func (f *ValidateSessionForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Token, validation.Required.Error(ErrTokenRequiredMsg)),
	)
}

type LogoutForm struct {
	InterviewID string `json:"interviewId" form:"interviewId"`
}

func (f *LogoutForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.InterviewID, validation.Required.Error(ErrInterviewIDRequiredMsg)),
	)
}
