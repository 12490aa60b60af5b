package form

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	RegEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	ErrEmailMsg      = "invalid email format"
	ErrRequiredMsg   = "missing required fields"
	ErrExperienceMsg = "experience must be non-negative"
)

// CreateInterviewForm 对接方创建面试的参数。
type CreateInterviewForm struct {
	CandidateID       string   `json:"candidateId" form:"candidateId"`
	CandidateName     string   `json:"candidateName" form:"candidateName"`
	CandidateEmail    string   `json:"candidateEmail" form:"candidateEmail"`
	JobRole           string   `json:"jobRole" form:"jobRole"`
	Skills            []string `json:"skills" form:"skills"`
	Experience        int      `json:"experience" form:"experience"`
	ExternalCompanyID string   `json:"externalCompanyId" form:"externalCompanyId"`
	CompanyName       string   `json:"companyName" form:"companyName"`
}

func (f *CreateInterviewForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.CandidateID, validation.Required.Error(ErrRequiredMsg)),
		validation.Field(&f.CandidateName, validation.Required.Error(ErrRequiredMsg)),
		validation.Field(&f.CandidateEmail, validation.Required.Error(ErrRequiredMsg), validation.Match(RegEmail).Error(ErrEmailMsg)),
		validation.Field(&f.JobRole, validation.Required.Error(ErrRequiredMsg)),
		validation.Field(&f.Experience, validation.Min(0).Error(ErrExperienceMsg)),
	)
}

// FillDefault 外部公司ID缺省归入default-company。
func (f *CreateInterviewForm) FillDefault() {
	if f.ExternalCompanyID == "" {
		f.ExternalCompanyID = "default-company"
	}
	if f.CompanyName == "" {
		f.CompanyName = "Your Company"
	}
}
