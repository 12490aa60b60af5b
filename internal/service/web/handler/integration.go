package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/common/utils"
	"github.com/solutions/ai-interview/internal/protodef/form"
	"github.com/solutions/ai-interview/internal/protodef/model"
	"github.com/solutions/ai-interview/internal/service/cloud"
	"github.com/solutions/ai-interview/internal/service/interview"
)

// IntegrationApiHandler 外部招聘平台对接接口，X-Api-Key鉴权。
type IntegrationApiHandler struct {
	Candidates interview.CandidateStore
	Store      interview.InterviewStore
	Mail       *cloud.MailService
	Conf       *utils.Config
}

// CreateInterview 创建面试。候选人不存在则建档，存在则换发新口令。
// 邀请邮件异步发送，失败不影响创建结果。
func (h *IntegrationApiHandler) CreateInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	var req form.CreateInterviewForm
	if err := c.Bind(&req); err != nil {
		xl.Infof("invalid args in body, error: %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	if err := req.Validate(); err != nil {
		xl.Infof("create interview form validate error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	req.FillDefault()

	password := utils.RandomPassword(12)
	candidate := &model.CandidateDo{
		ID:           req.CandidateID,
		Email:        req.CandidateEmail,
		Name:         req.CandidateName,
		PasswordHash: utils.Sha256Hex(password),
	}
	if err := h.Candidates.UpsertCandidate(xl, candidate); err != nil {
		xl.Errorf("upsert candidate %s error: %v", req.CandidateID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}

	now := time.Now()
	expireHour := h.Conf.Integration.InterviewExpireHour
	if expireHour <= 0 {
		expireHour = 24
	}
	interviewDo := &model.InterviewDo{
		ID:                utils.GenerateInterviewID(),
		CandidateID:       req.CandidateID,
		ExternalCompanyID: req.ExternalCompanyID,
		Role:              req.JobRole,
		Experience:        req.Experience,
		Skills:            req.Skills,
		Status:            model.InterviewStatusScheduled,
		ScheduledAt:       now,
		ExpiresAt:         now.Add(time.Duration(expireHour) * time.Hour),
		CreateTime:        now,
	}
	if err := h.Store.CreateInterview(xl, interviewDo); err != nil {
		xl.Errorf("create interview error: %v", err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}

	loginURL := fmt.Sprintf("%s/interview-login?interviewId=%s", h.Conf.FrontendUrlHost, interviewDo.ID)
	emailQueued := h.Conf.Mail != nil && h.Conf.Mail.Enabled
	if emailQueued {
		invite := cloud.InterviewInvite{
			To:            req.CandidateEmail,
			CandidateName: req.CandidateName,
			CompanyName:   req.CompanyName,
			Role:          req.JobRole,
			InterviewID:   interviewDo.ID,
			Password:      password,
			LoginURL:      loginURL,
			ExpiresAt:     interviewDo.ExpiresAt,
		}
		bg := xlog.New(requestID + "/invite-mail")
		go func() {
			if err := h.Mail.SendInterviewInvite(bg, invite); err != nil {
				bg.Errorf("send invite mail for interview %s error: %v", invite.InterviewID, err)
			}
		}()
	}

	data := model.CreateInterviewResponse{
		InterviewID: interviewDo.ID,
		CandidateID: req.CandidateID,
		LoginURL:    loginURL,
		EmailQueued: emailQueued,
	}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// InterviewStatus 对接方查询面试进度与结论。
func (h *IntegrationApiHandler) InterviewStatus(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	interviewDo, err := h.Store.GetInterviewByID(xl, interviewID)
	if err != nil {
		xl.Infof("get interview %s failed error: %v", interviewID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	data := model.InterviewStatusResponse{
		InterviewID:       interviewDo.ID,
		CandidateID:       interviewDo.CandidateID,
		ExternalCompanyID: interviewDo.ExternalCompanyID,
		Status:            interviewDo.Status,
		ScheduledAt:       interviewDo.ScheduledAt,
		CompletedAt:       interviewDo.CompletedAt,
		Evaluation:        interviewDo.Evaluation,
	}
	if interviewDo.Result.Status != "" {
		result := interviewDo.Result
		data.Result = &result
	}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// CompanyInterviews 按公司列举面试，按预约时间倒序。
func (h *IntegrationApiHandler) CompanyInterviews(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	companyID := c.Param("companyId")
	interviews, err := h.Store.ListInterviewsByCompany(xl, companyID)
	if err != nil {
		xl.Errorf("list interviews of company %s error: %v", companyID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	list := make([]model.CompanyInterviewItem, 0, len(interviews))
	for _, item := range interviews {
		entry := model.CompanyInterviewItem{
			InterviewID: item.ID,
			CandidateID: item.CandidateID,
			Role:        item.Role,
			Status:      item.Status,
			ScheduledAt: item.ScheduledAt,
			CompletedAt: item.CompletedAt,
		}
		if item.Evaluation != nil {
			score := item.Evaluation.OverallScore
			entry.OverallScore = &score
			entry.Recommendation = item.Evaluation.Recommendation
		}
		list = append(list, entry)
	}
	data := model.CompanyInterviewsResponse{Total: len(list), List: list}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}
