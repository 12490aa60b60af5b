package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/protodef/form"
	"github.com/solutions/ai-interview/internal/protodef/model"
	"github.com/solutions/ai-interview/internal/service/interview"
)

// CandidateApiHandler 候选人侧的会话接口。
type CandidateApiHandler struct {
	Session *interview.SessionService
}

func NewCandidateApiHandler(session *interview.SessionService) *CandidateApiHandler {
	return &CandidateApiHandler{Session: session}
}

// LoginByInterview 面试ID+临时口令换取会话token。一个面试只许登录一次。
func (h *CandidateApiHandler) LoginByInterview(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	var req form.LoginForm
	if err := c.Bind(&req); err != nil {
		xl.Infof("invalid args in body, error: %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	if err := req.Validate(); err != nil {
		xl.Infof("login form validate error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	token, candidate, interviewDo, err := h.Session.Login(xl, req.InterviewID, req.Password)
	if err != nil {
		xl.Infof("login failed for interview %s error: %v", req.InterviewID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	data := model.LoginResponse{
		Token: token,
		Candidate: model.LoginCandidateResponse{
			CandidateID: candidate.ID,
			Name:        candidate.Name,
			Email:       candidate.Email,
		},
		Interview: model.LoginInterviewResponse{
			InterviewID: interviewDo.ID,
			Role:        interviewDo.Role,
		},
	}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// ValidateSession token有效性校验，logout或顶号后这里立即失效。
func (h *CandidateApiHandler) ValidateSession(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	var req form.ValidateSessionForm
	if err := c.Bind(&req); err != nil {
		xl.Infof("invalid args in body, error: %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	if err := req.Validate(); err != nil {
		responseErr := model.NewResponseErrorValidation(err)
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	interviewDo, err := h.Session.Validate(xl, req.Token)
	if err != nil {
		xl.Infof("validate session failed error: %v", err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	data := model.ValidateSessionResponse{Valid: true, InterviewID: interviewDo.ID}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// Logout 幂等清空会话。
func (h *CandidateApiHandler) Logout(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	var req form.LogoutForm
	if err := c.Bind(&req); err != nil {
		xl.Infof("invalid args in body, error: %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	if err := req.Validate(); err != nil {
		responseErr := model.NewResponseErrorValidation(err)
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	if err := h.Session.Logout(xl, req.InterviewID); err != nil {
		xl.Errorf("logout failed for interview %s error: %v", req.InterviewID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	resp := model.NewSuccessResponse(gin.H{"message": "Session cleared"}).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}
