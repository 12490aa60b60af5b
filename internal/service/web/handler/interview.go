package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/protodef/form"
	"github.com/solutions/ai-interview/internal/protodef/model"
	"github.com/solutions/ai-interview/internal/service/interview"
)

// InterviewApiHandler 面试进行中的全部接口。
type InterviewApiHandler struct {
	Store        interview.InterviewStore
	Session      *interview.SessionService
	Conversation *interview.ConversationService
	Answer       *interview.AnswerService
	Status       *interview.StatusService
	Evaluation   *interview.EvaluationService
}

// GetInterview 面试详情。
func (h *InterviewApiHandler) GetInterview(c *gin.Context) {
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
	resp := model.NewSuccessResponse(model.NewInterviewSnapshotResponse(interviewDo)).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// GetInterviewByToken 凭会话token取面试详情，已完成的面试拒绝进入。
func (h *InterviewApiHandler) GetInterviewByToken(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	token := c.Param("token")
	interviewDo, err := h.Session.ResolveByToken(xl, token)
	if err != nil {
		xl.Infof("resolve by token failed error: %v", err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	resp := model.NewSuccessResponse(model.NewInterviewSnapshotResponse(interviewDo)).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// NextQuestion 生成下一问。
func (h *InterviewApiHandler) NextQuestion(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	var req form.NextQuestionForm
	if err := c.Bind(&req); err != nil {
		xl.Infof("invalid args in body, error: %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	data, err := h.Conversation.NextQuestion(c.Request.Context(), xl, interviewID, req.LastAnswer, req.IsFirstQuestion)
	if err != nil {
		xl.Errorf("next question failed for interview %s error: %v", interviewID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// SaveAnswer 记录作答，动态/传统两种模式。
func (h *InterviewApiHandler) SaveAnswer(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	var req form.AnswerForm
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
	count, mode, err := h.Answer.SaveAnswer(xl, interviewID, &req)
	if err != nil {
		xl.Infof("save answer failed for interview %s error: %v", interviewID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	data := model.SaveAnswerResponse{Count: count, Mode: mode}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// CompleteOnClose 浏览器关闭上报，同步落终态、异步补评估。
func (h *InterviewApiHandler) CompleteOnClose(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	var req form.CompleteOnCloseForm
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
	if err := h.Status.CompleteOnClose(xl, interviewID, &req); err != nil {
		xl.Errorf("complete on close failed for interview %s error: %v", interviewID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	resp := model.NewSuccessResponse(gin.H{"message": "Interview completed"}).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus 生命周期状态流转。
func (h *InterviewApiHandler) UpdateStatus(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	var req form.UpdateStatusForm
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
	status, err := h.Status.SetStatus(xl, interviewID, req.Status)
	if err != nil {
		xl.Infof("update status failed for interview %s error: %v", interviewID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	data := model.UpdateStatusResponse{Status: status}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}

// Evaluate 面试评估，产出终局结论。
func (h *InterviewApiHandler) Evaluate(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewID := c.Param("interviewId")
	var req form.EvaluateForm
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
	evaluation, result, err := h.Evaluation.Evaluate(c.Request.Context(), xl, interviewID, &req)
	if err != nil {
		xl.Errorf("evaluate failed for interview %s error: %v", interviewID, err)
		resp := model.NewFailResponse(*failFromError(err)).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	data := model.EvaluateResponse{Evaluation: *evaluation, Result: *result}
	resp := model.NewSuccessResponse(data).WithRequestID(requestID)
	c.JSON(http.StatusOK, resp)
}
