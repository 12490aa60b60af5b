// Copyright 2020 Qiniu Cloud (qiniu.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/common/utils"
	"github.com/solutions/ai-interview/internal/protodef/model"
	"github.com/solutions/ai-interview/internal/service/cloud"
	"github.com/solutions/ai-interview/internal/service/db"
	"github.com/solutions/ai-interview/internal/service/interview"
	"github.com/solutions/ai-interview/internal/service/web/handler"
	"github.com/solutions/ai-interview/internal/service/web/middleware"
)

// NewRouter 返回gin router，分流API。
func NewRouter(config *utils.Config) (*gin.Engine, error) {
	// 1. 初始化GIN
	router := gin.New()
	router.Use(gin.Recovery())
	// 1.1. 全局CORS配置
	router.Use(corsMiddleware())

	// 2. 声明Service
	candidateService := db.NewCandidateService(nil, *config.Mongo)
	interviewService := db.NewInterviewService(nil, *config.Mongo)
	completionService, err := cloud.NewCompletionService(nil, *config.Gemini)
	if err != nil {
		return nil, err
	}
	mailConf := utils.MailConfig{}
	if config.Mail != nil {
		mailConf = *config.Mail
	}
	mailService := cloud.NewMailService(nil, mailConf)

	sessionService := interview.NewSessionService(nil, interviewService, candidateService, config.JwtKey, config.Session)
	conversationService := interview.NewConversationService(nil, interviewService, completionService)
	answerService := interview.NewAnswerService(nil, interviewService)
	evaluationService := interview.NewEvaluationService(nil, interviewService, completionService)
	statusService := interview.NewStatusService(nil, interviewService, evaluationService)

	candidateApiHandler := handler.NewCandidateApiHandler(sessionService)
	interviewApiHandler := &handler.InterviewApiHandler{
		Store:        interviewService,
		Session:      sessionService,
		Conversation: conversationService,
		Answer:       answerService,
		Status:       statusService,
		Evaluation:   evaluationService,
	}
	integrationApiHandler := &handler.IntegrationApiHandler{
		Candidates: candidateService,
		Store:      interviewService,
		Mail:       mailService,
		Conf:       config,
	}

	// 3. 健康检查
	router.GET("/", healthCheck(interviewService))
	router.GET("/healthz", healthCheck(interviewService))

	// 4. 配置V1路径
	v1 := router.Group("/v1", addRequestID)
	{
		// 4.1 候选人会话
		v1.POST("candidate/loginByInterview", candidateApiHandler.LoginByInterview)
		v1.POST("candidate/validateSession", candidateApiHandler.ValidateSession)
		v1.POST("candidate/logout", candidateApiHandler.Logout)

		// 4.2 面试详情
		v1.GET("interview/:interviewId", interviewApiHandler.GetInterview)
		v1.GET("interview/token/:token", interviewApiHandler.GetInterviewByToken)

		// 4.3 面试推进
		v1.POST("interview/:interviewId/nextQuestion", interviewApiHandler.NextQuestion)
		v1.POST("interview/:interviewId/answer", interviewApiHandler.SaveAnswer)
		v1.POST("interview/:interviewId/completeOnClose", interviewApiHandler.CompleteOnClose)
		v1.POST("interview/:interviewId/status", interviewApiHandler.UpdateStatus)
		v1.POST("interview/:interviewId/evaluate", interviewApiHandler.Evaluate)
	}

	// 5. 对接方接口，共享密钥鉴权
	integration := v1.Group("integration", middleware.VerifyAPIKey(config.Integration))
	{
		integration.POST("createInterview", integrationApiHandler.CreateInterview)
		integration.GET("interviewStatus/:interviewId", integrationApiHandler.InterviewStatus)
		integration.GET("companyInterviews/:companyId", integrationApiHandler.CompanyInterviews)
	}

	router.NoRoute(addRequestID, returnNotFound)
	router.RedirectTrailingSlash = false

	return router, nil
}

func addRequestID(c *gin.Context) {
	requestID := ""
	if requestID = c.Request.Header.Get(model.RequestIDHeader); requestID == "" {
		requestID = utils.NewReqID()
		c.Request.Header.Set(model.RequestIDHeader, requestID)
	}
	xl := xlog.New(requestID)
	xl.Debugf("request: %s %s", c.Request.Method, c.Request.URL.Path)
	c.Set(model.XLogKey, xl)
	c.Set(model.RequestStartKey, time.Now())
}

func returnNotFound(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	xl.Debugf("%s %s: not found", c.Request.Method, c.Request.URL.Path)
	responseErr := model.NewResponseErrorNotFound()
	resp := model.NewFailResponse(*responseErr)
	c.JSON(http.StatusOK, resp)
}

func healthCheck(interviewService *db.InterviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		mongoState := "connected"
		if err := interviewService.Ping(); err != nil {
			mongoState = "disconnected"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"mongo":  mongoState,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "OPTIONS", "GET", "PUT", "DELETE", "HEAD"},
		AllowHeaders: []string{"Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "Cache-Control", "X-Requested-With", model.APIKeyHeader, model.RequestIDHeader},
		MaxAge: 12 * time.Hour,
	})
}
