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

package model

import (
	"time"

	"github.com/gin-gonic/gin"
)

/*
	http_model.go: 规定API的参数与返回值的定义，***Args 表示 *** 接口的参数，***Response表示 *** 接口的返回体格式。
*/

const (
	// RequestIDHeader request ID 头部。
	RequestIDHeader = "X-Reqid"
	// XLogKey gin context中，用于获取记录请求相关日志的 xlog logger的key。
	XLogKey = "xlog-logger"

	// APIKeyHeader integration对接方的鉴权头部。
	APIKeyHeader = "X-Api-Key"

	// RequestStartKey 存放在gin context中的请求开始的时间戳，单位为纳秒。
	RequestStartKey = "request-start-timestamp-nano"

	// 状态码和状态信息
	ResponseStatusCodeSuccess    ResponseStatusCode    = 0
	ResponseStatusMessageSuccess ResponseStatusMessage = "success"
)

// 状态码和状态信息
type ResponseStatusCode int
type ResponseStatusMessage string

type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Code:    int(ResponseStatusCodeSuccess),
		Message: string(ResponseStatusMessageSuccess),
		Data:    data,
	}
}

func NewFailResponse(err ResponseError) *Response {
	return &Response{
		Code:    err.Code,
		Message: err.Message,
	}
}

func (r *Response) WithRequestID(requestID string) *Response {
	r.RequestID = requestID
	return r
}

func (r *Response) Send(c *gin.Context) {
	c.JSON(200, r)
}

// LoginResponse 登录成功的返回体。
type LoginResponse struct {
	Token     string                 `json:"token"`
	Candidate LoginCandidateResponse `json:"candidate"`
	Interview LoginInterviewResponse `json:"interview"`
}

type LoginCandidateResponse struct {
	CandidateID string `json:"candidateId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

type LoginInterviewResponse struct {
	InterviewID string `json:"interviewId"`
	Role        string `json:"role"`
}

type ValidateSessionResponse struct {
	Valid       bool   `json:"valid"`
	InterviewID string `json:"interviewId"`
}

// InterviewSnapshotResponse 面试详情，登录页与答题页共用。
type InterviewSnapshotResponse struct {
	InterviewID         string                   `json:"interviewId"`
	CandidateID         string                   `json:"candidateId"`
	Role                string                   `json:"role"`
	Experience          int                      `json:"experience"`
	Skills              []string                 `json:"skills"`
	Questions           []QuestionDo             `json:"questions"`
	ConversationHistory []ConversationExchangeDo `json:"conversationHistory"`
	Answers             []AnswerDo               `json:"answers"`
	Status              InterviewStatus          `json:"status"`
	ExpiresAt           time.Time                `json:"expiresAt,omitempty"`
}

// NewInterviewSnapshotResponse 从聚合根裁剪出对外快照，nil切片压平为空切片。
func NewInterviewSnapshotResponse(interview *InterviewDo) *InterviewSnapshotResponse {
	resp := &InterviewSnapshotResponse{
		InterviewID:         interview.ID,
		CandidateID:         interview.CandidateID,
		Role:                interview.Role,
		Experience:          interview.Experience,
		Skills:              interview.Skills,
		Questions:           interview.Questions,
		ConversationHistory: interview.ConversationHistory,
		Answers:             interview.Answers,
		Status:              interview.Status,
		ExpiresAt:           interview.ExpiresAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if resp.Questions == nil {
		resp.Questions = []QuestionDo{}
	}
	if resp.ConversationHistory == nil {
		resp.ConversationHistory = []ConversationExchangeDo{}
	}
	if resp.Answers == nil {
		resp.Answers = []AnswerDo{}
	}
	return resp
}

// NextQuestionResponse question在面试结束时为空，isComplete为true。
type NextQuestionResponse struct {
	Question       string `json:"question,omitempty"`
	IsComplete     bool   `json:"isComplete"`
	QuestionNumber int    `json:"questionNumber,omitempty"`
	Message        string `json:"message,omitempty"`
}

type SaveAnswerResponse struct {
	Count int    `json:"count"`
	Mode  string `json:"mode"`
}

type UpdateStatusResponse struct {
	Status InterviewStatus `json:"status"`
}

type EvaluateResponse struct {
	Evaluation EvaluationDo `json:"evaluation"`
	Result     ResultDo     `json:"result"`
}

// CreateInterviewResponse integration创建面试的返回体。邮件异步发送。
type CreateInterviewResponse struct {
	InterviewID string `json:"interviewId"`
	CandidateID string `json:"candidateId"`
	LoginURL    string `json:"loginUrl"`
	EmailQueued bool   `json:"emailQueued"`
}

// InterviewStatusResponse integration侧的面试状态查询。
type InterviewStatusResponse struct {
	InterviewID       string          `json:"interviewId"`
	CandidateID       string          `json:"candidateId"`
	ExternalCompanyID string          `json:"externalCompanyId"`
	Status            InterviewStatus `json:"status"`
	ScheduledAt       time.Time       `json:"scheduledAt"`
	CompletedAt       time.Time       `json:"completedAt,omitempty"`
	Result            *ResultDo       `json:"result,omitempty"`
	Evaluation        *EvaluationDo   `json:"evaluation,omitempty"`
}

type CompanyInterviewItem struct {
	InterviewID    string          `json:"interviewId"`
	CandidateID    string          `json:"candidateId"`
	Role           string          `json:"role"`
	Status         InterviewStatus `json:"status"`
	OverallScore   *float64        `json:"overallScore,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
	ScheduledAt    time.Time       `json:"scheduledAt"`
	CompletedAt    time.Time       `json:"completedAt,omitempty"`
}

type CompanyInterviewsResponse struct {
	Total int                    `json:"total"`
	List  []CompanyInterviewItem `json:"list"`
}
