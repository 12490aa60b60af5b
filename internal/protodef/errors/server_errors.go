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

package errors

import (
	stderrors "errors"

	"encoding/json"
)

// ServerError 服务端内部错误与非正常返回结果定义
type ServerError struct {
	Code    int    `json:"code"`
	Summary string `json:"summary"`
}

func (e *ServerError) Error() string {
	buf, _ := json.Marshal(e)
	return string(buf)
}

// 各种服务端内部错误的错误码定义。错误码为5位数字。
const (
	// 1开头表示服务端内部，或数据库访问相关的错误。
	ServerErrorInterviewNotFound   = 10001
	ServerErrorCandidateNotFound   = 10002
	ServerErrorInterviewExpired    = 10003
	ServerErrorAlreadyCompleted    = 10004
	ServerErrorAlreadyLoggedIn     = 10005
	ServerErrorInvalidCredentials  = 10006
	ServerErrorSessionInvalidated  = 10007
	ServerErrorUnknownQuestion     = 10008
	ServerErrorInvalidRequest      = 10009
	ServerErrorInvalidTransition   = 10010
	ServerErrorNoAnswers           = 10011
	ServerErrorNoValidAnswers      = 10012
	ServerErrorInsufficientContent = 10013
	ServerErrorMongoOpFail         = 11000
	// 2开头表示外部服务错误。
	ServerErrorGenerationFailed    = 20001
	ServerErrorMalformedEvaluation = 20002
	ServerErrorMailSendFail        = 20003
	// 3开头表示配置错误。
	ServerErrorConfiguration = 30001
)

// CodeOf 取出错误链上ServerError的错误码，不是ServerError时返回0。
func CodeOf(err error) int {
	var se *ServerError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return 0
}
