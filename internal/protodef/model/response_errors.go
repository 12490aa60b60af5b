package model

type ResponseError struct {
	// 自定义错误码。
	Code int `json:"code"`
	// 请求ID。
	RequestID string `json:"requestID"`
	// Message
	Message string `json:"message"`
}

const (
	ResponseErrorBadRequest          = 400000
	ResponseErrorUnknownQuestion     = 400001
	ResponseErrorUnauthorized        = 401000
	ResponseErrorBadToken            = 401003
	ResponseErrorAlreadyLoggedIn     = 401004
	ResponseErrorValidation          = 401005
	ResponseErrorInvalidCredentials  = 401006
	ResponseErrorSessionInvalidated  = 401007
	ResponseErrorForbidden           = 403000
	ResponseErrorNotFound            = 404000
	ResponseErrorNoSuchInterview     = 404002
	ResponseErrorNoSuchCandidate     = 404005
	ResponseErrorAlreadyCompleted    = 409001
	ResponseErrorInvalidTransition   = 409002
	ResponseErrorExpired             = 410001
	ResponseErrorNoAnswers           = 422001
	ResponseErrorNoValidAnswers      = 422002
	ResponseErrorInsufficientContent = 422003
	ResponseErrorInternal            = 500000
	ResponseErrorExternalService     = 502001
	ResponseErrorMalformedEvaluation = 502002
)

// NewResponseErrorBadRequest 参数错误。
func NewResponseErrorBadRequest() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorBadRequest,
		Message: "bad request",
	}
}

func NewResponseErrorValidation(err error) *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorValidation,
		Message: err.Error(),
	}
}

// NewResponseErrorUnauthorized 一般的HTTP Unauthorized 错误。
func NewResponseErrorUnauthorized() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorUnauthorized,
		Message: "unauthorized",
	}
}

func NewResponseErrorForbidden() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorForbidden,
		Message: "forbidden",
	}
}

func NewResponseErrorNotFound() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNotFound,
		Message: "not found",
	}
}

// NewResponseErrorNoSuchInterview 无此面试。
func NewResponseErrorNoSuchInterview() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchInterview,
		Message: "no such interview",
	}
}

// NewResponseErrorInternal 其他内部服务错误。
func NewResponseErrorInternal() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorInternal,
		Message: "internal server error",
	}
}

// NewResponseErrorExternalService 调用外部服务错误。
func NewResponseErrorExternalService() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorExternalService,
		Message: "calling external service failed",
	}
}

func NewResponseError(code int, message string) *ResponseError {
	return &ResponseError{
		Code:    code,
		Message: message,
	}
}
