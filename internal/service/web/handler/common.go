package handler

import (
	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

// failFromError 服务层错误码到HTTP响应错误的映射。未识别的一律归内部错误。
func failFromError(err error) *model.ResponseError {
	switch errors.CodeOf(err) {
	case errors.ServerErrorInterviewNotFound:
		return model.NewResponseError(model.ResponseErrorNoSuchInterview, "interview not found")
	case errors.ServerErrorCandidateNotFound:
		return model.NewResponseError(model.ResponseErrorNoSuchCandidate, "candidate not found")
	case errors.ServerErrorInterviewExpired:
		return model.NewResponseError(model.ResponseErrorExpired, "interview link expired")
	case errors.ServerErrorAlreadyCompleted:
		return model.NewResponseError(model.ResponseErrorAlreadyCompleted, "interview already completed")
	case errors.ServerErrorAlreadyLoggedIn:
		return model.NewResponseError(model.ResponseErrorAlreadyLoggedIn, "this interview session is already active, you can only login once")
	case errors.ServerErrorInvalidCredentials:
		return model.NewResponseError(model.ResponseErrorInvalidCredentials, "invalid password")
	case errors.ServerErrorSessionInvalidated:
		return model.NewResponseError(model.ResponseErrorSessionInvalidated, "your session is no longer valid")
	case errors.ServerErrorUnknownQuestion:
		return model.NewResponseError(model.ResponseErrorUnknownQuestion, "question not found")
	case errors.ServerErrorInvalidRequest:
		return model.NewResponseError(model.ResponseErrorBadRequest, "invalid request format")
	case errors.ServerErrorInvalidTransition:
		return model.NewResponseError(model.ResponseErrorInvalidTransition, "invalid status transition")
	case errors.ServerErrorNoAnswers:
		return model.NewResponseError(model.ResponseErrorNoAnswers, "no answers to evaluate")
	case errors.ServerErrorNoValidAnswers:
		return model.NewResponseError(model.ResponseErrorNoValidAnswers, "no valid answers to evaluate")
	case errors.ServerErrorInsufficientContent:
		return model.NewResponseError(model.ResponseErrorInsufficientContent, "insufficient content to evaluate")
	case errors.ServerErrorGenerationFailed:
		return model.NewResponseErrorExternalService()
	case errors.ServerErrorMalformedEvaluation:
		return model.NewResponseError(model.ResponseErrorMalformedEvaluation, "invalid model response format")
	default:
		return model.NewResponseErrorInternal()
	}
}
