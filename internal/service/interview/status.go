package interview

import (
	"context"
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/form"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

// defaultCloseReason 浏览器关闭上报未带原因时的缺省值。
const defaultCloseReason = "User closed browser"

// StatusService 面试生命周期状态的流转。
type StatusService struct {
	store      InterviewStore
	evaluation *EvaluationService
	xl         *xlog.Logger
}

func NewStatusService(xl *xlog.Logger, store InterviewStore, evaluation *EvaluationService) *StatusService {
	v := new(StatusService)
	v.xl = xlog.New("status service")
	v.store = store
	v.evaluation = evaluation
	return v
}

// SetStatus 按状态机流转。同态设置为无操作，终态面试一律拒绝。
func (v *StatusService) SetStatus(xl *xlog.Logger, interviewID string, status model.InterviewStatus) (model.InterviewStatus, error) {
	if xl == nil {
		xl = v.xl
	}
	interview, err := v.store.GetInterviewByID(xl, interviewID)
	if err != nil {
		return "", err
	}
	if interview.Status == model.InterviewStatusCompleted {
		return "", &errors.ServerError{Code: errors.ServerErrorAlreadyCompleted, Summary: "interview already completed"}
	}
	if interview.Status == status {
		return status, nil
	}
	if !interview.Status.CanTransition(status) {
		return "", &errors.ServerError{Code: errors.ServerErrorInvalidTransition, Summary: "invalid status transition"}
	}
	var completedAt time.Time
	if status == model.InterviewStatusCompleted {
		completedAt = time.Now()
	}
	if err := v.store.UpdateStatus(xl, interviewID, status, completedAt); err != nil {
		return "", err
	}
	return status, nil
}

// CompleteOnClose 浏览器关闭路径。同步落一份INCOMPLETE结论让面试立即
// 进入终态，评估异步补算，失败只记日志不影响响应。
func (v *StatusService) CompleteOnClose(xl *xlog.Logger, interviewID string, f *form.CompleteOnCloseForm) error {
	if xl == nil {
		xl = v.xl
	}
	if _, err := v.store.GetInterviewByID(xl, interviewID); err != nil {
		return err
	}
	reason := f.Reason
	if reason == "" {
		reason = defaultCloseReason
	}
	now := time.Now()
	result := model.ResultDo{
		Status:             model.ResultStatusIncomplete,
		Reason:             reason,
		TabWarnings:        f.TabWarnings,
		FullscreenWarnings: f.FullscreenWarnings,
		CompletedAt:        now,
	}
	if err := v.store.SaveIncompleteResult(xl, interviewID, result); err != nil {
		return err
	}
	xl.Infof("browser closed, interview %s marked completed", interviewID)

	evalForm := &form.EvaluateForm{
		TabWarnings:        f.TabWarnings,
		FullscreenWarnings: f.FullscreenWarnings,
		IsIncomplete:       true,
	}
	go func() {
		bg := xlog.New(xl.ReqId + "/close-eval")
		if _, _, err := v.evaluation.Evaluate(context.Background(), bg, interviewID, evalForm); err != nil {
			bg.Errorf("evaluation after close failed for interview %s err:%v", interviewID, err)
		}
	}()
	return nil
}
