package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/form"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

func newTestStatus(store *fakeStore, completion *fakeCompletion) *StatusService {
	evaluation := NewEvaluationService(nil, store, completion)
	return NewStatusService(nil, store, evaluation)
}

func seedStatusFixture(store *fakeStore, status model.InterviewStatus) {
	store.put(&model.InterviewDo{
		ID:          "int-1",
		CandidateID: "cand-1",
		Status:      status,
	})
}

func TestSetStatusScheduledToInProgress(t *testing.T) {
	store := newFakeStore()
	seedStatusFixture(store, model.InterviewStatusScheduled)
	svc := newTestStatus(store, &fakeCompletion{})

	status, err := svc.SetStatus(nil, "int-1", model.InterviewStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStatusInProgress, status)
	assert.Equal(t, model.InterviewStatusInProgress, store.get("int-1").Status)
}

func TestSetStatusToCompleted(t *testing.T) {
	store := newFakeStore()
	seedStatusFixture(store, model.InterviewStatusInProgress)
	svc := newTestStatus(store, &fakeCompletion{})

	status, err := svc.SetStatus(nil, "int-1", model.InterviewStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStatusCompleted, status)
	assert.False(t, store.get("int-1").CompletedAt.IsZero())
}

func TestSetStatusSameStateNoop(t *testing.T) {
	store := newFakeStore()
	seedStatusFixture(store, model.InterviewStatusInProgress)
	svc := newTestStatus(store, &fakeCompletion{})

	status, err := svc.SetStatus(nil, "int-1", model.InterviewStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStatusInProgress, status)
}

func TestSetStatusCompletedRejected(t *testing.T) {
	store := newFakeStore()
	seedStatusFixture(store, model.InterviewStatusCompleted)
	svc := newTestStatus(store, &fakeCompletion{})

	_, err := svc.SetStatus(nil, "int-1", model.InterviewStatusInProgress)
	assert.Equal(t, errors.ServerErrorAlreadyCompleted, errors.CodeOf(err))
}

func TestSetStatusBackwardRejected(t *testing.T) {
	store := newFakeStore()
	seedStatusFixture(store, model.InterviewStatusInProgress)
	svc := newTestStatus(store, &fakeCompletion{})

	_, err := svc.SetStatus(nil, "int-1", model.InterviewStatusScheduled)
	assert.Equal(t, errors.ServerErrorInvalidTransition, errors.CodeOf(err))
	assert.Equal(t, model.InterviewStatusInProgress, store.get("int-1").Status)
}

func TestCompleteOnClose(t *testing.T) {
	store := newFakeStore()
	seedStatusFixture(store, model.InterviewStatusInProgress)
	svc := newTestStatus(store, &fakeCompletion{})

	err := svc.CompleteOnClose(nil, "int-1", &form.CompleteOnCloseForm{TabWarnings: 2})
	require.NoError(t, err)

	stored := store.get("int-1")
	assert.Equal(t, model.InterviewStatusCompleted, stored.Status)
	assert.Equal(t, model.ResultStatusIncomplete, stored.Result.Status)
	assert.Equal(t, "User closed browser", stored.Result.Reason)
	assert.Equal(t, 2, stored.Result.TabWarnings)

	// 异步评估把INCOMPLETE结论补齐为带评估的版本
	require.Eventually(t, func() bool {
		return store.get("int-1").Evaluation != nil
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, string(model.RecommendationIncomplete), store.get("int-1").Evaluation.Recommendation)
	assert.Equal(t, "Closed early", store.get("int-1").Result.Reason)
}

func TestCompleteOnCloseCustomReason(t *testing.T) {
	store := newFakeStore()
	seedStatusFixture(store, model.InterviewStatusInProgress)
	svc := newTestStatus(store, &fakeCompletion{})

	err := svc.CompleteOnClose(nil, "int-1", &form.CompleteOnCloseForm{Reason: "Tab switched too often"})
	require.NoError(t, err)
	assert.Equal(t, "Tab switched too often", store.get("int-1").Result.Reason)
}

func TestCompleteOnCloseUnknownInterview(t *testing.T) {
	store := newFakeStore()
	svc := newTestStatus(store, &fakeCompletion{})

	err := svc.CompleteOnClose(nil, "missing", &form.CompleteOnCloseForm{})
	assert.Equal(t, errors.ServerErrorInterviewNotFound, errors.CodeOf(err))
}
