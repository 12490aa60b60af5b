package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, InterviewStatusScheduled.CanTransition(InterviewStatusInProgress))
	assert.True(t, InterviewStatusScheduled.CanTransition(InterviewStatusCompleted))
	assert.True(t, InterviewStatusInProgress.CanTransition(InterviewStatusCompleted))

	assert.False(t, InterviewStatusInProgress.CanTransition(InterviewStatusScheduled))
	assert.False(t, InterviewStatusCompleted.CanTransition(InterviewStatusScheduled))
	assert.False(t, InterviewStatusCompleted.CanTransition(InterviewStatusInProgress))
	assert.False(t, InterviewStatusCompleted.CanTransition(InterviewStatusCompleted))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, InterviewStatusScheduled.Valid())
	assert.False(t, InterviewStatus("cancelled").Valid())
}

func TestInterviewExpired(t *testing.T) {
	now := time.Now()
	neverExpires := &InterviewDo{}
	assert.False(t, neverExpires.Expired(now))

	expired := &InterviewDo{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, expired.Expired(now))

	live := &InterviewDo{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, live.Expired(now))
}

func TestQuestionLookup(t *testing.T) {
	interview := &InterviewDo{Questions: []QuestionDo{{ID: "q1", Text: "What is Go?"}}}
	assert.True(t, interview.HasQuestion("q1"))
	assert.False(t, interview.HasQuestion("q2"))
	assert.Equal(t, "What is Go?", interview.QuestionText("q1"))
	assert.Equal(t, "Unknown", interview.QuestionText("q2"))
}

func TestSnapshotFlattensNilSlices(t *testing.T) {
	resp := NewInterviewSnapshotResponse(&InterviewDo{ID: "int-1"})
	assert.NotNil(t, resp.Skills)
	assert.NotNil(t, resp.Questions)
	assert.NotNil(t, resp.ConversationHistory)
	assert.NotNil(t, resp.Answers)
}
