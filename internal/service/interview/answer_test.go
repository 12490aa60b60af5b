package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/form"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

func seedAnswerFixture(store *fakeStore) {
	store.put(&model.InterviewDo{
		ID:          "int-1",
		CandidateID: "cand-1",
		Status:      model.InterviewStatusInProgress,
		Questions: []model.QuestionDo{
			{ID: "q1", Text: "What is a goroutine?"},
			{ID: "q2", Text: "Explain channels."},
		},
	})
}

func TestSaveAnswerDynamic(t *testing.T) {
	store := newFakeStore()
	seedAnswerFixture(store)
	svc := NewAnswerService(nil, store)

	count, mode, err := svc.SaveAnswer(nil, "int-1", &form.AnswerForm{
		Question: "Tell me about yourself.",
		Answer:   "I am a backend engineer.",
		Duration: 42,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, AnswerModeDynamic, mode)

	stored := store.get("int-1")
	require.Len(t, stored.ConversationHistory, 1)
	assert.Equal(t, 42, stored.ConversationHistory[0].Duration)
	assert.False(t, stored.ConversationHistory[0].Timestamp.IsZero())
}

func TestSaveAnswerTraditional(t *testing.T) {
	store := newFakeStore()
	seedAnswerFixture(store)
	svc := NewAnswerService(nil, store)

	count, mode, err := svc.SaveAnswer(nil, "int-1", &form.AnswerForm{
		QuestionID: "q1",
		Text:       "A goroutine is a lightweight thread.",
		Attempt:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, AnswerModeTraditional, mode)

	stored := store.get("int-1")
	require.Len(t, stored.Answers, 1)
	assert.Equal(t, 2, stored.Answers[0].Attempt)
}

func TestSaveAnswerTraditionalDefaults(t *testing.T) {
	store := newFakeStore()
	seedAnswerFixture(store)
	svc := NewAnswerService(nil, store)

	_, _, err := svc.SaveAnswer(nil, "int-1", &form.AnswerForm{QuestionID: "q1", Text: "answer"})
	require.NoError(t, err)
	stored := store.get("int-1")
	assert.Equal(t, 1, stored.Answers[0].Attempt)
	assert.Equal(t, 0, stored.Answers[0].Duration)
}

func TestSaveAnswerRepeatedAttemptsKept(t *testing.T) {
	store := newFakeStore()
	seedAnswerFixture(store)
	svc := NewAnswerService(nil, store)

	_, _, err := svc.SaveAnswer(nil, "int-1", &form.AnswerForm{QuestionID: "q1", Text: "first try", Attempt: 1})
	require.NoError(t, err)
	count, _, err := svc.SaveAnswer(nil, "int-1", &form.AnswerForm{QuestionID: "q1", Text: "second try", Attempt: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, store.get("int-1").Answers, 2)
}

func TestSaveAnswerUnknownQuestion(t *testing.T) {
	store := newFakeStore()
	seedAnswerFixture(store)
	svc := NewAnswerService(nil, store)

	_, _, err := svc.SaveAnswer(nil, "int-1", &form.AnswerForm{QuestionID: "nope", Text: "answer"})
	assert.Equal(t, errors.ServerErrorUnknownQuestion, errors.CodeOf(err))
	assert.Empty(t, store.get("int-1").Answers)
}

func TestSaveAnswerInvalidRequest(t *testing.T) {
	store := newFakeStore()
	seedAnswerFixture(store)
	svc := NewAnswerService(nil, store)

	cases := []*form.AnswerForm{
		{},
		{Question: "only question"},
		{Answer: "only answer"},
		{QuestionID: "q1"},
		{Text: "only text"},
	}
	for _, f := range cases {
		_, _, err := svc.SaveAnswer(nil, "int-1", f)
		assert.Equal(t, errors.ServerErrorInvalidRequest, errors.CodeOf(err))
	}
}

func TestSaveAnswerUnknownInterview(t *testing.T) {
	store := newFakeStore()
	svc := NewAnswerService(nil, store)

	_, _, err := svc.SaveAnswer(nil, "missing", &form.AnswerForm{Question: "q", Answer: "a"})
	assert.Equal(t, errors.ServerErrorInterviewNotFound, errors.CodeOf(err))
}
