package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solutions/ai-interview/internal/common/utils"
	"github.com/solutions/ai-interview/internal/protodef/errors"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

const testJwtKey = "test-secret-key"

func newTestSession(store *fakeStore) *SessionService {
	return NewSessionService(nil, store, store, testJwtKey, utils.SessionConfig{TokenExpireSecond: 3600})
}

func seedLoginFixture(store *fakeStore) {
	store.UpsertCandidate(nil, &model.CandidateDo{
		ID:           "cand-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: utils.Sha256Hex("secret"),
	})
	store.put(&model.InterviewDo{
		ID:          "int-1",
		CandidateID: "cand-1",
		Role:        "Backend Engineer",
		Status:      model.InterviewStatusScheduled,
	})
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)

	token, candidate, interview, err := session.Login(nil, "int-1", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "cand-1", candidate.ID)
	assert.Equal(t, "int-1", interview.ID)

	stored := store.get("int-1")
	assert.Equal(t, token, stored.Session.ActiveToken)
	assert.Equal(t, 1, stored.Session.LoginCount)
	assert.Equal(t, model.InterviewStatusInProgress, stored.Status)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)

	_, _, _, err := session.Login(nil, "int-1", "wrong")
	assert.Equal(t, errors.ServerErrorInvalidCredentials, errors.CodeOf(err))
	assert.Empty(t, store.get("int-1").Session.ActiveToken)
}

func TestLoginSecondAttemptRejected(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)

	_, _, _, err := session.Login(nil, "int-1", "secret")
	require.NoError(t, err)
	_, _, _, err = session.Login(nil, "int-1", "secret")
	assert.Equal(t, errors.ServerErrorAlreadyLoggedIn, errors.CodeOf(err))
}

func TestLoginCompletedInterview(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	interview := store.get("int-1")
	interview.Status = model.InterviewStatusCompleted
	store.put(interview)
	session := newTestSession(store)

	_, _, _, err := session.Login(nil, "int-1", "secret")
	assert.Equal(t, errors.ServerErrorAlreadyCompleted, errors.CodeOf(err))
}

func TestLoginExpiredInterview(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	interview := store.get("int-1")
	interview.ExpiresAt = time.Now().Add(-time.Hour)
	store.put(interview)
	session := newTestSession(store)

	_, _, _, err := session.Login(nil, "int-1", "secret")
	assert.Equal(t, errors.ServerErrorInterviewExpired, errors.CodeOf(err))
}

func TestLoginUnknownInterview(t *testing.T) {
	store := newFakeStore()
	session := newTestSession(store)

	_, _, _, err := session.Login(nil, "missing", "secret")
	assert.Equal(t, errors.ServerErrorInterviewNotFound, errors.CodeOf(err))
}

func TestValidateSession(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)

	token, _, _, err := session.Login(nil, "int-1", "secret")
	require.NoError(t, err)

	interview, err := session.Validate(nil, token)
	require.NoError(t, err)
	assert.Equal(t, "int-1", interview.ID)
}

func TestValidateAfterLogout(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)

	token, _, _, err := session.Login(nil, "int-1", "secret")
	require.NoError(t, err)
	require.NoError(t, session.Logout(nil, "int-1"))

	_, err = session.Validate(nil, token)
	assert.Equal(t, errors.ServerErrorSessionInvalidated, errors.CodeOf(err))
}

func TestValidateGarbageToken(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)

	_, err := session.Validate(nil, "not-a-jwt")
	assert.Equal(t, errors.ServerErrorSessionInvalidated, errors.CodeOf(err))
}

func TestValidateForeignKeyToken(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)
	token, _, _, err := session.Login(nil, "int-1", "secret")
	require.NoError(t, err)

	other := NewSessionService(nil, store, store, "another-key", utils.SessionConfig{TokenExpireSecond: 3600})
	_, err = other.Validate(nil, token)
	assert.Equal(t, errors.ServerErrorSessionInvalidated, errors.CodeOf(err))
}

func TestLogoutThenLoginAgain(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)

	_, _, _, err := session.Login(nil, "int-1", "secret")
	require.NoError(t, err)
	require.NoError(t, session.Logout(nil, "int-1"))

	_, _, _, err = session.Login(nil, "int-1", "secret")
	require.NoError(t, err)
	assert.Equal(t, 2, store.get("int-1").Session.LoginCount)
}

func TestLogoutIdempotent(t *testing.T) {
	store := newFakeStore()
	session := newTestSession(store)
	assert.NoError(t, session.Logout(nil, "missing"))
}

func TestResolveByTokenFallbackDisabled(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)

	_, err := session.ResolveByToken(nil, "int-1")
	assert.Equal(t, errors.ServerErrorSessionInvalidated, errors.CodeOf(err))
}

func TestResolveByTokenFallbackEnabled(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := NewSessionService(nil, store, store, testJwtKey,
		utils.SessionConfig{TokenExpireSecond: 3600, AllowInterviewIDFallback: true})

	interview, err := session.ResolveByToken(nil, "int-1")
	require.NoError(t, err)
	assert.Equal(t, "int-1", interview.ID)
}

func TestResolveByTokenCompleted(t *testing.T) {
	store := newFakeStore()
	seedLoginFixture(store)
	session := newTestSession(store)
	token, _, _, err := session.Login(nil, "int-1", "secret")
	require.NoError(t, err)

	interview := store.get("int-1")
	interview.Status = model.InterviewStatusCompleted
	store.put(interview)

	_, err = session.ResolveByToken(nil, token)
	assert.Equal(t, errors.ServerErrorAlreadyCompleted, errors.CodeOf(err))
}
