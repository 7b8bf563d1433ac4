package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hacksnooze/internal/client/models"
	"hacksnooze/internal/client/repositories/credentials"
	"hacksnooze/internal/shared"
)

func testTime() time.Time {
	return time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
}

// ---- fake credentials repository ----

type fakeCreds struct {
	Sess *credentials.Session

	LoadErr  error
	SaveErr  error
	ClearErr error

	ClearCalls int
}

func (f *fakeCreds) Load(ctx context.Context) (*credentials.Session, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return f.Sess, nil
}

func (f *fakeCreds) Save(ctx context.Context, s credentials.Session) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Sess = &s
	return nil
}

func (f *fakeCreds) Clear(ctx context.Context) error {
	f.ClearCalls++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.Sess = nil
	return nil
}

// signedToken builds a syntactically valid JWT with the given expiry.
// Restore never verifies signatures, so the key is arbitrary.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "alice",
		"exp":      exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

// ---- TESTS ----

func TestLoginPersistsSession(t *testing.T) {
	fc := &fakeClient{LoginRet: models.NewUser("alice", "Alice A", testTime(), "tok")}
	creds := &fakeCreds{}
	svc := NewAuthService(fc, creds, newTestLogger())

	user, err := svc.Login(context.Background(), "alice", []byte("pw123"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "tok", user.Token)

	require.NotNil(t, creds.Sess)
	assert.Equal(t, "tok", creds.Sess.Token)
	assert.Equal(t, "alice", creds.Sess.Username)
}

func TestLoginPropagatesAuthError(t *testing.T) {
	fc := &fakeClient{LoginErr: shared.ErrorAuth}
	creds := &fakeCreds{}
	svc := NewAuthService(fc, creds, newTestLogger())

	_, err := svc.Login(context.Background(), "alice", []byte("wrong"))
	assert.ErrorIs(t, err, shared.ErrorAuth)
	assert.Nil(t, creds.Sess)
}

func TestLoginSucceedsEvenIfSessionStoreFails(t *testing.T) {
	fc := &fakeClient{LoginRet: models.NewUser("alice", "Alice A", testTime(), "tok")}
	creds := &fakeCreds{SaveErr: errors.New("disk full")}
	svc := NewAuthService(fc, creds, newTestLogger())

	user, err := svc.Login(context.Background(), "alice", []byte("pw123"))
	require.NoError(t, err)
	assert.Equal(t, "tok", user.Token)
}

func TestSignupPersistsSession(t *testing.T) {
	u := models.NewUser("alice", "Alice A", testTime(), "tok")
	fc := &fakeClient{SignupRet: u}
	creds := &fakeCreds{}
	svc := NewAuthService(fc, creds, newTestLogger())

	user, err := svc.Signup(context.Background(), "alice", []byte("pw123"), "Alice A")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.Token)
	assert.Equal(t, 0, user.Favorites.Len())
	assert.Equal(t, 0, user.OwnStories.Len())
	require.NotNil(t, creds.Sess)
}

func TestRestoreWithNoStoredSession(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, &fakeCreds{}, newTestLogger())

	assert.Nil(t, svc.Restore(context.Background()))
	assert.Equal(t, 0, fc.GetUserCalls)
}

func TestRestoreSwallowsLoadError(t *testing.T) {
	fc := &fakeClient{}
	creds := &fakeCreds{LoadErr: errors.New("corrupt db")}
	svc := NewAuthService(fc, creds, newTestLogger())

	assert.Nil(t, svc.Restore(context.Background()))
}

func TestRestoreSwallowsRemoteFailure(t *testing.T) {
	fc := &fakeClient{GetUserErr: shared.ErrorAuth}
	creds := &fakeCreds{Sess: &credentials.Session{Token: "stale", Username: "alice"}}
	svc := NewAuthService(fc, creds, newTestLogger())

	assert.Nil(t, svc.Restore(context.Background()))
	assert.Equal(t, 1, fc.GetUserCalls)
}

func TestRestoreReturnsUser(t *testing.T) {
	u := models.NewUser("alice", "Alice A", testTime(), "tok")
	u.Favorites.Append(models.Story{ID: "1"})
	fc := &fakeClient{GetUserRet: u}
	creds := &fakeCreds{Sess: &credentials.Session{Token: "tok", Username: "alice"}}
	svc := NewAuthService(fc, creds, newTestLogger())

	got := svc.Restore(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.IsFavorite("1"))
	assert.Equal(t, "tok", fc.LastToken)
}

func TestRestoreSkipsNetworkForExpiredToken(t *testing.T) {
	fc := &fakeClient{}
	creds := &fakeCreds{Sess: &credentials.Session{
		Token:    signedToken(t, time.Now().Add(-time.Hour)),
		Username: "alice",
	}}
	svc := NewAuthService(fc, creds, newTestLogger())

	assert.Nil(t, svc.Restore(context.Background()))
	assert.Equal(t, 0, fc.GetUserCalls)
	assert.Equal(t, 1, creds.ClearCalls)
}

func TestRestoreSendsUnexpiredToken(t *testing.T) {
	u := models.NewUser("alice", "Alice A", testTime(), "tok")
	fc := &fakeClient{GetUserRet: u}
	creds := &fakeCreds{Sess: &credentials.Session{
		Token:    signedToken(t, time.Now().Add(time.Hour)),
		Username: "alice",
	}}
	svc := NewAuthService(fc, creds, newTestLogger())

	assert.NotNil(t, svc.Restore(context.Background()))
	assert.Equal(t, 1, fc.GetUserCalls)
}

func TestLogoutClearsSessionAndFavorites(t *testing.T) {
	fc := &fakeClient{}
	creds := &fakeCreds{Sess: &credentials.Session{Token: "tok", Username: "alice"}}
	svc := NewAuthService(fc, creds, newTestLogger())

	user := testUser()
	user.Favorites.Append(models.Story{ID: "1"})
	user.OwnStories.Append(models.Story{ID: "2"})

	require.NoError(t, svc.Logout(context.Background(), user))
	assert.Nil(t, creds.Sess)
	assert.Equal(t, 0, user.Favorites.Len())
	// own stories stay; only the favorites cache is wiped
	assert.Equal(t, 1, user.OwnStories.Len())
}

func TestLogoutWithNilUser(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, &fakeCreds{}, newTestLogger())
	assert.NoError(t, svc.Logout(context.Background(), nil))
}

func TestTokenExpired(t *testing.T) {
	assert.False(t, tokenExpired("not-a-jwt"))
	assert.False(t, tokenExpired(""))

	unexpired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})
	s, err := unexpired.SignedString([]byte("k"))
	require.NoError(t, err)
	// no exp claim means the server decides
	assert.False(t, tokenExpired(s))
}
