package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-backoffice/internal/model"
	"go-backoffice/pkg/jwt"
)

type authFixture struct {
	svc    *authService
	users  *fakeUserRepo
	tokens *fakeTokenRepo
	clock  time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo(users)
	roles := &fakeRoleRepo{roles: []model.Role{
		{ID: 1, Code: model.RoleAdmin},
		{ID: 2, Code: model.RoleSales, Privileges: []model.Privilege{{Code: model.PrivTransactionCreate}}},
	}}
	manager := jwt.NewManager("a-very-long-test-secret", time.Hour, "go-backoffice")

	f := &authFixture{users: users, tokens: tokens, clock: time.Now()}
	svc := NewAuthService(users, roles, tokens, manager, 30*time.Minute, nil, zaptest.NewLogger(t)).(*authService)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc
	return f
}

func (f *authFixture) addUser(t *testing.T, email, password string, active bool) *model.User {
	t.Helper()
	u := model.User{Email: email, FullName: "Ama Mensah", IsActive: active, Role: &model.Role{ID: 2, Code: model.RoleSales}}
	require.NoError(t, u.SetPassword(password))
	return f.users.put(u)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, "ama@example.com", "secret1", true)
	f.addUser(t, "off@example.com", "secret1", false)

	resp, err := f.svc.Login(" AMA@example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, model.RoleSales, resp.Role.Code)
	assert.NotEmpty(t, f.users.get(user.ID).TokenVersion)

	_, err = f.svc.Login("ama@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login("off@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthenticate_SingleSession(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "ama@example.com", "secret1", true)

	first, err := f.svc.Login("ama@example.com", "secret1")
	require.NoError(t, err)
	_, _, err = f.svc.Authenticate(first.Token)
	require.NoError(t, err)

	second, err := f.svc.Login("ama@example.com", "secret1")
	require.NoError(t, err)

	_, _, err = f.svc.Authenticate(first.Token)
	assert.ErrorIs(t, err, ErrSessionReplaced)

	claims, user, err := f.svc.Authenticate(second.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthenticate_IdleTimeout(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, "ama@example.com", "secret1", true)

	resp, err := f.svc.Login("ama@example.com", "secret1")
	require.NoError(t, err)

	f.clock = f.clock.Add(20 * time.Minute)
	_, _, err = f.svc.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, f.users.lastSeen)
	require.NotNil(t, f.users.get(user.ID).LastSeenAt)
	assert.True(t, f.users.get(user.ID).LastSeenAt.Equal(f.clock))

	// A request within the resolution window does not rewrite last_seen_at.
	f.clock = f.clock.Add(10 * time.Second)
	_, _, err = f.svc.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, f.users.lastSeen)

	f.clock = f.clock.Add(31 * time.Minute)
	_, _, err = f.svc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, ErrSessionTimeout)
}

func TestAuthenticate_Rejections(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, "ama@example.com", "secret1", true)

	_, _, err := f.svc.Authenticate("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	resp, err := f.svc.Login("ama@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(user.ID))
	_, _, err = f.svc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, ErrSessionReplaced)

	resp, err = f.svc.Login("ama@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, f.users.modify(user.ID, func(u *model.User) { u.IsActive = false }))
	_, _, err = f.svc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, "ama@example.com", "secret1", true)

	assert.ErrorIs(t, f.svc.ChangePassword(user.ID, "nope", "newsecret"), ErrWrongPassword)
	assert.ErrorIs(t, f.svc.ChangePassword(user.ID, "secret1", "abc"), ErrInvalidInput)
	assert.ErrorIs(t, f.svc.ChangePassword(uuid.New(), "secret1", "newsecret"), ErrUserNotFound)

	require.NoError(t, f.svc.ChangePassword(user.ID, "secret1", "newsecret"))
	_, err := f.svc.Login("ama@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestRedeemAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.tokens.Create(&model.AccessToken{Token: "ABCDEF1234"}))

	req := &RedeemTokenRequest{
		Token:    "abcdef1234",
		Email:    "Kwame@Example.com",
		Password: "secret1",
		FullName: "Kwame Boateng",
	}
	resp, err := f.svc.RedeemAccessToken(req)
	require.NoError(t, err)
	assert.Equal(t, "kwame@example.com", resp.User.Email)
	assert.Equal(t, model.RoleSales, resp.Role.Code)
	assert.Equal(t, []string{model.PrivTransactionCreate}, resp.Privileges)
	assert.True(t, f.tokens.tokens["ABCDEF1234"].IsUsed)

	req.Email = "other@example.com"
	_, err = f.svc.RedeemAccessToken(req)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)

	req.Token = "ZZZZZZZZZZ"
	_, err = f.svc.RedeemAccessToken(req)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)

	req.Token = "short"
	_, err = f.svc.RedeemAccessToken(req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.tokens.Create(&model.AccessToken{Token: "FFFFFFFFFF"}))
	_, err = f.svc.RedeemAccessToken(&RedeemTokenRequest{
		Token: "FFFFFFFFFF", Email: "kwame@example.com", Password: "secret1", FullName: "Again",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}
