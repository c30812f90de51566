package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/internal/models/request_models"
	mem "github.com/Green254/TaskPulse/pkg/memcache"
	"github.com/Green254/TaskPulse/pkg/utils"
)

type authFixture struct {
	users       *fakeUserRepo
	departments *fakeDepartmentRepo
	tokens      *fakeTokenRepo
	mail        *fakeMailService
	resetTokens *mem.ResetTokens
	service     AuthServiceInterface
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:       newFakeUserRepo(),
		departments: newFakeDepartmentRepo("Management", "Security", "Kitchen", "Staff"),
		tokens:      newFakeTokenRepo(),
		mail:        &fakeMailService{},
		resetTokens: mem.NewResetTokens(),
	}
	f.service = NewAuthService(f.users, f.departments, f.tokens, f.mail, f.resetTokens)
	return f
}

func (f *authFixture) seedUser(t *testing.T, name, email, password string, roles ...string) *db_models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &db_models.User{Name: name, Email: email, PasswordHash: hash}
	user.Roles = rolesFromNames(roles)
	return f.users.add(user)
}

func TestRegisterGrantsDepartmentRole(t *testing.T) {
	f := newAuthFixture()
	kitchen := f.departments.byName("Kitchen")

	token, user, err := f.service.Register(context.Background(), request_models.RegisterRequest{
		Name:         "cook",
		Email:        "cook@example.com",
		DepartmentID: kitchen.ID.String(),
		Password:     "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	stored, _ := f.users.FindByEmail(context.Background(), "cook@example.com")
	require.NotNil(t, stored)
	assert.True(t, stored.HasRole(db_models.RoleUser))
	assert.True(t, stored.HasRole(db_models.RoleChef))
	assert.False(t, stored.HasRole(db_models.RoleAdmin))
	assert.Equal(t, "cook", user.Name)
}

func TestRegisterManagementGetsManager(t *testing.T) {
	f := newAuthFixture()
	management := f.departments.byName("Management")

	_, _, err := f.service.Register(context.Background(), request_models.RegisterRequest{
		Name:         "boss",
		Email:        "boss@example.com",
		DepartmentID: management.ID.String(),
		Password:     "secret-pass",
	})
	require.NoError(t, err)

	stored, _ := f.users.FindByEmail(context.Background(), "boss@example.com")
	assert.True(t, stored.HasRole(db_models.RoleManager))
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "taken", "taken@example.com", "secret-pass", db_models.RoleUser)

	_, _, err := f.service.Register(context.Background(), request_models.RegisterRequest{
		Name:         "taken",
		Email:        "new@example.com",
		DepartmentID: f.departments.byName("Staff").ID.String(),
		Password:     "secret-pass",
	})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestRegisterRejectsUnknownDepartment(t *testing.T) {
	f := newAuthFixture()

	_, _, err := f.service.Register(context.Background(), request_models.RegisterRequest{
		Name:         "nobody",
		Email:        "nobody@example.com",
		DepartmentID: "3b241101-e2bb-4255-8caf-4136c566a962",
		Password:     "secret-pass",
	})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "department_id")
}

func TestLoginWrongCredentials(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "alice", "alice@example.com", "right-password", db_models.RoleUser)

	_, _, err := f.service.Login(context.Background(), request_models.LoginRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The provided credentials are incorrect.", verr.Fields["email"][0])
}

func TestLoginSuspendedIndefinitely(t *testing.T) {
	f := newAuthFixture()
	user := f.seedUser(t, "bob", "bob@example.com", "secret-pass", db_models.RoleUser)
	user.IsSuspended = true

	_, _, err := f.service.Login(context.Background(), request_models.LoginRequest{
		Name:     "bob",
		Email:    "bob@example.com",
		Password: "secret-pass",
	})
	var serr *utils.SuspendedError
	require.ErrorAs(t, err, &serr)
	assert.Nil(t, serr.SuspendedUntil)
}

func TestLoginSuspendedUntilFuture(t *testing.T) {
	f := newAuthFixture()
	user := f.seedUser(t, "carol", "carol@example.com", "secret-pass", db_models.RoleUser)
	until := time.Now().Add(2 * time.Hour)
	user.IsSuspended = true
	user.SuspendedUntil = &until

	_, _, err := f.service.Login(context.Background(), request_models.LoginRequest{
		Name:     "carol",
		Email:    "carol@example.com",
		Password: "secret-pass",
	})
	var serr *utils.SuspendedError
	require.ErrorAs(t, err, &serr)
	require.NotNil(t, serr.SuspendedUntil)
}

func TestLoginExpiredSuspensionNormalizes(t *testing.T) {
	f := newAuthFixture()
	user := f.seedUser(t, "dave", "dave@example.com", "secret-pass", db_models.RoleUser)
	until := time.Now().Add(-time.Hour)
	reason := "late"
	user.IsSuspended = true
	user.SuspendedUntil = &until
	user.SuspensionReason = &reason

	token, resp, err := f.service.Login(context.Background(), request_models.LoginRequest{
		Name:     "dave",
		Email:    "dave@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, resp.IsSuspended)

	stored, _ := f.users.FindByEmail(context.Background(), "dave@example.com")
	assert.False(t, stored.IsSuspended)
	assert.Nil(t, stored.SuspendedUntil)
	assert.Nil(t, stored.SuspensionReason)
}

func TestLogoutRevokesOnlyThatSession(t *testing.T) {
	f := newAuthFixture()
	user := f.seedUser(t, "erin", "erin@example.com", "secret-pass", db_models.RoleUser)

	first := &db_models.AccessToken{UserID: user.ID, Name: "main"}
	second := &db_models.AccessToken{UserID: user.ID, Name: "main"}
	require.NoError(t, f.tokens.Insert(context.Background(), first))
	require.NoError(t, f.tokens.Insert(context.Background(), second))

	require.NoError(t, f.service.Logout(context.Background(), first.ID))
	assert.Equal(t, 1, f.tokens.countFor(user.ID))
}

func TestForgotPasswordUnknownEmailStaysSilent(t *testing.T) {
	f := newAuthFixture()

	err := f.service.ForgotPassword(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, f.mail.sent)
}

func TestForgotPasswordSendsMailAndStoresToken(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "frank", "frank@example.com", "secret-pass", db_models.RoleUser)

	require.NoError(t, f.service.ForgotPassword(context.Background(), "frank@example.com"))
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "frank@example.com", f.mail.sent[0].To)

	token := f.mail.sent[0].Body
	email, ok := f.resetTokens.Peek(token)
	require.True(t, ok)
	assert.Equal(t, "frank@example.com", email)
}

func TestResetPasswordConsumesTokenAndRevokesSessions(t *testing.T) {
	f := newAuthFixture()
	user := f.seedUser(t, "grace", "grace@example.com", "old-password", db_models.RoleUser)
	require.NoError(t, f.tokens.Insert(context.Background(), &db_models.AccessToken{UserID: user.ID, Name: "main"}))

	f.resetTokens.Set("reset-token", "grace@example.com", time.Minute)

	err := f.service.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Email:                "grace@example.com",
		Token:                "reset-token",
		Password:             "new-password",
		PasswordConfirmation: "new-password",
	})
	require.NoError(t, err)

	assert.Zero(t, f.tokens.countFor(user.ID))
	assert.NoError(t, utils.ComparePasswords(user.PasswordHash, "new-password"))

	// Single use.
	err = f.service.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Email:                "grace@example.com",
		Token:                "reset-token",
		Password:             "another-password",
		PasswordConfirmation: "another-password",
	})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestResetPasswordRejectsMismatchedEmail(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "henry", "henry@example.com", "old-password", db_models.RoleUser)
	f.resetTokens.Set("reset-token", "henry@example.com", time.Minute)

	err := f.service.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Email:                "other@example.com",
		Token:                "reset-token",
		Password:             "new-password",
		PasswordConfirmation: "new-password",
	})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "token")
}
