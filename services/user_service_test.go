package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/cache"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
	"github.com/buttcoder420/FinalYear-backend/utils"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return assert.AnError
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (f *fakeSender) last(t *testing.T) sentMail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

type userFixture struct {
	svc     *UserService
	st      *store.Store
	pending *cache.RegistrationCache
	mail    *fakeSender
}

func newUserFixture(t *testing.T, ttl time.Duration) *userFixture {
	t.Helper()
	st := store.NewMemory()
	pending := cache.NewRegistrationCache(ttl)
	mail := &fakeSender{}
	svc := NewUserService(st, pending, mail, []byte("test-secret"), time.Hour)
	return &userFixture{svc: svc, st: st, pending: pending, mail: mail}
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		FirstName:   "Sara",
		LastName:    "Ahmed",
		UserName:    "saraahmed",
		Email:       "sara@example.com",
		PhoneNumber: "03007654321",
		Address:     "Street 9, Lahore",
		City:        "Lahore",
		UserField:   models.FieldBuyer,
		Password:    "secret123",
	}
}

func TestRegisterAndVerify(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)

	require.NoError(t, f.svc.Register(ctx, registerRequest()))

	// Nothing persisted until the code comes back.
	_, err := f.st.Users.FindByIdentifier(ctx, "sara@example.com")
	assert.Equal(t, store.ErrNotFound, err)

	mail := f.mail.last(t)
	assert.Equal(t, "sara@example.com", mail.to)
	assert.Equal(t, "Your Verification Code", mail.subject)

	pending, ok := f.pending.Get("sara@example.com")
	require.True(t, ok)
	assert.Contains(t, mail.body, pending.VerificationCode)
	assert.NotEqual(t, "secret123", pending.User.Password)
	assert.NotEmpty(t, pending.User.VerificationToken)

	user, token, err := f.svc.VerifyEmail(ctx, "sara@example.com", pending.VerificationCode)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.NotEmpty(t, token)

	parsed, err := utils.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsed)

	// The pending entry is consumed.
	_, ok = f.pending.Get("sara@example.com")
	assert.False(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)

	req := registerRequest()
	req.Email = ""
	err := f.svc.Register(ctx, req)
	require.Error(t, err)
	assert.Equal(t, "All fields are required", apperr.MessageOf(err))

	req = registerRequest()
	req.UserField = "vendor"
	err = f.svc.Register(ctx, req)
	require.Error(t, err)
	assert.Equal(t, "User field must be 'buyer' or 'seller'", apperr.MessageOf(err))

	req = registerRequest()
	req.City = "Atlantis"
	err = f.svc.Register(ctx, req)
	require.Error(t, err)
	assert.Equal(t, "Invalid city", apperr.MessageOf(err))
}

func TestRegisterDuplicateIdentifier(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)

	existing := &models.User{
		UserName:    "saraahmed",
		Email:       "other@example.com",
		PhoneNumber: "03000000000",
		IsVerified:  true,
	}
	require.NoError(t, f.st.Users.Insert(ctx, existing))

	err := f.svc.Register(ctx, registerRequest())
	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusOf(err))
	assert.Equal(t, "Email, Username, or phone number already exist.", apperr.MessageOf(err))
}

func TestRegisterMailFailure(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)
	f.mail.fail = true

	err := f.svc.Register(ctx, registerRequest())
	require.Error(t, err)
	assert.Equal(t, 500, apperr.StatusOf(err))
	assert.Equal(t, "Failed to send verification email.", apperr.MessageOf(err))
}

func TestVerifyEmailWrongCode(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)

	require.NoError(t, f.svc.Register(ctx, registerRequest()))

	_, _, err := f.svc.VerifyEmail(ctx, "sara@example.com", "000000")
	require.Error(t, err)
	assert.Equal(t, "Invalid verification code or email.", apperr.MessageOf(err))
}

func TestVerifyEmailExpiredRegistration(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, 10*time.Millisecond)

	require.NoError(t, f.svc.Register(ctx, registerRequest()))
	pending, ok := f.pending.Get("sara@example.com")
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, _, err := f.svc.VerifyEmail(ctx, "sara@example.com", pending.VerificationCode)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusOf(err))
	assert.Equal(t, "Invalid verification code or email.", apperr.MessageOf(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)

	require.NoError(t, f.svc.Register(ctx, registerRequest()))
	pending, _ := f.pending.Get("sara@example.com")
	_, _, err := f.svc.VerifyEmail(ctx, "sara@example.com", pending.VerificationCode)
	require.NoError(t, err)

	// Email, username and phone number all work as the identifier.
	for _, identifier := range []string{"sara@example.com", "saraahmed", "03007654321"} {
		user, token, err := f.svc.Login(ctx, identifier, "secret123")
		require.NoError(t, err, "identifier %s", identifier)
		assert.NotEmpty(t, token)
		require.NotNil(t, user.LastLoginAt)
	}

	_, _, err = f.svc.Login(ctx, "sara@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, apperr.StatusOf(err))
	assert.Equal(t, "Invalid password", apperr.MessageOf(err))

	_, _, err = f.svc.Login(ctx, "nobody@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, 404, apperr.StatusOf(err))
	assert.Equal(t, "Invalid credentials", apperr.MessageOf(err))
}

func TestLoginUnverified(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)

	hashed, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{
		UserName: "pending",
		Email:    "pending@example.com",
		Password: hashed,
	}
	require.NoError(t, f.st.Users.Insert(ctx, user))

	_, _, err = f.svc.Login(ctx, "pending@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, 401, apperr.StatusOf(err))
	assert.Equal(t, "Please verify your email before logging in.", apperr.MessageOf(err))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)

	hashed, err := utils.HashPassword("oldpass")
	require.NoError(t, err)
	user := &models.User{
		UserName:   "sara",
		Email:      "sara@example.com",
		Password:   hashed,
		City:       "Lahore",
		IsVerified: true,
	}
	require.NoError(t, f.st.Users.Insert(ctx, user))

	updated, err := f.svc.UpdateProfile(ctx, user.ID, ProfileUpdateRequest{
		UserUpdate:  UserUpdate{City: strPtr("Karachi")},
		OldPassword: "oldpass",
		NewPassword: "newpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "Karachi", updated.City)
	assert.True(t, utils.ComparePassword("newpass", updated.Password))

	_, err = f.svc.UpdateProfile(ctx, user.ID, ProfileUpdateRequest{
		OldPassword: "wrong",
		NewPassword: "another",
	})
	require.Error(t, err)
	assert.Equal(t, "Old password is incorrect", apperr.MessageOf(err))

	_, err = f.svc.UpdateProfile(ctx, user.ID, ProfileUpdateRequest{
		UserUpdate: UserUpdate{City: strPtr("Gotham")},
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid city", apperr.MessageOf(err))
}

func TestGetAllUsers(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t, time.Minute)

	lastLogin := time.Now().Add(-72 * time.Hour)
	require.NoError(t, f.st.Users.Insert(ctx, &models.User{UserName: "a", Email: "a@example.com", LastLoginAt: &lastLogin}))
	require.NoError(t, f.st.Users.Insert(ctx, &models.User{UserName: "b", Email: "b@example.com"}))

	infos, err := f.svc.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	for _, info := range infos {
		if info.UserName == "a" {
			assert.Equal(t, "3", info.DaysSinceLastLogin)
		} else {
			assert.Equal(t, "Never logged in", info.DaysSinceLastLogin)
		}
	}
}
