package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"emiverify/internal/config"
	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"
	"emiverify/internal/utils"
	"emiverify/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) TouchLastLogin(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockTokenRepo struct {
	mock.Mock
}

func (m *MockTokenRepo) UpsertVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	return m.Called(ctx, email, code, expiresAt).Error(0)
}

func (m *MockTokenRepo) ConsumeVerificationCode(ctx context.Context, email, code string, now time.Time) (*models.User, error) {
	args := m.Called(ctx, email, code, now)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockTokenRepo) UpsertResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	return m.Called(ctx, email, token, expiresAt).Error(0)
}

func (m *MockTokenRepo) ConsumeResetToken(ctx context.Context, token, hash string, now time.Time) (*models.User, error) {
	args := m.Called(ctx, token, hash, now)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationCode(ctx context.Context, to, fullName, code string) error {
	return m.Called(ctx, to, fullName, code).Error(0)
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, fullName, link string) error {
	return m.Called(ctx, to, fullName, link).Error(0)
}

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	users  *MockUserRepo
	tokens *MockTokenRepo
	mailer *MockMailer
	jwt    *utils.TokenManager
	svc    *service
}

func newFixture() *fixture {
	f := &fixture{
		users:  new(MockUserRepo),
		tokens: new(MockTokenRepo),
		mailer: new(MockMailer),
		jwt: utils.NewTokenManager(config.JWTConfig{
			AccessSecret:  "a",
			RefreshSecret: "r",
			Issuer:        "test",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    time.Hour,
		}),
	}
	svc := NewService(f.users, f.tokens, f.jwt, f.mailer, validation.NewSchema(), Options{
		FrontendURL: "https://app.example.com",
	}).(*service)
	svc.hashCost = bcrypt.MinCost
	svc.now = func() time.Time { return fixedNow }
	f.svc = svc
	return f
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestSignup(t *testing.T) {
	f := newFixture()
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ada@example.com" && u.Password != "secret123" && !u.EmailVerified
	})).Return(nil)
	f.tokens.On("UpsertVerificationCode", mock.Anything, "ada@example.com", mock.AnythingOfType("string"), fixedNow.Add(30*time.Minute)).Return(nil)
	f.mailer.On("SendVerificationCode", mock.Anything, "ada@example.com", "Ada Lovelace", mock.AnythingOfType("string")).Return(nil)

	u, err := f.svc.Signup(context.Background(), models.SignupInput{
		FullName: " Ada Lovelace ",
		Email:    "Ada@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))

	code := f.mailer.Calls[0].Arguments.String(3)
	assert.Len(t, code, 6)
	assert.Equal(t, code, f.tokens.Calls[0].Arguments.String(2))

	f.users.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestSignup_MailFailureStillSucceeds(t *testing.T) {
	f := newFixture()
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.tokens.On("UpsertVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	_, err := f.svc.Signup(context.Background(), models.SignupInput{FullName: "Ada", Email: "ada@example.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestSignup_Errors(t *testing.T) {
	t.Run("weak password", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Signup(context.Background(), models.SignupInput{FullName: "Ada", Email: "ada@example.com", Password: "onlyletters"})
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Signup(context.Background(), models.SignupInput{FullName: "Ada", Email: "ada@example.com", Password: "a1"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("email taken", func(t *testing.T) {
		f := newFixture()
		f.users.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrEmailTaken)
		_, err := f.svc.Signup(context.Background(), models.SignupInput{FullName: "Ada", Email: "ada@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})
}

func TestVerifyEmail(t *testing.T) {
	f := newFixture()
	pending := &models.User{ID: 1, Email: "ada@example.com"}
	f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(pending, nil)
	f.tokens.On("ConsumeVerificationCode", mock.Anything, "ada@example.com", "123456", fixedNow).
		Return(&models.User{ID: 1, Email: "ada@example.com", EmailVerified: true}, nil)

	u, err := f.svc.VerifyEmail(context.Background(), models.VerifyEmailInput{Email: "ada@example.com", Code: "123456"})
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)
}

func TestVerifyEmail_Errors(t *testing.T) {
	t.Run("already verified", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(&models.User{ID: 1, EmailVerified: true}, nil)
		_, err := f.svc.VerifyEmail(context.Background(), models.VerifyEmailInput{Email: "ada@example.com", Code: "123456"})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyVerified)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(&models.User{ID: 1, Email: "ada@example.com"}, nil)
		f.tokens.On("ConsumeVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInvalidVerificationCode)
		_, err := f.svc.VerifyEmail(context.Background(), models.VerifyEmailInput{Email: "ada@example.com", Code: "000000"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
	})

	t.Run("malformed code", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.VerifyEmail(context.Background(), models.VerifyEmailInput{Email: "ada@example.com", Code: "12ab"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	f := newFixture()
	user := &models.User{ID: 7, Email: "ada@example.com", Password: hashed(t, "secret123"), EmailVerified: true, TokenVersion: 2}
	f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	f.users.On("TouchLastLogin", mock.Anything, uint(7)).Return(nil)

	res, err := f.svc.Login(context.Background(), models.LoginInput{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), res.User.ID)
	require.NotNil(t, res.User.LastLoginAt)

	claims, err := f.jwt.ParseAccessToken(res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 2, claims.TokenVersion)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		user    *models.User
		repoErr error
		pass    string
		wantErr error
	}{
		{"unknown email", nil, apperrors.ErrUserNotFound, "secret123", apperrors.ErrInvalidCredentials},
		{"wrong password", &models.User{ID: 1, EmailVerified: true}, nil, "nope12345", apperrors.ErrInvalidCredentials},
		{"unverified", &models.User{ID: 1}, nil, "secret123", apperrors.ErrEmailNotVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.user != nil {
				tt.user.Password = hashed(t, "secret123")
			}
			f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(tt.user, tt.repoErr)

			_, err := f.svc.Login(context.Background(), models.LoginInput{Email: "ada@example.com", Password: tt.pass})
			assert.ErrorIs(t, err, tt.wantErr)
			f.users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything)
		})
	}
}

func TestRefreshAndAuthenticate_TokenVersion(t *testing.T) {
	f := newFixture()
	f.svc.tokens = utils.NewTokenManager(config.JWTConfig{
		AccessSecret: "a", RefreshSecret: "r", Issuer: "test", AccessTTL: time.Hour, RefreshTTL: time.Hour,
	})
	user := &models.User{ID: 3, Email: "ada@example.com", TokenVersion: 1}
	pair, err := f.svc.tokens.GenerateTokens(user)
	require.NoError(t, err)

	f.users.On("GetByID", mock.Anything, uint(3)).Return(user, nil)

	claims, err := f.svc.Authenticate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)

	next, err := f.svc.RefreshTokens(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	_, err = f.svc.RefreshTokens(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	user.TokenVersion = 2
	_, err = f.svc.Authenticate(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	_, err = f.svc.RefreshTokens(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestForgotPassword(t *testing.T) {
	f := newFixture()
	user := &models.User{ID: 1, Email: "ada@example.com", FullName: "Ada"}
	f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	f.tokens.On("UpsertResetToken", mock.Anything, "ada@example.com", mock.AnythingOfType("string"), fixedNow.Add(30*time.Minute)).Return(nil)
	f.mailer.On("SendPasswordReset", mock.Anything, "ada@example.com", "Ada", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, f.svc.ForgotPassword(context.Background(), models.EmailInput{Email: "ada@example.com"}))

	link := f.mailer.Calls[0].Arguments.String(3)
	require.True(t, strings.HasPrefix(link, "https://app.example.com/reset-password?token="))
	token := strings.TrimPrefix(link, "https://app.example.com/reset-password?token=")
	assert.Len(t, token, 64)
	assert.Equal(t, hashToken(token), f.tokens.Calls[0].Arguments.String(2))
	assert.NotEqual(t, token, f.tokens.Calls[0].Arguments.String(2))
}

func TestForgotPassword_UnknownEmailSucceeds(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUserNotFound)

	assert.NoError(t, f.svc.ForgotPassword(context.Background(), models.EmailInput{Email: "ghost@example.com"}))
	f.tokens.AssertNotCalled(t, "UpsertResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestForgotPassword_InternalFailuresStillSucceed(t *testing.T) {
	t.Run("user lookup fails", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, errors.New("connection reset"))

		assert.NoError(t, f.svc.ForgotPassword(context.Background(), models.EmailInput{Email: "ada@example.com"}))
		f.tokens.AssertNotCalled(t, "UpsertResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("token store fails", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(&models.User{ID: 1, Email: "ada@example.com"}, nil)
		f.tokens.On("UpsertResetToken", mock.Anything, "ada@example.com", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))

		assert.NoError(t, f.svc.ForgotPassword(context.Background(), models.EmailInput{Email: "ada@example.com"}))
		f.mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResetPassword(t *testing.T) {
	f := newFixture()
	f.tokens.On("ConsumeResetToken", mock.Anything, hashToken("raw-token"), mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass99")) == nil
	}), fixedNow).Return(&models.User{ID: 1}, nil)

	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordInput{Token: "raw-token", NewPassword: "newpass99"})
	require.NoError(t, err)
	f.tokens.AssertExpectations(t)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	f := newFixture()
	f.tokens.On("ConsumeResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidResetToken)

	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordInput{Token: "used", NewPassword: "newpass99"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestChangePassword(t *testing.T) {
	f := newFixture()
	user := &models.User{ID: 5, Password: hashed(t, "oldpass11"), TokenVersion: 4}
	f.users.On("GetByID", mock.Anything, uint(5)).Return(user, nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.TokenVersion == 5
	})).Return(nil)

	err := f.svc.ChangePassword(context.Background(), 5, models.ChangePasswordInput{CurrentPassword: "oldpass11", NewPassword: "newpass22"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpass22")))

	err = f.svc.ChangePassword(context.Background(), 5, models.ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "newpass33"})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
}

func TestLogout(t *testing.T) {
	f := newFixture()
	f.users.On("IncrementTokenVersion", mock.Anything, uint(9)).Return(nil)
	assert.NoError(t, f.svc.Logout(context.Background(), 9))
	f.users.AssertExpectations(t)
}
