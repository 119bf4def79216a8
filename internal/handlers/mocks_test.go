package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"emiverify/internal/middleware"
	"emiverify/internal/models"
	"emiverify/internal/services/auth"
	"emiverify/internal/services/export"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, input models.SignupInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, input models.VerifyEmailInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, input models.EmailInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, input models.LoginInput) (*auth.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.TokenPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, input models.EmailInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, input models.ResetPasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint, input models.ChangePasswordInput) error {
	return m.Called(ctx, userID, input).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserClaims), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uint, input models.UpdateProfileInput) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

type MockInsuranceService struct {
	mock.Mock
}

func (m *MockInsuranceService) Create(ctx context.Context, input models.InsuranceCaseInput) (*models.InsuranceCase, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InsuranceCase), args.Error(1)
}

func (m *MockInsuranceService) List(ctx context.Context, filter models.RecordFilter) ([]models.InsuranceCase, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.InsuranceCase), args.Error(1)
}

func (m *MockInsuranceService) Get(ctx context.Context, id uint) (*models.InsuranceCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InsuranceCase), args.Error(1)
}

func (m *MockInsuranceService) Update(ctx context.Context, id uint, patch models.InsuranceCasePatch) (*models.InsuranceCase, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InsuranceCase), args.Error(1)
}

func (m *MockInsuranceService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInsuranceService) BulkCreate(ctx context.Context, inputs []models.InsuranceCaseInput) (*models.BulkResult[models.InsuranceCase], error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkResult[models.InsuranceCase]), args.Error(1)
}

type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Create(ctx context.Context, input models.DocumentVerificationInput) (*models.DocumentVerification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentVerification), args.Error(1)
}

func (m *MockVerificationService) List(ctx context.Context, filter models.RecordFilter) ([]models.DocumentVerification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.DocumentVerification), args.Error(1)
}

func (m *MockVerificationService) Get(ctx context.Context, id uint) (*models.DocumentVerification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentVerification), args.Error(1)
}

func (m *MockVerificationService) Update(ctx context.Context, id uint, patch models.DocumentVerificationPatch) (*models.DocumentVerification, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentVerification), args.Error(1)
}

func (m *MockVerificationService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVerificationService) BulkCreate(ctx context.Context, inputs []models.DocumentVerificationInput) (*models.BulkResult[models.DocumentVerification], error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkResult[models.DocumentVerification]), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) InsuranceCases(ctx context.Context, filter models.RecordFilter) (*export.File, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.File), args.Error(1)
}

func (m *MockExportService) DocumentVerifications(ctx context.Context, filter models.RecordFilter) (*export.File, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.File), args.Error(1)
}

func (m *MockExportService) Summary(ctx context.Context, filter models.RecordFilter) (*export.Summary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Summary), args.Error(1)
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(true)})
}

// asUser stands in for the auth middleware.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(utils.ClaimsKey, &models.UserClaims{UserID: id, TokenVersion: 1})
		return c.Next()
	}
}

type response struct {
	Status   int
	Header   http.Header
	Body     []byte
	Envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
		Code    string          `json:"code"`
	}
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) *response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) *response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := &response{Status: resp.StatusCode, Header: resp.Header}
	out.Body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON ||
		bytes.HasPrefix(out.Body, []byte("{")) {
		require.NoError(t, json.Unmarshal(out.Body, &out.Envelope))
	}
	return out
}

func (r *response) data(t *testing.T, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Envelope.Data, dst))
}
