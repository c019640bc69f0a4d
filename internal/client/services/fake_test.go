package services

import (
	"context"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements client.Client, recording the calls the services make.
type fakeAPI struct {
	mu sync.Mutex

	LoginResp *models.TokenResponse
	LoginErr  error

	Err   error
	Page  models.CustomerPage
	Found []models.Customer

	Calls []string
	Input models.CustomerInput
	Blob  models.BiometricUpload
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

func (f *fakeAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	f.record("login " + email)
	return f.LoginResp, f.LoginErr
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.Err }

func (f *fakeAPI) ListCustomers(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error) {
	f.record("list")
	return f.Page, f.Err
}

func (f *fakeAPI) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	f.record("search " + query)
	return f.Found, f.Err
}

func (f *fakeAPI) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	f.record("get " + id)
	return &models.Customer{ID: id}, f.Err
}

func (f *fakeAPI) CreateCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	f.record("create")
	f.Input = in
	return &models.Customer{ID: "new"}, f.Err
}

func (f *fakeAPI) UpdateCustomer(ctx context.Context, id string, in models.CustomerInput) (*models.Customer, error) {
	f.record("update " + id)
	f.Input = in
	return &models.Customer{ID: id}, f.Err
}

func (f *fakeAPI) DeleteCustomer(ctx context.Context, id string) error {
	f.record("delete " + id)
	return f.Err
}

func (f *fakeAPI) ListBiometrics(ctx context.Context, customerID string) ([]models.Biometric, error) {
	f.record("biometrics " + customerID)
	return nil, f.Err
}

func (f *fakeAPI) UploadBiometric(ctx context.Context, upload models.BiometricUpload) (*models.Biometric, error) {
	f.record("upload")
	f.Blob = upload
	return &models.Biometric{ID: "b"}, f.Err
}

func (f *fakeAPI) SetPrimaryBiometric(ctx context.Context, id string) (*models.Biometric, error) {
	f.record("primary " + id)
	return &models.Biometric{ID: id, IsPrimary: true}, f.Err
}

func (f *fakeAPI) DeleteBiometric(ctx context.Context, id string) error {
	f.record("rmbio " + id)
	return f.Err
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return raw
}

func adminToken(t *testing.T) string {
	return signedToken(t, jwt.MapClaims{
		"sub":   "u-1",
		"email": "laura@powergym.co",
		"role":  "admin",
		"name":  "Laura",
	})
}
