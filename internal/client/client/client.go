package client

import (
	"context"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

// Client is the contract of the gym membership API.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Ping(ctx context.Context) error

	ListCustomers(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error)
	SearchCustomers(ctx context.Context, query string) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in models.CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	ListBiometrics(ctx context.Context, customerID string) ([]models.Biometric, error)
	UploadBiometric(ctx context.Context, upload models.BiometricUpload) (*models.Biometric, error)
	SetPrimaryBiometric(ctx context.Context, id string) (*models.Biometric, error)
	DeleteBiometric(ctx context.Context, id string) error
}

// Session is what the transport needs from the session owner: the current
// bearer token, and a way to expire it when the server answers 401.
type Session interface {
	Token() string
	// Expire is told which token the server rejected.
	Expire(ctx context.Context, token string)
}
