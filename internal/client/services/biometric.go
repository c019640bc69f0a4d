package services

import (
	"context"
	"strings"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/client"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

// DefaultMaxUploadBytes bounds a biometric sample when no limit is configured.
const DefaultMaxUploadBytes int64 = 5 << 20

type BiometricService interface {
	List(ctx context.Context, customerID string) ([]models.Biometric, error)
	Upload(ctx context.Context, upload models.BiometricUpload) (*models.Biometric, error)
	SetPrimary(ctx context.Context, id string) (*models.Biometric, error)
	Delete(ctx context.Context, id string) error
}

type biometricService struct {
	client   client.Client
	maxBytes int64
}

// NewBiometricService returns a service rejecting uploads above maxBytes.
// A non-positive maxBytes selects DefaultMaxUploadBytes.
func NewBiometricService(c client.Client, maxBytes int64) BiometricService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &biometricService{client: c, maxBytes: maxBytes}
}

func (s *biometricService) List(ctx context.Context, customerID string) ([]models.Biometric, error) {
	if err := ValidateID(customerID); err != nil {
		return nil, err
	}
	return s.client.ListBiometrics(ctx, strings.TrimSpace(customerID))
}

func (s *biometricService) Upload(ctx context.Context, upload models.BiometricUpload) (*models.Biometric, error) {
	if err := models.ValidateBiometricUpload(upload, s.maxBytes); err != nil {
		return nil, err
	}
	if err := ValidateID(upload.CustomerID); err != nil {
		return nil, err
	}
	return s.client.UploadBiometric(ctx, upload)
}

func (s *biometricService) SetPrimary(ctx context.Context, id string) (*models.Biometric, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	return s.client.SetPrimaryBiometric(ctx, strings.TrimSpace(id))
}

func (s *biometricService) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return s.client.DeleteBiometric(ctx, strings.TrimSpace(id))
}
