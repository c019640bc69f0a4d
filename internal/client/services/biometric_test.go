package services

import (
	"context"
	"testing"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiometricService_UploadLimits(t *testing.T) {
	api := &fakeAPI{}
	s := NewBiometricService(api, 0)
	ctx := context.Background()

	up := models.BiometricUpload{
		CustomerID: customerID,
		Type:       models.BiometricFingerprint,
		FileName:   "thumb.png",
		Content:    make([]byte, DefaultMaxUploadBytes),
	}
	_, err := s.Upload(ctx, up)
	require.NoError(t, err)
	assert.Equal(t, "thumb.png", api.Blob.FileName)

	up.Content = make([]byte, DefaultMaxUploadBytes+1)
	_, err = s.Upload(ctx, up)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "file exceeds 5 MB", ve.Fields["file"])

	up.Content = []byte{1}
	up.CustomerID = "not-a-uuid"
	_, err = s.Upload(ctx, up)
	assert.Error(t, err)

	assert.Equal(t, []string{"upload"}, api.calls())
}

func TestBiometricService_CustomLimit(t *testing.T) {
	s := NewBiometricService(&fakeAPI{}, 1<<20)

	_, err := s.Upload(context.Background(), models.BiometricUpload{
		CustomerID: customerID,
		Type:       models.BiometricFace,
		FileName:   "f.jpg",
		Content:    make([]byte, 2<<20),
	})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "file exceeds 1 MB", ve.Fields["file"])
}

func TestBiometricService_ListPrimaryDelete(t *testing.T) {
	api := &fakeAPI{}
	s := NewBiometricService(api, 0)
	ctx := context.Background()
	const bioID = "0b6f5f43-1b0e-4f63-8f4c-6c2f0a9d7e21"

	_, err := s.List(ctx, customerID)
	require.NoError(t, err)

	b, err := s.SetPrimary(ctx, bioID)
	require.NoError(t, err)
	assert.True(t, b.IsPrimary)

	require.NoError(t, s.Delete(ctx, bioID))
	assert.Error(t, s.Delete(ctx, ""))

	assert.Equal(t, []string{"biometrics " + customerID, "primary " + bioID, "rmbio " + bioID}, api.calls())
}
