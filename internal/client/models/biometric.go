package models

import (
	"errors"
	"strings"
	"time"
)

// BiometricType is the kind of biometric sample.
type BiometricType string

const (
	BiometricFace        BiometricType = "face"
	BiometricFingerprint BiometricType = "fingerprint"
)

var BiometricTypes = []BiometricType{BiometricFace, BiometricFingerprint}

func (b BiometricType) Valid() bool { return contains(BiometricTypes, b) }

// Biometric is a read copy of a registered biometric record.
type Biometric struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customer_id"`
	Type         BiometricType  `json:"biometric_type"`
	RawImageURL  *string        `json:"raw_image_url,omitempty"`
	QualityScore *float64       `json:"quality_score,omitempty"`
	IsPrimary    bool           `json:"is_primary"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// BiometricUpload describes a multipart biometric registration.
type BiometricUpload struct {
	CustomerID   string
	Type         BiometricType
	FileName     string
	Content      []byte
	QualityScore *float64
	IsPrimary    *bool
	Metadata     map[string]string
}

var ErrIncorrectMetadata = errors.New("metadata item must be name=value")

// MetadataFromLines parses "name=value" lines into a map. Surrounding
// whitespace of names and values is trimmed.
func MetadataFromLines(lines []string) (map[string]string, error) {
	out := make(map[string]string, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.Contains(value, "=") {
			return nil, ErrIncorrectMetadata
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
