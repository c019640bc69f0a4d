package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".c2lnbmF0dXJl"
}

func TestDecode_SignedToken(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u-42",
		"email": "laura@powergym.co",
		"role":  "admin",
		"name":  "Laura",
		"exp":   exp.Unix(),
	})
	raw, err := tok.SignedString([]byte("server-secret"))
	require.NoError(t, err)

	id, ok := Decode(raw)
	require.True(t, ok)
	assert.Equal(t, "u-42", id.ID)
	assert.Equal(t, "laura@powergym.co", id.Email)
	assert.Equal(t, models.RoleAdmin, id.Role)
	assert.Equal(t, "Laura", id.Name)
	assert.True(t, id.ExpiresAt.Equal(exp))
}

func TestDecode_NameIsOptional(t *testing.T) {
	id, ok := Decode(rawToken(`{"sub":"u-7","email":"e@powergym.co","role":"employee"}`))
	require.True(t, ok)
	assert.Equal(t, models.Identity{ID: "u-7", Email: "e@powergym.co", Role: models.RoleEmployee}, id)
}

func TestDecode_PaddedPayload(t *testing.T) {
	header := base64.URLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	body := base64.URLEncoding.EncodeToString([]byte(`{"sub":"u-1","role":"admin"}`))

	id, ok := Decode(header + "." + body + ".sig")
	require.True(t, ok)
	assert.Equal(t, "u-1", id.ID)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"single segment", "abc"},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"empty payload", "a..c"},
		{"bad base64", "a.!!!.c"},
		{"not json", rawToken("not json")},
		{"json array", rawToken(`["sub","role"]`)},
		{"missing sub", rawToken(`{"email":"e@x.co","role":"admin"}`)},
		{"missing role", rawToken(`{"sub":"u-1","email":"e@x.co"}`)},
		{"wrong sub type", rawToken(`{"sub":42,"role":"admin"}`)},
		{"bad exp", rawToken(`{"sub":"u-1","role":"admin","exp":"tomorrow"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Decode(tt.raw)
			assert.False(t, ok)
			assert.Equal(t, models.Identity{}, id)
		})
	}
}
