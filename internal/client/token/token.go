// Package token decodes the identity carried in a bearer token.
//
// Only the payload segment is inspected; the signature is the server's
// concern and is never verified on the client.
package token

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

// claims is the subset of the payload the console understands.
type claims struct {
	Sub   string           `json:"sub"`
	Email string           `json:"email"`
	Role  string           `json:"role"`
	Name  string           `json:"name"`
	Exp   *jwt.NumericDate `json:"exp"`
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode extracts the identity from a three-segment bearer token.
// It reports false for anything it cannot use: wrong segment count, bad
// base64url, invalid JSON, or a payload without "sub" or "role".
func Decode(raw string) (models.Identity, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) != 3 || parts[1] == "" {
		return models.Identity{}, false
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return models.Identity{}, false
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return models.Identity{}, false
	}
	if c.Sub == "" || c.Role == "" {
		return models.Identity{}, false
	}

	id := models.Identity{
		ID:    c.Sub,
		Email: c.Email,
		Role:  models.Role(c.Role),
		Name:  c.Name,
	}
	if c.Exp != nil {
		id.ExpiresAt = c.Exp.Time
	}
	return id, true
}
