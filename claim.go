package gourdiancodec

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Header is the first token segment.
//
// Fields:
//   - Algorithm: Nominal signing scheme label (e.g., "HS256")
//   - Type: Token type label (e.g., "Jwt")
type Header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

// Payload is the second token segment.
//
// Fields:
//   - ExpiresAt: Absolute expiration, serialized as Unix seconds
//   - Data: Caller data, kept as raw JSON so it is reproduced byte for byte
//
// Payload implements jwt.Claims, so tokens can also be checked with
// jwt.ParseWithClaims when the header label names a standard HMAC algorithm.
type Payload struct {
	ExpiresAt *jwt.NumericDate `json:"exp"`
	Data      json.RawMessage  `json:"data"`
}

// ParsedToken holds the three still-encoded segments of a token.
type ParsedToken struct {
	Header    string
	Payload   string
	Signature string
}

// SigningString returns the signed part of the token, "header.payload".
func (p *ParsedToken) SigningString() string {
	return p.Header + "." + p.Payload
}

// Decode unmarshals the payload data into v.
func (p *Payload) Decode(v any) error {
	data := p.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return unmarshalJSON(data, v)
}

// expiredAt reports whether the payload is expired at now.
// A payload without exp is always expired.
func (p *Payload) expiredAt(now time.Time) bool {
	if p.ExpiresAt == nil {
		return true
	}
	return p.ExpiresAt.Unix() <= now.Unix()
}

// GetExpirationTime implements the jwt.Claims interface.
func (p *Payload) GetExpirationTime() (*jwt.NumericDate, error) {
	return p.ExpiresAt, nil
}

// GetIssuedAt implements the jwt.Claims interface.
func (p *Payload) GetIssuedAt() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetNotBefore implements the jwt.Claims interface.
func (p *Payload) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements the jwt.Claims interface.
func (p *Payload) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject implements the jwt.Claims interface.
func (p *Payload) GetSubject() (string, error) {
	return "", nil
}

// GetAudience implements the jwt.Claims interface.
func (p *Payload) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

var _ jwt.Claims = (*Payload)(nil)
