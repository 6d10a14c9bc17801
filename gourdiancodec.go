// gourdiancodec.go

package gourdiancodec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// tokenPartCount is the number of dot-separated segments in a token (header.payload.signature).
const tokenPartCount = 3

// maxExpiresAt is the largest exp, in Unix seconds, that survives a float64 round trip.
const maxExpiresAt int64 = 1 << 53

// GourdianTokenCodec defines the interface for producing and validating signed tokens.
type GourdianTokenCodec interface {
	// GenerateToken signs data into a token that expires after the default expiry
	GenerateToken(data any) (string, error)

	// GenerateTokenWithExpiry signs data into a token that expires after expirySeconds
	GenerateTokenWithExpiry(data any, expirySeconds int) (string, error)

	// ValidateToken verifies a token and returns its data
	ValidateToken(token string) (any, error)

	// ValidateTokenInto verifies a token and unmarshals its data into v
	ValidateTokenInto(token string, v any) error
}

// HMACCodec implements GourdianTokenCodec with an HMAC over the encoded
// header and payload.
//
// An HMACCodec never changes after construction. The With* methods return a
// reconfigured copy, so one codec may be shared by any number of goroutines.
type HMACCodec struct {
	config        GourdianCodecConfig
	secret        []byte
	signingMethod jwt.SigningMethod
	opts          codecOptions
}

var _ GourdianTokenCodec = (*HMACCodec)(nil)

// NewGourdianTokenCodec creates a codec from the provided configuration.
//
// The function:
//  1. Fills empty labels with their defaults and normalizes TokenType and HashAlgorithm
//  2. Validates the secret, the default expiry and the hash algorithm
//  3. Resolves the keyed-hash signing method
//
// # Example Usage
//
//	codec, err := NewGourdianTokenCodec(GourdianCodecConfig{
//	    SecretKey:     "s3cr3t",
//	    HashAlgorithm: "sha512",
//	    DefaultExpiry: 900,
//	}, WithLogger(logger))
//
// # Error Handling
//
// All configuration problems are reported as errors wrapping ErrConfig.
//
// The returned HMACCodec is safe for concurrent use by multiple goroutines.
func NewGourdianTokenCodec(config GourdianCodecConfig, opts ...Option) (*HMACCodec, error) {
	options := defaultCodecOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return newCodec(config, options)
}

// DefaultGourdianTokenCodec creates a codec with the given secret and the
// defaults of DefaultGourdianCodecConfig.
func DefaultGourdianTokenCodec(secretKey string, opts ...Option) (*HMACCodec, error) {
	return NewGourdianTokenCodec(DefaultGourdianCodecConfig(secretKey), opts...)
}

func newCodec(config GourdianCodecConfig, options codecOptions) (*HMACCodec, error) {
	config = config.normalize()

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	signingMethod, err := signingMethodFor(config.HashAlgorithm)
	if err != nil {
		return nil, err
	}

	codec := &HMACCodec{
		config:        config,
		secret:        []byte(config.SecretKey),
		signingMethod: signingMethod,
		opts:          options,
	}

	codec.opts.logger.Debug("token codec initialized",
		zap.String("header_algorithm", config.HeaderAlgorithm),
		zap.String("token_type", config.TokenType),
		zap.String("hash_algorithm", config.HashAlgorithm),
		zap.Int("default_expiry", config.DefaultExpiry),
	)

	return codec, nil
}

// Config returns a copy of the normalized configuration.
func (c *HMACCodec) Config() GourdianCodecConfig {
	return c.config
}

// SecretKey returns the signing secret.
func (c *HMACCodec) SecretKey() string {
	return c.config.SecretKey
}

// HeaderAlgorithm returns the header alg label.
func (c *HMACCodec) HeaderAlgorithm() string {
	return c.config.HeaderAlgorithm
}

// TokenType returns the header typ label.
func (c *HMACCodec) TokenType() string {
	return c.config.TokenType
}

// HashAlgorithm returns the keyed-hash identifier used for signing.
func (c *HMACCodec) HashAlgorithm() string {
	return c.config.HashAlgorithm
}

// DefaultExpiry returns the default token lifetime in seconds.
func (c *HMACCodec) DefaultExpiry() int {
	return c.config.DefaultExpiry
}

// WithSecretKey returns a copy of the codec that signs with secretKey.
func (c *HMACCodec) WithSecretKey(secretKey string) (*HMACCodec, error) {
	config := c.config
	config.SecretKey = secretKey
	return newCodec(config, c.opts)
}

// WithHashAlgorithm returns a copy of the codec that signs with hashAlgorithm.
func (c *HMACCodec) WithHashAlgorithm(hashAlgorithm string) (*HMACCodec, error) {
	config := c.config
	config.HashAlgorithm = hashAlgorithm
	return newCodec(config, c.opts)
}

// WithDefaultExpiry returns a copy of the codec with a new default lifetime in seconds.
func (c *HMACCodec) WithDefaultExpiry(seconds int) (*HMACCodec, error) {
	config := c.config
	config.DefaultExpiry = seconds
	return newCodec(config, c.opts)
}

// WithHeaderAlgorithm returns a copy of the codec with a new header alg label.
// Signing is unaffected; tokens issued under the old label stay valid.
func (c *HMACCodec) WithHeaderAlgorithm(headerAlgorithm string) *HMACCodec {
	clone := *c
	clone.config.HeaderAlgorithm = headerAlgorithm
	clone.config = clone.config.normalize()
	return &clone
}

// WithTokenType returns a copy of the codec with a new header typ label.
func (c *HMACCodec) WithTokenType(tokenType string) *HMACCodec {
	clone := *c
	clone.config.TokenType = tokenType
	clone.config = clone.config.normalize()
	return &clone
}

// EncodeHeader returns the encoded header segment for the current configuration.
func (c *HMACCodec) EncodeHeader() (string, error) {
	headerJSON, err := json.Marshal(Header{
		Algorithm: c.config.HeaderAlgorithm,
		Type:      c.config.TokenType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	return encodeSegment(headerJSON), nil
}

// EncodePayload returns the encoded payload segment for data. The token
// expires expirySeconds from now, or after the default expiry when
// expirySeconds is not positive.
func (c *HMACCodec) EncodePayload(data any, expirySeconds int) (string, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	if expirySeconds <= 0 {
		expirySeconds = c.config.DefaultExpiry
	}

	now := c.opts.now().Unix()
	if int64(expirySeconds) > maxExpiresAt-now {
		return "", fmt.Errorf("%w: expiry of %d seconds is out of range", ErrSerialization, expirySeconds)
	}

	payload := Payload{
		ExpiresAt: jwt.NewNumericDate(time.Unix(now+int64(expirySeconds), 0)),
		Data:      dataJSON,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	return encodeSegment(payloadJSON), nil
}

// DecodeHeader decodes a header segment. The result is informational and is
// never used to choose how a token is verified.
func (c *HMACCodec) DecodeHeader(encoded string) (*Header, error) {
	headerJSON, err := decodeSegment(encoded)
	if err != nil {
		return nil, err
	}

	var header Header
	if err := unmarshalJSON(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: invalid header: %w", ErrMalformedToken, err)
	}

	return &header, nil
}

// DecodePayload decodes a payload segment. Invalid base64 or JSON yields an
// error wrapping ErrMalformedToken; any well-formed payload decodes, even one
// with null data or no exp.
func (c *HMACCodec) DecodePayload(encoded string) (*Payload, error) {
	payloadJSON, err := decodeSegment(encoded)
	if err != nil {
		return nil, err
	}

	var payload Payload
	if err := unmarshalJSON(payloadJSON, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid payload: %w", ErrMalformedToken, err)
	}

	return &payload, nil
}

// MakeSignature returns the encoded HMAC of "header.payload", where header
// and payload are the encoded segments, not their decoded JSON.
func (c *HMACCodec) MakeSignature(header, payload string) (string, error) {
	sig, err := c.signingMethod.Sign(header+"."+payload, c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return encodeSegment(sig), nil
}

// GenerateToken signs data into a token that expires after the default expiry.
func (c *HMACCodec) GenerateToken(data any) (string, error) {
	return c.GenerateTokenWithExpiry(data, 0)
}

// GenerateTokenWithExpiry signs data into a token that expires expirySeconds
// from now. A non-positive expirySeconds selects the default expiry.
//
// The only expected failure is data that cannot be marshaled to JSON, which
// is reported as an error wrapping ErrSerialization. No partial token is
// ever returned.
func (c *HMACCodec) GenerateTokenWithExpiry(data any, expirySeconds int) (string, error) {
	header, err := c.EncodeHeader()
	if err != nil {
		c.opts.logger.Warn("failed to encode token header", zap.Error(err))
		return "", err
	}

	payload, err := c.EncodePayload(data, expirySeconds)
	if err != nil {
		c.opts.logger.Warn("failed to encode token payload", zap.Error(err))
		return "", err
	}

	signature, err := c.MakeSignature(header, payload)
	if err != nil {
		c.opts.logger.Warn("failed to sign token", zap.Error(err))
		return "", err
	}

	return header + "." + payload + "." + signature, nil
}

// ParseToken splits a token into its three encoded segments. Anything other
// than exactly three non-empty segments is reported as ErrMalformedToken.
func ParseToken(token string) (*ParsedToken, error) {
	parts := strings.Split(token, ".")
	if len(parts) != tokenPartCount {
		return nil, fmt.Errorf("%w: token must have %d parts, got %d", ErrMalformedToken, tokenPartCount, len(parts))
	}

	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: token part %d is empty", ErrMalformedToken, i+1)
		}
	}

	return &ParsedToken{
		Header:    parts[0],
		Payload:   parts[1],
		Signature: parts[2],
	}, nil
}

// ValidateToken verifies the token signature and expiry and returns the
// token data. JSON numbers are returned as json.Number.
//
// Every rejection, whether the token is malformed, forged or expired,
// returns exactly ErrInvalidToken.
func (c *HMACCodec) ValidateToken(token string) (any, error) {
	payload, err := c.verify(token)
	if err != nil {
		c.reject(token, err)
		return nil, ErrInvalidToken
	}

	var data any
	if err := payload.Decode(&data); err != nil {
		c.reject(token, err)
		return nil, ErrInvalidToken
	}

	return data, nil
}

// ValidateTokenInto verifies the token like ValidateToken and unmarshals the
// token data into v. A valid token whose data does not fit v yields an error
// wrapping ErrSerialization.
func (c *HMACCodec) ValidateTokenInto(token string, v any) error {
	payload, err := c.verify(token)
	if err != nil {
		c.reject(token, err)
		return ErrInvalidToken
	}

	if err := payload.Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode token data: %w", ErrSerialization, err)
	}

	return nil
}

// verify runs every validation step and reports which one failed.
func (c *HMACCodec) verify(token string) (*Payload, error) {
	parsed, err := ParseToken(token)
	if err != nil {
		return nil, err
	}

	payload, err := c.DecodePayload(parsed.Payload)
	if err != nil {
		return nil, err
	}

	sig, err := decodeSegment(parsed.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if err := c.signingMethod.Verify(parsed.SigningString(), sig, c.secret); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if payload.expiredAt(c.opts.now()) {
		return nil, ErrExpiredToken
	}

	return payload, nil
}

// reject logs why a token was refused. The token itself is never logged.
func (c *HMACCodec) reject(token string, err error) {
	reason := "malformed"
	switch {
	case errors.Is(err, ErrInvalidSignature):
		reason = "signature"
	case errors.Is(err, ErrExpiredToken):
		reason = "expired"
	}

	c.opts.logger.Debug("token rejected",
		zap.String("reason", reason),
		zap.Int("token_length", len(token)),
		zap.Error(err),
	)
}
