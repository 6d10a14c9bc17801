package gourdiancodec

import "errors"

var (
	// ErrConfig indicates the codec was constructed with unusable parameters.
	ErrConfig = errors.New("invalid codec config")

	// ErrSerialization indicates the token data cannot be represented as JSON.
	ErrSerialization = errors.New("token data is not JSON-serializable")

	// ErrInvalidToken is the only error ValidateToken and ValidateTokenInto
	// return for a rejected token, whatever the cause.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedToken indicates a token or segment that cannot be split or decoded.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature indicates the embedded signature does not match.
	ErrInvalidSignature = errors.New("token signature mismatch")

	// ErrExpiredToken indicates the token exp is not after the current time.
	ErrExpiredToken = errors.New("token has expired")
)
