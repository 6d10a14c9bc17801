// Package gourdiancodec creates and verifies compact, self-contained signed tokens.
//
// A token carries arbitrary JSON data and an expiration, protected by an HMAC
// over a shared secret. Tokens are tamper-evident, not confidential: anyone
// holding a token can read its data.
//
// # Token Format
//
// A token is three dot-separated, unpadded base64url segments:
//
//	header.payload.signature
//
//   - header: {"alg": HeaderAlgorithm, "typ": TokenType}
//   - payload: {"exp": <unix seconds>, "data": <any JSON value>}
//   - signature: HMAC(HashAlgorithm, SecretKey, header + "." + payload)
//
// The signature covers the encoded segments exactly as they appear in the
// token. The header labels are informational and never select how a token is
// verified. With the default "HS256" label and "sha256" hash the format is a
// standard HS256 JWS, readable by github.com/golang-jwt/jwt/v5.
//
// # Features
// - Configurable keyed hash: SHA-2, SHA-3 and BLAKE2 families
// - Constant-time signature comparison
// - One uniform ErrInvalidToken for malformed, forged and expired tokens
// - Immutable, goroutine-safe codecs; With* methods return reconfigured copies
// - Environment and .env configuration loading
// - Structured logging through go.uber.org/zap
//
// # Usage Example
//
//	codec, err := gourdiancodec.DefaultGourdianTokenCodec("s3cr3t")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := codec.GenerateTokenWithExpiry(map[string]any{
//	    "user_id":  123,
//	    "username": "john_doe",
//	}, 3600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := codec.ValidateToken(token)
//	if errors.Is(err, gourdiancodec.ErrInvalidToken) {
//	    // reject the request
//	}
package gourdiancodec
