package gourdiancodec

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultHeaderAlgorithm = "HS256"  // Default header alg label
	DefaultTokenType       = "jwt"    // Default header typ label, stored as "Jwt"
	DefaultHashAlgorithm   = "sha256" // Default keyed-hash function
	DefaultExpiry          = 3600     // Default token lifetime in seconds
)

// GourdianCodecConfig holds the configuration of a token codec.
//
// HeaderAlgorithm and TokenType are labels written into the token header.
// They are informational only: the signature is always computed with
// HashAlgorithm, and validation never reads the header to pick a hash or key.
// HeaderAlgorithm may therefore disagree with HashAlgorithm.
//
// # Field Requirements
// - SecretKey: Required, non-empty
// - DefaultExpiry: Required, positive number of seconds
// - HashAlgorithm: One of SupportedHashAlgorithms (case-insensitive)
//
// Empty HeaderAlgorithm, TokenType and HashAlgorithm fall back to their defaults.
//
// # Example
//
//	config := GourdianCodecConfig{
//	    SecretKey:       "s3cr3t",
//	    HeaderAlgorithm: "HS512",
//	    TokenType:       "jwt",
//	    HashAlgorithm:   "sha512",
//	    DefaultExpiry:   900,
//	}
type GourdianCodecConfig struct {
	SecretKey       string `env:"GOURDIAN_CODEC_SECRET_KEY,required,notEmpty"`        // Shared HMAC secret
	HeaderAlgorithm string `env:"GOURDIAN_CODEC_HEADER_ALGORITHM" envDefault:"HS256"` // Header alg label
	TokenType       string `env:"GOURDIAN_CODEC_TOKEN_TYPE" envDefault:"jwt"`         // Header typ label
	HashAlgorithm   string `env:"GOURDIAN_CODEC_HASH_ALGORITHM" envDefault:"sha256"`  // Keyed-hash identifier
	DefaultExpiry   int    `env:"GOURDIAN_CODEC_DEFAULT_EXPIRY" envDefault:"3600"`    // Lifetime in seconds when none is given
}

// NewGourdianCodecConfig creates a GourdianCodecConfig with every field explicit.
//
// Parameters:
//   - secretKey: Shared secret used as the HMAC key
//   - headerAlgorithm: Header alg label (e.g., "HS256")
//   - tokenType: Header typ label (e.g., "jwt", stored as "Jwt")
//   - hashAlgorithm: Keyed-hash identifier (e.g., "sha256", "sha3-512")
//   - defaultExpiry: Token lifetime in seconds used when none is given
//
// The returned config is not validated; NewGourdianTokenCodec does that.
func NewGourdianCodecConfig(
	secretKey string,
	headerAlgorithm string,
	tokenType string,
	hashAlgorithm string,
	defaultExpiry int,
) GourdianCodecConfig {
	return GourdianCodecConfig{
		SecretKey:       secretKey,
		HeaderAlgorithm: headerAlgorithm,
		TokenType:       tokenType,
		HashAlgorithm:   hashAlgorithm,
		DefaultExpiry:   defaultExpiry,
	}
}

// DefaultGourdianCodecConfig returns a config with the given secret and all
// other fields at their defaults: HS256 header label, "Jwt" type label,
// sha256 keyed hash and a one hour lifetime.
func DefaultGourdianCodecConfig(secretKey string) GourdianCodecConfig {
	return NewGourdianCodecConfig(
		secretKey,
		DefaultHeaderAlgorithm,
		DefaultTokenType,
		DefaultHashAlgorithm,
		DefaultExpiry,
	)
}

// LoadGourdianCodecConfig reads a GourdianCodecConfig from the process
// environment. Any files given are read as .env files and used as a base
// layer that real environment variables override; the process environment
// itself is never modified.
func LoadGourdianCodecConfig(files ...string) (GourdianCodecConfig, error) {
	environment := make(map[string]string)

	if len(files) > 0 {
		fromFiles, err := godotenv.Read(files...)
		if err != nil {
			return GourdianCodecConfig{}, fmt.Errorf("%w: failed to read env files: %w", ErrConfig, err)
		}
		for k, v := range fromFiles {
			environment[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environment[k] = v
		}
	}

	var config GourdianCodecConfig
	if err := env.ParseWithOptions(&config, env.Options{Environment: environment}); err != nil {
		return GourdianCodecConfig{}, fmt.Errorf("%w: failed to parse environment: %w", ErrConfig, err)
	}

	return config, nil
}

// normalize fills empty labels with defaults and canonicalizes them.
func (config GourdianCodecConfig) normalize() GourdianCodecConfig {
	if config.HeaderAlgorithm == "" {
		config.HeaderAlgorithm = DefaultHeaderAlgorithm
	}
	if config.TokenType == "" {
		config.TokenType = DefaultTokenType
	}
	if config.HashAlgorithm == "" {
		config.HashAlgorithm = DefaultHashAlgorithm
	}

	config.TokenType = upperFirst(config.TokenType)
	config.HashAlgorithm = strings.ToLower(strings.TrimSpace(config.HashAlgorithm))

	return config
}

// validateConfig validates a normalized configuration.
func validateConfig(config *GourdianCodecConfig) error {
	if config.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", ErrConfig)
	}

	if config.DefaultExpiry <= 0 {
		return fmt.Errorf("%w: default expiry must be a positive number of seconds, got %d", ErrConfig, config.DefaultExpiry)
	}

	if _, ok := hashAlgorithms[config.HashAlgorithm]; !ok {
		return fmt.Errorf("%w: unsupported hash algorithm: %s", ErrConfig, config.HashAlgorithm)
	}

	return nil
}
