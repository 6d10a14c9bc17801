// gourdiancodec_test.go

package gourdiancodec

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("Concrete Scenario", func(t *testing.T) {
		token, err := codec.GenerateTokenWithExpiry(testUserData(), 3600)
		require.NoError(t, err)
		require.Len(t, strings.Split(token, "."), 3)

		data, err := codec.ValidateToken(token)
		require.NoError(t, err)

		got, err := json.Marshal(data)
		require.NoError(t, err)
		assert.Equal(t, `{"user_id":123,"username":"john_doe"}`, string(got))
	})

	t.Run("Default Expiry", func(t *testing.T) {
		token, err := codec.GenerateToken("hello")
		require.NoError(t, err)

		data, err := codec.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "hello", data)
	})

	t.Run("Each Call Produces A New Token", func(t *testing.T) {
		clock := newTestClock()
		codec := newTestCodec(t, WithClock(clock.Now))

		first, err := codec.GenerateToken("same")
		require.NoError(t, err)

		clock.Advance(2 * time.Second)
		second, err := codec.GenerateToken("same")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	tests := []struct {
		name string
		data any
	}{
		{name: "Null", data: nil},
		{name: "String", data: "payload"},
		{name: "Empty String", data: ""},
		{name: "Integer", data: 42},
		{name: "Negative Integer", data: -7},
		{name: "Large Integer", data: int64(9007199254740993)},
		{name: "Float", data: 3.25},
		{name: "Boolean", data: true},
		{name: "Empty Array", data: []any{}},
		{name: "Mixed Array", data: []any{1, "two", nil, false, []int{3}}},
		{name: "Empty Object", data: map[string]any{}},
		{name: "Nested Object", data: map[string]any{
			"user":  map[string]any{"id": 1, "roles": []string{"admin", "editor"}},
			"flags": map[string]bool{"beta": true},
			"note":  nil,
		}},
		{name: "Unicode", data: map[string]string{"name": "Zoë 🚀", "quote": "\"<tag>&\""}},
		{name: "Struct", data: struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}{ID: 7, Name: "seven"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := codec.GenerateTokenWithExpiry(tt.data, 60)
			require.NoError(t, err)

			got, err := codec.ValidateToken(token)
			require.NoError(t, err)

			want, err := json.Marshal(tt.data)
			require.NoError(t, err)
			gotJSON, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(gotJSON))
		})
	}
}

func TestValidateTokenInto(t *testing.T) {
	codec := newTestCodec(t)

	type user struct {
		UserID   int    `json:"user_id"`
		Username string `json:"username"`
	}

	token, err := codec.GenerateToken(user{UserID: 123, Username: "john_doe"})
	require.NoError(t, err)

	t.Run("Decodes Into Struct", func(t *testing.T) {
		var got user
		require.NoError(t, codec.ValidateTokenInto(token, &got))
		assert.Equal(t, user{UserID: 123, Username: "john_doe"}, got)
	})

	t.Run("Mismatched Target", func(t *testing.T) {
		var got []string
		err := codec.ValidateTokenInto(token, &got)
		require.ErrorIs(t, err, ErrSerialization)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		var got user
		err := codec.ValidateTokenInto(token+"x", &got)
		assert.Equal(t, ErrInvalidToken, err)
	})
}

func TestCrossInstanceConsistency(t *testing.T) {
	codecA := newTestCodec(t)
	codecB := newTestCodec(t)

	token, err := codecA.GenerateToken(testUserData())
	require.NoError(t, err)

	data, err := codecB.ValidateToken(token)
	require.NoError(t, err)
	assert.NotNil(t, data)

	t.Run("Different Secret Rejects", func(t *testing.T) {
		other, err := DefaultGourdianTokenCodec("another-secret")
		require.NoError(t, err)

		_, err = other.ValidateToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("Different Hash Rejects", func(t *testing.T) {
		other, err := codecA.WithHashAlgorithm("sha512")
		require.NoError(t, err)

		_, err = other.ValidateToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})
}

func TestConfigurationIsolation(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.GenerateToken(testUserData())
	require.NoError(t, err)

	t.Run("Header Algorithm Change", func(t *testing.T) {
		relabeled := codec.WithHeaderAlgorithm("HS512")
		assert.Equal(t, "HS512", relabeled.HeaderAlgorithm())
		assert.Equal(t, "HS256", codec.HeaderAlgorithm())

		_, err := relabeled.ValidateToken(token)
		require.NoError(t, err)
	})

	t.Run("Token Type Change", func(t *testing.T) {
		relabeled := codec.WithTokenType("access")
		assert.Equal(t, "Access", relabeled.TokenType())
		assert.Equal(t, "Jwt", codec.TokenType())

		_, err := relabeled.ValidateToken(token)
		require.NoError(t, err)
	})

	t.Run("Header Label Diverges From Hash", func(t *testing.T) {
		config := DefaultGourdianCodecConfig(testSecretKey)
		config.HashAlgorithm = "sha3-512"
		diverged, err := NewGourdianTokenCodec(config)
		require.NoError(t, err)
		assert.Equal(t, "HS256", diverged.HeaderAlgorithm())

		token, err := diverged.GenerateToken("x")
		require.NoError(t, err)

		header, err := diverged.DecodeHeader(strings.Split(token, ".")[0])
		require.NoError(t, err)
		assert.Equal(t, "HS256", header.Algorithm)

		data, err := diverged.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "x", data)
	})
}

func TestWithMethodsReturnCopies(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("WithSecretKey", func(t *testing.T) {
		rekeyed, err := codec.WithSecretKey("rotated")
		require.NoError(t, err)
		assert.Equal(t, "rotated", rekeyed.SecretKey())
		assert.Equal(t, testSecretKey, codec.SecretKey())

		_, err = codec.WithSecretKey("")
		require.ErrorIs(t, err, ErrConfig)
	})

	t.Run("WithHashAlgorithm", func(t *testing.T) {
		rehashed, err := codec.WithHashAlgorithm("BLAKE2b-512")
		require.NoError(t, err)
		assert.Equal(t, "blake2b-512", rehashed.HashAlgorithm())
		assert.Equal(t, "sha256", codec.HashAlgorithm())

		_, err = codec.WithHashAlgorithm("md5")
		require.ErrorIs(t, err, ErrConfig)
	})

	t.Run("WithDefaultExpiry", func(t *testing.T) {
		shorter, err := codec.WithDefaultExpiry(60)
		require.NoError(t, err)
		assert.Equal(t, 60, shorter.DefaultExpiry())
		assert.Equal(t, DefaultExpiry, codec.DefaultExpiry())

		_, err = codec.WithDefaultExpiry(0)
		require.ErrorIs(t, err, ErrConfig)
		_, err = codec.WithDefaultExpiry(-1)
		require.ErrorIs(t, err, ErrConfig)
	})

	t.Run("Options Carry Over", func(t *testing.T) {
		clock := newTestClock()
		codec := newTestCodec(t, WithClock(clock.Now))

		shorter, err := codec.WithDefaultExpiry(1)
		require.NoError(t, err)

		token, err := shorter.GenerateToken("x")
		require.NoError(t, err)

		clock.Advance(2 * time.Second)
		_, err = shorter.ValidateToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})
}
