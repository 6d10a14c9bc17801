package gourdiancodec

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"hash"
	"sort"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// hashAlgorithms maps keyed-hash identifiers to the signing method that
// computes them. The SHA-256/384/512 entries reuse the stock JWT HMAC methods.
var hashAlgorithms = map[string]jwt.SigningMethod{
	"sha256":      jwt.SigningMethodHS256,
	"sha384":      jwt.SigningMethodHS384,
	"sha512":      jwt.SigningMethodHS512,
	"sha224":      newKeyedHashMethod("sha224", sha256.New224),
	"sha512/224":  newKeyedHashMethod("sha512/224", sha512.New512_224),
	"sha512/256":  newKeyedHashMethod("sha512/256", sha512.New512_256),
	"sha3-224":    newKeyedHashMethod("sha3-224", sha3.New224),
	"sha3-256":    newKeyedHashMethod("sha3-256", sha3.New256),
	"sha3-384":    newKeyedHashMethod("sha3-384", sha3.New384),
	"sha3-512":    newKeyedHashMethod("sha3-512", sha3.New512),
	"blake2b-256": newKeyedHashMethod("blake2b-256", unkeyed(blake2b.New256)),
	"blake2b-384": newKeyedHashMethod("blake2b-384", unkeyed(blake2b.New384)),
	"blake2b-512": newKeyedHashMethod("blake2b-512", unkeyed(blake2b.New512)),
	"blake2s-256": newKeyedHashMethod("blake2s-256", unkeyed(blake2s.New256)),
}

// SupportedHashAlgorithms returns the accepted HashAlgorithm identifiers in sorted order.
func SupportedHashAlgorithms() []string {
	names := make([]string, 0, len(hashAlgorithms))
	for name := range hashAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// signingMethodFor resolves a normalized hash identifier.
func signingMethodFor(hashAlgorithm string) (jwt.SigningMethod, error) {
	method, ok := hashAlgorithms[hashAlgorithm]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported hash algorithm: %s", ErrConfig, hashAlgorithm)
	}
	return method, nil
}

// unkeyed adapts the BLAKE2 constructors, which take an optional MAC key,
// to a plain hash constructor. HMAC supplies the key itself.
func unkeyed(newHash func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := newHash(nil)
		if err != nil {
			// only reachable with an oversized key, and the key is always nil
			panic(err)
		}
		return h
	}
}

// keyedHashMethod is an HMAC jwt.SigningMethod for hash functions that have
// no crypto.Hash registration usable by jwt.SigningMethodHMAC.
type keyedHashMethod struct {
	name    string
	newHash func() hash.Hash
}

func newKeyedHashMethod(name string, newHash func() hash.Hash) *keyedHashMethod {
	return &keyedHashMethod{name: name, newHash: newHash}
}

// Alg returns the hash identifier. It is never written into a token header.
func (m *keyedHashMethod) Alg() string {
	return m.name
}

// Sign returns the raw HMAC of signingString under key, which must be []byte.
func (m *keyedHashMethod) Sign(signingString string, key interface{}) ([]byte, error) {
	keyBytes, ok := key.([]byte)
	if !ok {
		return nil, jwt.ErrInvalidKeyType
	}

	mac := hmac.New(m.newHash, keyBytes)
	mac.Write([]byte(signingString))
	return mac.Sum(nil), nil
}

// Verify recomputes the HMAC and compares it to sig in constant time.
func (m *keyedHashMethod) Verify(signingString string, sig []byte, key interface{}) error {
	expected, err := m.Sign(signingString, key)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare(expected, sig) != 1 {
		return jwt.ErrSignatureInvalid
	}
	return nil
}
