package gourdiancodec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// segmentParser decodes token segments. Strict decoding rejects non-zero
// trailing bits, so two different segment strings never decode to the same bytes.
var segmentParser = jwt.NewParser(jwt.WithStrictDecoding())

// encodeSegment encodes bytes as an unpadded base64url token segment.
func encodeSegment(seg []byte) string {
	return base64.RawURLEncoding.EncodeToString(seg)
}

// decodeSegment decodes an unpadded base64url token segment.
// The base64 decoder skips line breaks, so they are rejected here to keep a
// single accepted spelling per segment.
func decodeSegment(seg string) ([]byte, error) {
	if strings.ContainsAny(seg, "\r\n") {
		return nil, fmt.Errorf("%w: invalid segment encoding: line break in segment", ErrMalformedToken)
	}

	b, err := segmentParser.DecodeSegment(seg)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid segment encoding: %w", ErrMalformedToken, err)
	}
	return b, nil
}

// upperFirst upper-cases the first rune and leaves the rest untouched.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// unmarshalJSON decodes exactly one JSON value from data into v, keeping
// numbers as json.Number when v is an interface.
func unmarshalJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
