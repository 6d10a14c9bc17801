// tests_helpers_test.go

package gourdiancodec

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSecretKey = "s3cr3t"

// testEpoch is a whole second so exp values are exact.
var testEpoch = time.Unix(1_700_000_000, 0)

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testEpoch}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCodec(t testing.TB, opts ...Option) *HMACCodec {
	t.Helper()

	codec, err := DefaultGourdianTokenCodec(testSecretKey, opts...)
	require.NoError(t, err)
	return codec
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// flipByte returns s with the lowest bit of byte i inverted.
func flipByte(s string, i int) string {
	b := []byte(s)
	b[i] ^= 0x01
	return string(b)
}

func testUserData() map[string]any {
	return map[string]any{
		"user_id":  123,
		"username": "john_doe",
	}
}
