package webread_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/fwojciec/webread"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webread.Errorf(webread.EBLOCKED, "challenge at %q", "https://example.com")

	assert.Equal(t, webread.EBLOCKED, webread.ErrorCode(err))
	assert.Equal(t, "challenge at \"https://example.com\"", webread.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webread.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webread.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("tier failed: %w", webread.Errorf(webread.EPARSE, "empty DOM"))

	assert.Equal(t, webread.EPARSE, webread.ErrorCode(err))
	assert.Equal(t, "empty DOM", webread.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, webread.EINTERNAL, webread.ErrorCode(err))
	assert.Equal(t, "Internal error", webread.ErrorMessage(err))
}

type timeoutError struct{}

func (timeoutError) Error() string { return "i/o timeout" }
func (timeoutError) Timeout() bool { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"application error keeps code", webread.Errorf(webread.EBLOCKED, "x"), webread.EBLOCKED},
		{"deadline exceeded", fmt.Errorf("get: %w", context.DeadlineExceeded), webread.ETIMEOUT},
		{"net timeout", &url.Error{Op: "Get", URL: "https://example.com", Err: timeoutError{}}, webread.ETIMEOUT},
		{"dns failure", &url.Error{Op: "Get", URL: "https://example.com", Err: &net.DNSError{Err: "no such host", Name: "example.invalid"}}, webread.ENETWORK},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, webread.ENETWORK},
		{"other", errors.New("boom"), webread.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, webread.Classify(tt.err))
		})
	}
}
