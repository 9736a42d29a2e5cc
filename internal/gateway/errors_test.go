package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with status", &Error{Op: "fetch projects data", Status: 500, Message: "boom"}, "fetch projects data: boom (status 500)"},
		{"without status", &Error{Op: "log in", Message: "Login failed"}, "log in: Login failed"},
		{"falls back to cause", &Error{Op: "log in", Err: errors.New("dial tcp")}, "log in: dial tcp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsKindAndMessage_Wrapped(t *testing.T) {
	err := fmt.Errorf("saving: %w", &Error{Kind: NetworkFailure, Op: "update project", Message: "network error"})

	assert.True(t, IsKind(err, NetworkFailure))
	assert.False(t, IsKind(err, ServerRejection))
	assert.Equal(t, "network error", Message(err))
	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.Empty(t, Message(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation failure", ValidationFailure.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
