package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: Success},
		{name: "permission denied", err: errors.New("permission denied: USER CREATE"), want: PermissionDenied},
		{name: "invalid credentials", err: errors.New("SESSION_INVALID_CREDENTIALS: invalid credentials"), want: AuthError},
		{name: "not logged in", err: errors.New("not logged in"), want: AuthError},
		{name: "connection refused", err: fmt.Errorf("perform request: %w", errors.New("connection refused")), want: NetworkError},
		{name: "timeout", err: errors.New("request timeout exceeded"), want: NetworkError},
		{name: "required flag", err: errors.New(`required flag "user" not set`), want: UsageError},
		{name: "anything else", err: errors.New("something broke"), want: GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Success", Description(Success))
	assert.Equal(t, "Permission denied", Description(PermissionDenied))
	assert.Equal(t, "Unknown error", Description(99))
}
