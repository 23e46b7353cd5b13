package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	tests := []struct {
		err  *ConfigError
		want string
	}{
		{NewConfigError("server.listen_address", "is required"), "config error in server.listen_address: is required"},
		{NewConfigError("", "file not found"), "config error: file not found"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommandError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := NewCommandError("process", underlying)

	if want := "command process failed: underlying error"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, underlying) {
		t.Error("CommandError should unwrap to the underlying error")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"config", NewConfigError("x", "bad"), ExitConfigError},
		{"wrapped config", fmt.Errorf("loading: %w", NewConfigError("x", "bad")), ExitConfigError},
		{"command", NewCommandError("serve", errors.New("bind")), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
