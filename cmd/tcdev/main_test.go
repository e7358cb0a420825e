package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sudheej/tcdev/internal/cli"
	"github.com/sudheej/tcdev/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		if version.GetVersion() == "" {
			t.Error("expected version to be non-empty")
		}
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		if root == nil {
			t.Fatal("expected root command to be non-nil")
		}
		if root.Use == "" {
			t.Error("expected root command to have a use string")
		}
	})
}

// The start command surfaces the child's exit code through ExitCodeError;
// run() must forward it unchanged instead of collapsing to 1.
func TestExitCodeExtraction(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "exit code error",
			err:      &cli.ExitCodeError{Code: 3},
			wantCode: 3,
		},
		{
			name:     "wrapped exit code error",
			err:      fmt.Errorf("outer: %w", &cli.ExitCodeError{Code: 42}),
			wantCode: 42,
		},
		{
			name:     "generic error falls through",
			err:      errors.New("generic"),
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := 1
			var exitErr *cli.ExitCodeError
			if errors.As(tt.err, &exitErr) {
				code = exitErr.Code
			}
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
