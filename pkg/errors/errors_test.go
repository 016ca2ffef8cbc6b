// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code matching

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/modlink/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "source_missing",
			code:    errors.ErrSourceMissing,
			message: "module directory not found",
			wantStr: "[SOURCE_MISSING] module directory not found",
		},
		{
			name:    "backup_failed",
			code:    errors.ErrBackupFailed,
			message: "cannot move file aside",
			wantStr: "[BACKUP_FAILED] cannot move file aside",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Details == nil {
				t.Error("New() details should be initialized")
			}
			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrVanished, "%s disappeared", "Kernel/Foo.pm")
	if err.Message != "Kernel/Foo.pm disappeared" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrSymlinkCreate, "cannot link Kernel/Foo.pm")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}
		wantStr := "[SYMLINK_CREATE] cannot link Kernel/Foo.pm: permission denied"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
		if !stderrors.Is(err, baseErr) {
			t.Error("errors.Is() should reach the wrapped error")
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrDestMissing, "missing").
		WithDetail("path", "/opt/framework/Kernel")

	details := errors.GetErrorDetails(err)
	if details["path"] != "/opt/framework/Kernel" {
		t.Errorf("detail path = %v", details["path"])
	}
	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("plain errors have no details")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrFileExists, "error 1")
	err2 := errors.New(errors.ErrFileExists, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if stderrors.Is(err1, err3) {
		t.Error("errors.Is() should not match different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotDirectory, "x"), errors.ErrNotDirectory, true},
		{"different_code", errors.New(errors.ErrNotDirectory, "x"), errors.ErrInternal, false},
		{"wrapped_in_fmt", fmt.Errorf("outer: %w", errors.New(errors.ErrVanished, "x")), errors.ErrVanished, true},
		{"standard_error", stderrors.New("standard"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrManifestInvalid, "bad")); got != errors.ErrManifestInvalid {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN", got)
	}
}
