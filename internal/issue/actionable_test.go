// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "open archive"},
			want: "failed to open archive",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "open archive", Resource: "addon.zip"},
			want: "failed to open archive: addon.zip",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "open archive",
				Resource:  "addon.zip",
				Cause:     errors.New("zip: not a valid zip file"),
			},
			want: "failed to open archive: addon.zip: zip: not a valid zip file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := WrapWithContext(cause, "open archive", "addon.zip")

	if !errors.Is(err, cause) {
		t.Error("errors.Is does not find the wrapped cause")
	}
}

func TestWrapWithContextNil(t *testing.T) {
	t.Parallel()

	if got := WrapWithContext(nil, "open archive", "addon.zip"); got != nil {
		t.Errorf("WrapWithContext(nil, ...) = %v, want nil", got)
	}
}

func TestActionableErrorFormat(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("open archive").
		WithResource("addon.zip").
		WithSuggestion("Check that the file exists").
		WithSuggestion("Check that it is a valid zip").
		Wrap(errors.New("no such file")).
		Build()

	got := err.Format(false)
	if !strings.Contains(got, "failed to open archive: addon.zip: no such file") {
		t.Errorf("Format(false) missing main message: %q", got)
	}
	if !strings.Contains(got, "• Check that the file exists") {
		t.Errorf("Format(false) missing first suggestion: %q", got)
	}
	if strings.Contains(got, "Error chain:") {
		t.Errorf("Format(false) should not include error chain: %q", got)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain: %q", verbose)
	}
}

func TestErrorContextBuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("addon.zip").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}
