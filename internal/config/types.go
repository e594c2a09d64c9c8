// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"blendzip/internal/diagnose"
)

const (
	// FormatText renders reports as styled terminal text.
	FormatText OutputFormat = "text"
	// FormatJSON renders reports as indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatYAML renders reports as YAML.
	FormatYAML OutputFormat = "yaml"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidErrorDepth is returned when an ErrorDepth value is not positive.
	ErrInvalidErrorDepth = errors.New("invalid error depth")
	// ErrInvalidBlenderVersion is the sentinel error wrapped by InvalidBlenderVersionError.
	ErrInvalidBlenderVersion = errors.New("invalid blender version")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidOutputConfig is the sentinel error wrapped by InvalidOutputConfigError.
	ErrInvalidOutputConfig = errors.New("invalid output config")
	// ErrInvalidDiagnosisConfig is the sentinel error wrapped by InvalidDiagnosisConfigError.
	ErrInvalidDiagnosisConfig = errors.New("invalid diagnosis config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat specifies how diagnosis reports are rendered.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	// It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ErrorDepth is the marker nesting depth at which diagnosis reports an
	// error instead of a warning. A valid value must be at least 1.
	ErrorDepth int

	// InvalidErrorDepthError is returned when an ErrorDepth value is not positive.
	// It wraps ErrInvalidErrorDepth for errors.Is() compatibility.
	InvalidErrorDepthError struct {
		Value ErrorDepth
	}

	// BlenderVersion is a Blender release version such as "4.2.0".
	// The zero value ("") is valid and disables host version checks.
	BlenderVersion string

	// InvalidBlenderVersionError is returned when a BlenderVersion value is
	// non-empty but not a dotted numeric version.
	InvalidBlenderVersionError struct {
		Value BlenderVersion
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidOutputConfigError is returned when an OutputConfig has invalid fields.
	// It wraps ErrInvalidOutputConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidOutputConfigError struct {
		FieldErrors []error
	}

	// InvalidDiagnosisConfigError is returned when a DiagnosisConfig has invalid fields.
	// It wraps ErrInvalidDiagnosisConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidDiagnosisConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Output configures report rendering
		Output OutputConfig `json:"output" mapstructure:"output"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Diagnosis configures archive diagnosis behavior
		Diagnosis DiagnosisConfig `json:"diagnosis" mapstructure:"diagnosis"`
	}

	// OutputConfig configures report rendering.
	OutputConfig struct {
		// Format selects the report output format
		Format OutputFormat `json:"format" mapstructure:"format"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// DiagnosisConfig configures archive diagnosis behavior.
	DiagnosisConfig struct {
		// ErrorDepth is the nesting depth at which a package marker is an error
		ErrorDepth ErrorDepth `json:"error_depth" mapstructure:"error_depth"`
		// BlenderVersion is the host Blender version to check manifests against
		BlenderVersion BlenderVersion `json:"blender_version" mapstructure:"blender_version"`
	}
)

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is one of the defined formats,
// and a list of validation errors if it is not.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, json, yaml)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Int returns the ErrorDepth as a plain int.
func (d ErrorDepth) Int() int { return int(d) }

// IsValid returns whether the ErrorDepth is positive,
// and a list of validation errors if it is not.
func (d ErrorDepth) IsValid() (bool, []error) {
	if d < 1 {
		return false, []error{&InvalidErrorDepthError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidErrorDepthError.
func (e *InvalidErrorDepthError) Error() string {
	return fmt.Sprintf("invalid error depth %d: must be at least 1", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidErrorDepthError) Unwrap() error { return ErrInvalidErrorDepth }

// String returns the string representation of the BlenderVersion.
func (v BlenderVersion) String() string { return string(v) }

// IsValid returns whether the BlenderVersion is valid.
// The zero value ("") is valid (means "no host version check").
// Non-zero values must parse as a dotted numeric version.
func (v BlenderVersion) IsValid() (bool, []error) {
	if v == "" {
		return true, nil
	}
	if _, ok := diagnose.ParseVersion(string(v)); !ok {
		return false, []error{&InvalidBlenderVersionError{Value: v}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBlenderVersionError.
func (e *InvalidBlenderVersionError) Error() string {
	return fmt.Sprintf("invalid blender version %q: expected a dotted numeric version like 4.2.0", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidBlenderVersionError) Unwrap() error { return ErrInvalidBlenderVersion }

// IsValid returns whether the OutputConfig has valid fields.
// It delegates to Format.IsValid().
func (c OutputConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidOutputConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputConfigError.
func (e *InvalidOutputConfigError) Error() string {
	return fmt.Sprintf("invalid output config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidOutputConfig for errors.Is() compatibility.
func (e *InvalidOutputConfigError) Unwrap() error { return ErrInvalidOutputConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the DiagnosisConfig has valid fields.
// It delegates to ErrorDepth.IsValid() and BlenderVersion.IsValid().
func (c DiagnosisConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ErrorDepth.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.BlenderVersion.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidDiagnosisConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDiagnosisConfigError.
func (e *InvalidDiagnosisConfigError) Error() string {
	return fmt.Sprintf("invalid diagnosis config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidDiagnosisConfig for errors.Is() compatibility.
func (e *InvalidDiagnosisConfigError) Unwrap() error { return ErrInvalidDiagnosisConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Output.IsValid(), UI.IsValid(), and Diagnosis.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Diagnosis.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Diagnosis: DiagnosisConfig{
			ErrorDepth:     ErrorDepth(diagnose.DefaultErrorDepth),
			BlenderVersion: "", // No host version check unless configured
		},
	}
}
