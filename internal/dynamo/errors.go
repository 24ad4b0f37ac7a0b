package dynamo

import "errors"

// Domain errors for rendering operations.
var (
	// ErrShaderCompile indicates a vertex or fragment shader failed to compile.
	ErrShaderCompile = errors.New("dynamo: shader compilation failed")

	// ErrShaderLink indicates the shader program failed to link.
	ErrShaderLink = errors.New("dynamo: shader program link failed")

	// ErrNoContext indicates the surface cannot provide the requested drawing context.
	ErrNoContext = errors.New("dynamo: rendering context unavailable")

	// ErrInvalidConfig indicates a configuration value is outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownTheme indicates a theme mode that is not light, dark or system.
	ErrUnknownTheme = errors.New("dynamo: unknown theme mode")
)

// DiagnosticError wraps a sentinel with the driver-reported diagnostic text.
type DiagnosticError struct {
	Stage   string
	Log     string
	Wrapped error
}

func (e *DiagnosticError) Error() string {
	if e.Stage == "" {
		return e.Wrapped.Error() + ": " + e.Log
	}
	return e.Wrapped.Error() + " (" + e.Stage + "): " + e.Log
}

func (e *DiagnosticError) Unwrap() error {
	return e.Wrapped
}
