// Package errors routes user-facing messages to the CLI or the TUI status line.
package errors

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console printer used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler handles errors by printing through a ColorOutput.
type CLIHandler struct {
	colors ColorOutput
}

// NewCLIHandler creates a CLIHandler writing to colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	if colors == nil {
		panic("NewCLIHandler: colors dependency cannot be nil")
	}
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string)   { h.colors.Error(msg) }
func (h *CLIHandler) Warning(msg string) { h.colors.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.colors.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.colors.Success(msg) }
