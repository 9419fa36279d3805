// Package diag carries advisory (non-fatal) conditions alongside values.
//
// Parsing helpers in this module never log on their own. Anything that is
// worth telling a user about but does not stop a value from being built is
// returned as a Warning so callers can test for it, show it, or log it.
package diag

import (
	"fmt"
	"log/slog"
)

type Code string

const (
	ValueOutOfRange  Code = "value-out-of-range"
	IntervalCoerced  Code = "interval-coerced"
	FrequencyRounded Code = "frequency-rounded"
	KeyTrailingText  Code = "key-trailing-text"
	RestDropped      Code = "rest-dropped"
	DuplicateField   Code = "duplicate-field"
	NotationDropped  Code = "notation-dropped"
	MissingKey       Code = "missing-key"
)

type Warning struct {
	Code    Code
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

type Warnings []Warning

func (ws *Warnings) Addf(code Code, format string, args ...any) {
	*ws = append(*ws, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Extend appends other, keeping order.
func (ws *Warnings) Extend(other Warnings) {
	*ws = append(*ws, other...)
}

func (ws Warnings) Has(code Code) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Log writes every warning to logger at WARN level. A nil logger means
// slog.Default().
func (ws Warnings) Log(logger *slog.Logger, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range ws {
		attrs := append([]any{"code", string(w.Code)}, args...)
		logger.Warn(w.Message, attrs...)
	}
}
