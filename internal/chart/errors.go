package chart

import (
	"fmt"
	"strings"
)

// ConfigurationError explains why a chart cannot be built from the current
// rows and role mapping. Callers show it as a placeholder.
type ConfigurationError struct {
	Chart   Type
	Reason  string
	Missing []string // unbound role names, if that is the cause
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: select %s", e.Chart.Label(), strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Chart.Label(), e.Reason)
}

func configErr(t Type, format string, args ...any) error {
	return &ConfigurationError{Chart: t, Reason: fmt.Sprintf(format, args...)}
}
