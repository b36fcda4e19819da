package model

import "fmt"

// WarningType categorizes non-fatal conversion issues.
type WarningType int

const (
	WarningTypeUnknown WarningType = iota
	// WarningTypeImage indicates a referenced image could not be loaded.
	WarningTypeImage
	// WarningTypeDiagram indicates a diagram failed to render.
	WarningTypeDiagram
	// WarningTypeTheme indicates an unknown theme name fell back to default.
	WarningTypeTheme
)

func (wt WarningType) String() string {
	switch wt {
	case WarningTypeImage:
		return "image"
	case WarningTypeDiagram:
		return "diagram"
	case WarningTypeTheme:
		return "theme"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue encountered during conversion.
// Warnings never abort a run; they are accumulated and returned beside
// the result.
type Warning struct {
	Type    WarningType
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Type, w.Message)
}

// Warningf constructs a Warning with a formatted message.
func Warningf(t WarningType, format string, args ...any) Warning {
	return Warning{Type: t, Message: fmt.Sprintf(format, args...)}
}
