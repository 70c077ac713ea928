package notify

import "log"

// Severity selects the visual channel a toast is shown on.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityInfo        Severity = "info"
	SeveritySuccess     Severity = "success"
	SeverityWarning     Severity = "warning"
	SeverityDestructive Severity = "error"
)

// Sink displays a user-facing alert. Fire-and-forget: no return value and no
// failure reported back to the caller.
type Sink interface {
	Push(title, message string, severity Severity)
}

// LogSink writes alerts to the process log. Stands in for the UI toast layer.
type LogSink struct{}

func (LogSink) Push(title, message string, severity Severity) {
	log.Printf("🔔 [%s] %s: %s", severity, title, message)
}
