package port

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Notifier is the injectable "show message" capability backing the toast
// presenter. Absence of a notifier downgrades failures to log entries.
type Notifier interface {
	Show(message string, severity Severity)
}
