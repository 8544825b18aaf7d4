package core

// Notifier surfaces user-facing notices, the client's analog of toasts.
// Failures of background work land here; fatal conditions never do.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}
