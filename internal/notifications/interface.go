package notifications

// Notifier delivers operator alerts. Implementations must be safe for
// concurrent use; delivery failure is never fatal to trading.
type Notifier interface {
	SendAlert(level, message string) error
}

// MultiNotifier fans an alert out to every member and returns the first
// error encountered after all deliveries were attempted.
type MultiNotifier []Notifier

func (m MultiNotifier) SendAlert(level, message string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.SendAlert(level, message); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
