package services

// Notifier delivers a message to a customer. Delivery is best-effort from the
// booking service's point of view; callers decide what a failure means.
type Notifier interface {
	Send(to, name, subject, message string) error
}
