package entity

import "fmt"

// OutboundEmail is what a notification gateway delivers. HTMLBody is
// already converted from plain text.
type OutboundEmail struct {
	ToEmail   string
	FromName  string
	FromEmail string
	Subject   string
	HTMLBody  string
}

// From formats the sender as "Name <email>".
func (e OutboundEmail) From() string {
	if e.FromName == "" {
		return e.FromEmail
	}
	return fmt.Sprintf("%s <%s>", e.FromName, e.FromEmail)
}

type DeliveryResult struct {
	Success   bool
	MessageID string
	Error     string
}

func DeliveryFailed(format string, args ...any) DeliveryResult {
	return DeliveryResult{Success: false, Error: fmt.Sprintf(format, args...)}
}
