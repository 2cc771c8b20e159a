// Package queue carries login audit events over RabbitMQ.
package queue

import "time"

// LoginQueueName is the durable queue login events are published to.
const LoginQueueName = "auth.login"

// Login outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeUserNotFound = "user_not_found"
	OutcomePasswordFail = "password_error"
	OutcomeError        = "error"
)

// LoginEvent is published for every login attempt that reaches a terminal
// state.  It never carries the submitted password.
type LoginEvent struct {
	Username  string    `json:"username"`
	Outcome   string    `json:"outcome"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}
