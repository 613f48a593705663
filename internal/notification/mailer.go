// Package notification renders the emails a real backend would send. The
// simulator has no mail transport, so rendered messages are logged instead;
// delivery is fire-and-forget over the event bus and failures are never
// surfaced to the request that triggered them.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hrapp/hr-management/internal/account"
	"github.com/hrapp/hr-management/internal/core/events"
)

type Mailer struct {
	origin string
	logger *slog.Logger
}

// NewMailer subscribes the mailer to every account event type. Origin is the
// frontend base URL embedded in rendered links.
func NewMailer(bus *events.EventBus, origin string, logger *slog.Logger) *Mailer {
	m := &Mailer{origin: origin, logger: logger}

	bus.Subscribe(account.EventVerificationRequired, m.handleVerificationRequired)
	bus.Subscribe(account.EventAlreadyRegistered, m.handleAlreadyRegistered)
	bus.Subscribe(account.EventPasswordReset, m.handlePasswordReset)
	bus.Subscribe(account.EventFirstAdmin, m.handleFirstAdmin)
	return m
}

func payloadString(event events.Event, key string) string {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := data[key].(string)
	return s
}

func (m *Mailer) deliver(subject, email, body string) {
	m.logger.Info("simulated email delivered",
		"subject", subject,
		"to", email,
		"body", body)
}

func (m *Mailer) handleVerificationRequired(ctx context.Context, event events.Event) error {
	email := payloadString(event, "email")
	token := payloadString(event, "token")
	verifyURL := fmt.Sprintf("%s/account/verify-email?token=%s", m.origin, token)
	m.deliver("Verification Email", email,
		fmt.Sprintf("Please click the link to verify your email address: %s", verifyURL))
	return nil
}

func (m *Mailer) handleAlreadyRegistered(ctx context.Context, event events.Event) error {
	email := payloadString(event, "email")
	forgotURL := fmt.Sprintf("%s/account/forgot-password", m.origin)
	m.deliver("Email Already Registered", email,
		fmt.Sprintf("Your email %s is already registered. If you don't know your password visit %s", email, forgotURL))
	return nil
}

func (m *Mailer) handlePasswordReset(ctx context.Context, event events.Event) error {
	email := payloadString(event, "email")
	token := payloadString(event, "token")
	resetURL := fmt.Sprintf("%s/account/reset-password?token=%s", m.origin, token)
	m.deliver("Reset Password Email", email,
		fmt.Sprintf("Please click the link to reset your password, valid for 1 day: %s", resetURL))
	return nil
}

func (m *Mailer) handleFirstAdmin(ctx context.Context, event events.Event) error {
	email := payloadString(event, "email")
	m.deliver("First User Login", email,
		"You can log in directly: the first registered account is an admin and already verified")
	return nil
}
