package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// SendGridMailer is the production Mailer. The underlying client is
// created once at process start and reused for every request; there is
// no hidden reinitialization.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	sandbox   bool
}

func NewSendGridMailer(apiKey, fromName, fromEmail string, sandbox bool) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		sandbox:   sandbox,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, to Address, subject, plainText, html string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	msg := mail.NewSingleEmail(from, subject, mail.NewEmail(to.Name, to.Email), plainText, html)

	if m.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send email to %s via SendGrid", to.Email)
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 400 {
		utils.Logger.Errorf("SendGrid rejected email to %s: status %d body %s", to.Email, resp.StatusCode, resp.Body)
		return fmt.Errorf("%w: sendgrid status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}
	return nil
}
