// Package mailer composes plain-text notification reports and hands them to
// a mail transport. The composer owns validation and message framing; the
// transport owns transmission, and its failures surface as DELIVERY_ERROR.
package mailer

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// Transport delivers one composed message. Implementations must not panic;
// any failure is returned as an error.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Receipt reports a successful hand-off to the transport.
type Receipt struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	SentAt    string `json:"sentAt"`
}

// Composer validates notification requests, frames the report body, and
// delegates transmission.
type Composer struct {
	transport Transport
}

// NewComposer creates a Composer backed by the given transport.
func NewComposer(transport Transport) *Composer {
	return &Composer{transport: transport}
}

// Send validates the request, composes the report, and delivers it. The
// request is transient; nothing is retained after the call returns.
func (c *Composer) Send(ctx context.Context, recipient, subject, body string) (*Receipt, error) {
	if _, err := mail.ParseAddress(strings.TrimSpace(recipient)); err != nil {
		return nil, types.Validationf("invalid recipient address %q", recipient)
	}
	if strings.TrimSpace(subject) == "" {
		return nil, types.Validationf("subject must not be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, types.Validationf("body must not be empty")
	}
	if c.transport == nil {
		return nil, types.Deliveryf("no mail transport configured; set SMTP_HOST and SMTP_FROM")
	}

	now := time.Now().UTC()
	report := composeReport(body, now)

	if err := c.transport.Send(ctx, recipient, subject, report); err != nil {
		slog.Error("notification delivery failed", "recipient", recipient, "error", err)
		return nil, types.Deliveryf("failed to send notification to %s: %v", recipient, err)
	}

	slog.Info("notification sent", "recipient", recipient, "subject", subject)
	return &Receipt{
		Recipient: recipient,
		Subject:   subject,
		SentAt:    now.Format(time.RFC3339),
	}, nil
}

func composeReport(body string, sentAt time.Time) string {
	var b strings.Builder
	b.WriteString("Flink Cluster Notification\n")
	b.WriteString("==========================\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n\n---\nSent by flink-mcp-server at ")
	b.WriteString(sentAt.Format("2006-01-02 15:04:05"))
	b.WriteString(" UTC\n")
	return b.String()
}

// SMTPConfig configures the SMTP transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPTransport sends messages over SMTP with STARTTLS and plain auth.
type SMTPTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport creates an SMTP transport, or nil when no host or sender
// is configured so the composer can report a delivery error instead.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	if cfg.Host == "" || cfg.From == "" {
		return nil
	}
	return &SMTPTransport{cfg: cfg}
}

// Send delivers one plain-text message.
func (t *SMTPTransport) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(t.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(t.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if t.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(t.cfg.Username),
			gomail.WithPassword(t.cfg.Password),
		)
	}

	client, err := gomail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
