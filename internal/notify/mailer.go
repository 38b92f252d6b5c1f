package notify

import (
	"context"
	"fmt"
	"html"
	"net/mail"
	"strings"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	ContactTo string // shop operator inbox for contact-form messages
}

// SMTPMailer sends transactional mail over SMTP. Sends are synchronous;
// callers decide whether a failure is fatal for their operation.
type SMTPMailer struct {
	dialer    *gomail.Dialer
	from      string
	contactTo string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.From,
		contactTo: cfg.ContactTo,
	}
}

func validRecipient(to string) bool {
	if strings.ContainsAny(to, "\r\n") {
		return false
	}
	_, err := mail.ParseAddress(to)
	return err == nil
}

func (m *SMTPMailer) send(to, subject, plain, html string) error {
	if !validRecipient(to) {
		return ErrInvalidRecipient
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plain)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendOrderConfirmation(_ context.Context, to string, p OrderConfirmation) error {
	subject := "Order Confirmation"

	var plain strings.Builder
	fmt.Fprintf(&plain, "Thank you for your purchase, %s! Your order has been placed successfully.\n", p.Username)
	fmt.Fprintf(&plain, "Order ID: %s\nTotal Amount: %s\n\n", p.OrderID, FormatAmount(p.TotalAmount))
	for _, l := range p.Lines {
		fmt.Fprintf(&plain, "- %s x%d @ %s = %s\n",
			l.ProductName, l.Quantity, FormatAmount(l.UnitPrice), FormatAmount(l.LineTotal))
	}

	return m.send(to, subject, plain.String(), orderConfirmationHTML(p))
}

// orderConfirmationHTML escapes the customer-controlled fields (username,
// product names) before they land in the HTML alternative.
func orderConfirmationHTML(p OrderConfirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Thank you for your purchase, %s!</p>", html.EscapeString(p.Username))
	fmt.Fprintf(&b, "<p>Order ID: %s</p><table>", html.EscapeString(p.OrderID))
	for _, l := range p.Lines {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>x%d</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(l.ProductName), l.Quantity, FormatAmount(l.UnitPrice), FormatAmount(l.LineTotal))
	}
	fmt.Fprintf(&b, "</table><p>Total: %s</p>", FormatAmount(p.TotalAmount))
	return b.String()
}

func (m *SMTPMailer) SendPasswordReset(_ context.Context, to string, p PasswordReset) error {
	subject := "Password Reset Request"
	plain := fmt.Sprintf(
		"Dear %s, you requested a password reset. Click the link to reset your password: %s",
		p.Username, p.ResetURL)
	return m.send(to, subject, plain, passwordResetHTML(p))
}

func passwordResetHTML(p PasswordReset) string {
	return fmt.Sprintf(
		`<p>Dear %s,</p><p>You requested a password reset. <a href="%s">Reset your password</a>.</p>`,
		html.EscapeString(p.Username), html.EscapeString(p.ResetURL))
}

func (m *SMTPMailer) SendContactMessage(_ context.Context, p ContactMessage) error {
	subject := fmt.Sprintf("New Contact Form Submission from %s", p.Name)
	if strings.ContainsAny(p.Name, "\r\n") {
		return ErrInvalidRecipient
	}
	plain := fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", p.Name, p.Email, p.Message)
	return m.send(m.contactTo, subject, plain, "")
}
