// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
)

// Mailer delivers welcome and password-reset messages.
type Mailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

// NewMailer creates a Mailer for the given SMTP endpoint.
func NewMailer(host, port, user, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<html><body>
<h2>Welcome, {{.Name}}!</h2>
<p>Your account is ready. We hope you find a tour you love.</p>
</body></html>`))

var passwordResetTmpl = template.Must(template.New("reset").Parse(`
<html><body>
<h2>Forgot your password, {{.Name}}?</h2>
<p>Submit a request to <code>{{.ResetURL}}</code> with your new password.</p>
<p>The link is valid for 10 minutes. If you didn't request this, ignore this email.</p>
</body></html>`))

// SendWelcome greets a freshly signed-up user.
func (m *Mailer) SendWelcome(toEmail, name string) error {
	body, err := render(welcomeTmpl, map[string]string{"Name": name})
	if err != nil {
		return err
	}
	return m.send(toEmail, "Welcome to the Tours family!", body)
}

// SendPasswordReset delivers the plaintext reset secret. The secret is never
// persisted, so a delivery failure here means the caller must roll the
// stored token back.
func (m *Mailer) SendPasswordReset(toEmail, name, resetURL string) error {
	body, err := render(passwordResetTmpl, map[string]string{
		"Name":     name,
		"ResetURL": resetURL,
	})
	if err != nil {
		return err
	}
	return m.send(toEmail, "Your password reset token (valid for 10 min)", body)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

func (m *Mailer) send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.from, to, subject, body,
	)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		slog.Error("smtp send failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	slog.Info("email sent", "to", to, "subject", subject)
	return nil
}
