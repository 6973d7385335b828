package mail

import (
	"bytes"
	"embed"
	"fmt"
	"net/smtp"
	"text/template"
)

//go:embed templates/*.html
var templates embed.FS

// sendFunc matches smtp.SendMail; tests swap it out.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	FromName string
	From     string
	Password string
	Host     string
	Port     string
	auth     smtp.Auth
	send     sendFunc
}

func NewMail(from, fromName, password, host, port string) *Mailer {
	auth := smtp.PlainAuth("", from, password, host)
	return &Mailer{
		FromName: fromName,
		From:     from,
		Password: password,
		Host:     host,
		Port:     port,
		auth:     auth,
		send:     smtp.SendMail,
	}
}

// Enabled reports whether the mailer has credentials to send with.
func (m *Mailer) Enabled() bool {
	return m != nil && m.From != "" && m.Password != ""
}

// Render builds the full message (headers and HTML body) for templateName.
func (m *Mailer) Render(to, subject, templateName string, data interface{}) ([]byte, error) {
	tmpl, err := template.ParseFS(templates, "templates/"+templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.FromName, m.From))
	body.WriteString(fmt.Sprintf("To: %s\r\n", to))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n\r\n", subject))

	if err := tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return body.Bytes(), nil
}

func (m *Mailer) SendHTML(to, subject, templateName string, data interface{}) error {
	msg, err := m.Render(to, subject, templateName, data)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	if err := m.send(addr, m.auth, m.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
