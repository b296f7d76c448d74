package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SiteURL  string
}

func NewEmailSender(host string, port int, user, password, from, siteURL string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		SiteURL:  siteURL,
	}
}

// SendMagicLink mails the sign-in link for an account provisioned during
// checkout. The link itself is minted by the auth layer; we only point
// the buyer at it.
func (s *EmailSender) SendMagicLink(to, name string) error {
	body, err := render(magicLinkTemplate, magicLinkData{
		Name:     displayName(name, to),
		LoginURL: s.SiteURL + "/login?email=" + to,
	})
	if err != nil {
		return err
	}
	return s.send(to, "Your WeTrain account is ready", body)
}

func (s *EmailSender) SendOrderConfirmation(to, name, packageName string, amount int64) error {
	body, err := render(orderConfirmationTemplate, orderConfirmationData{
		Name:         displayName(name, to),
		PackageName:  packageName,
		Amount:       amount,
		DashboardURL: s.SiteURL + "/dashboard",
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Payment received for %s", packageName), body)
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return body.String(), nil
}

func displayName(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
