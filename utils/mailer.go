package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"pagenest/config"
)

// Sender is the transactional-email contract the controllers and the
// campaign worker depend on. Production uses the SMTP mailer below;
// tests substitute a fake.
type Sender interface {
	Send(to, subject, html string) error
}

// Mailer sends mail over the configured SMTP relay.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, html string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromEmail))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

// Embedded email templates
var emailTemplates = map[string]string{
	"lead_notify": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .lead-email { font-size: 20px; font-weight: bold; color: #3498db; margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>New Lead Captured</h2>
    </div>

    <div class="content">
        <p>Good news — someone just signed up on your page{{if .ListName}} ({{.ListName}}){{end}}:</p>

        <div class="lead-email">{{.LeadEmail}}</div>

        <p>You now have {{.LeadCount}} lead{{if ne .LeadCount 1}}s{{end}} on this page.</p>
    </div>

    <div class="footer">
        <p>© {{.Year}} Pagenest. All rights reserved.</p>
    </div>
</body>
</html>`,

	"lead_thank_you": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .button { display: inline-block; padding: 10px 20px; background-color: #3498db; color: white; text-decoration: none; border-radius: 4px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>{{.Headline}}</h2>
    </div>

    <div class="content">
        <p>{{.Message}}</p>
        {{if .PDFURL}}
        <p style="text-align: center;">
            <a href="{{.PDFURL}}" class="button">Download your copy</a>
        </p>
        {{end}}
    </div>

    <div class="footer">
        <p>You received this email because you signed up on {{.PageTitle}}.</p>
        <p>© {{.Year}} Pagenest. All rights reserved.</p>
    </div>
</body>
</html>`,
}

// RenderEmailTemplate executes one of the embedded templates.
func RenderEmailTemplate(name string, data interface{}) (string, error) {
	raw, ok := emailTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	tmpl, err := template.New(name).Parse(raw)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// SendLeadNotification mails the page owner about a freshly captured lead.
func SendLeadNotification(m Sender, ownerEmail, leadEmail, listName string, leadCount int) error {
	body, err := RenderEmailTemplate("lead_notify", struct {
		Subject   string
		LeadEmail string
		ListName  string
		LeadCount int
		Year      int
	}{
		Subject:   "New lead on your page",
		LeadEmail: leadEmail,
		ListName:  listName,
		LeadCount: leadCount,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return m.Send(ownerEmail, "New lead on your page", body)
}

// SendLeadThankYou mails the visitor their thank-you message and, when
// the page auto-sends its PDF, the download link.
func SendLeadThankYou(m Sender, leadEmail, pageTitle, message, pdfURL string) error {
	if message == "" {
		message = "Thanks for signing up!"
	}
	body, err := RenderEmailTemplate("lead_thank_you", struct {
		Subject   string
		Headline  string
		Message   string
		PDFURL    string
		PageTitle string
		Year      int
	}{
		Subject:   "Thanks for signing up",
		Headline:  "Thank you!",
		Message:   message,
		PDFURL:    pdfURL,
		PageTitle: pageTitle,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return m.Send(leadEmail, "Thanks for signing up", body)
}
