package mailer

import (
	"fmt"

	"github.com/monngon/backend/pkg/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a single HTML email
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(
		m.cfg.SMTPHost,
		m.cfg.SMTPPort,
		m.cfg.SMTPUser,
		m.cfg.SMTPPassword,
	)

	return d.DialAndSend(msg)
}

// SendWelcome sends the signup greeting mail
func (m *Mailer) SendWelcome(to, name string) error {
	body := fmt.Sprintf("<p>Chào %s,</p><p>Chào mừng bạn đến với MónNgon! Hãy chia sẻ công thức đầu tiên của bạn nhé.</p>", name)
	return m.Send(to, "Chào mừng bạn đến với MónNgon", body)
}
