package notify

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

// EmailTransport sends violation alerts over SMTP with the snapshot attached.
type EmailTransport struct {
	host       string
	port       int
	sender     string
	password   string
	recipients []string
}

func NewEmailTransport(host string, port int, sender, password string, recipients []string) *EmailTransport {
	return &EmailTransport{
		host:       host,
		port:       port,
		sender:     sender,
		password:   password,
		recipients: recipients,
	}
}

// Send composes and delivers one alert email.
func (t *EmailTransport) Send(n Notification) error {
	if t.sender == "" || t.password == "" || len(t.recipients) == 0 {
		return fmt.Errorf("missing email configuration")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", t.sender)
	m.SetHeader("To", t.recipients...)
	m.SetHeader("Subject", fmt.Sprintf("🚨 ALERT: Restricted Area Violation Detected - %s", n.Class))

	body := fmt.Sprintf(`SECURITY ALERT - RESTRICTED AREA VIOLATION

Detected Object: %s
Confidence: %.2f%%
Time: %s

A restricted object has been detected in the prohibited area.
Please take immediate action if necessary.

---
Real-Time Intrusion Detection System
`, n.Class, n.Confidence*100, n.Timestamp.Format("2006-01-02 15:04:05"))
	m.SetBody("text/plain", body)

	if n.SnapshotPath != "" {
		if _, err := os.Stat(n.SnapshotPath); err == nil {
			m.Attach(n.SnapshotPath)
		}
	}

	dialer := gomail.NewDialer(t.host, t.port, t.sender, t.password)
	dialer.SSL = true

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// DiscardTransport is used when email notifications are disabled. Sends
// succeed silently so the throttle still advances and disabled deployments
// do not retry-spam the queue.
type DiscardTransport struct{}

func (DiscardTransport) Send(Notification) error {
	return nil
}
