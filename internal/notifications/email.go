package notifications

import (
	"fmt"
	"net/smtp"
	"strings"
)

// emailSender delivers HTML mail over plain SMTP
type emailSender struct {
	host string
	port int
	from string
}

func newEmailSender(host string, port int, from string) *emailSender {
	return &emailSender{host: host, port: port, from: from}
}

// configured reports whether the channel can send at all
func (s *emailSender) configured() bool {
	return s.host != "" && s.from != ""
}

// Send delivers one message. Blocking, bounded by the SMTP dial timeout.
func (s *emailSender) Send(to, subject, htmlBody string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("%w: SendMail to %s: %v", ErrEmailSend, to, err)
	}
	return nil
}
