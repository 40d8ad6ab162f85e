package gmailclient

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

const EMAIL_INTERVAL = 3 * time.Second

// SendEmail sends a plain text email with the specified subject and body
func (c *Client) SendEmail(to, subject, body string) error {
	return c.send(buildMessage(c.sender, to, subject, "text/plain", body))
}

// SendHTMLEmail sends an email whose body is an HTML document
func (c *Client) SendHTMLEmail(to, subject, htmlBody string) error {
	return c.send(buildMessage(c.sender, to, subject, "text/html", htmlBody))
}

// send throttles requests to respect Gmail API rate limits
func (c *Client) send(message string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		elapsed := time.Since(c.lastSendTime)
		if elapsed < EMAIL_INTERVAL {
			time.Sleep(EMAIL_INTERVAL - elapsed)
		}
	}

	gmailMessage := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(message)),
	}

	_, err := c.service.Users.Messages.Send("me", gmailMessage).Context(c.ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()

	return nil
}

// buildMessage renders an RFC 2822 message. The subject is Q-encoded so
// non-ASCII workplace names survive.
func buildMessage(from, to, subject, contentType, body string) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=\"UTF-8\"\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
