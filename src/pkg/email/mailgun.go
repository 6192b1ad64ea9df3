package email

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
sendViaMailgun sends through Mailgun.

Requires MAILGUN_DOMAIN and MAILGUN_API_KEY in the environment.
*/
func sendViaMailgun(sender string, recipients []string, subject string, textBody string, htmlBody string, attachmentPath string) (err error) {
	domain := os.Getenv("MAILGUN_DOMAIN")
	apiKey := os.Getenv("MAILGUN_API_KEY")
	if domain == "" || apiKey == "" {
		return fmt.Errorf("mailgun provider needs MAILGUN_DOMAIN and MAILGUN_API_KEY")
	}

	mg := mailgun.NewMailgun(domain, apiKey)

	message := mg.NewMessage(sender, subject, textBody, recipients...)
	message.SetHTML(htmlBody)

	attachmentName, attachmentBytes, attachmentErr := readAttachment(attachmentPath)
	if attachmentErr != nil {
		return attachmentErr
	}
	if attachmentBytes != nil {
		message.AddBufferAttachment(attachmentName, attachmentBytes)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, id, sendErr := mg.Send(ctx, message)
	if sendErr != nil {
		return fmt.Errorf("mailgun send: %w", sendErr)
	}

	tl.Log(
		tl.Notice1, palette.GreenBold, "Mailgun accepted message '%s' for %v",
		id, recipients,
	)

	return nil
}
