package email

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
sendViaSendgrid sends through SendGrid, one message per recipient.

Requires SENDGRID_API_KEY in the environment.
*/
func sendViaSendgrid(sender string, recipients []string, subject string, textBody string, htmlBody string, attachmentPath string) (err error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("sendgrid provider needs SENDGRID_API_KEY")
	}

	attachmentName, attachmentBytes, attachmentErr := readAttachment(attachmentPath)
	if attachmentErr != nil {
		return attachmentErr
	}

	client := sendgrid.NewSendClient(apiKey)

	for _, recipient := range recipients {
		message := mail.NewSingleEmail(
			mail.NewEmail("", sender),
			subject,
			mail.NewEmail("", recipient),
			textBody,
			htmlBody,
		)

		if attachmentBytes != nil {
			attachment := mail.NewAttachment()
			attachment.SetContent(base64.StdEncoding.EncodeToString(attachmentBytes))
			attachment.SetType("application/pdf")
			attachment.SetFilename(attachmentName)
			attachment.SetDisposition("attachment")
			message.AddAttachment(attachment)
		}

		response, sendErr := client.Send(message)
		if sendErr != nil {
			return fmt.Errorf("sendgrid send to '%s': %w", recipient, sendErr)
		}
		if response.StatusCode >= 300 {
			return fmt.Errorf("sendgrid send to '%s': status %d: %s", recipient, response.StatusCode, response.Body)
		}

		tl.Log(
			tl.Notice1, palette.GreenBold, "SendGrid accepted message for '%s' with status %s",
			recipient, fmt.Sprintf("%d", response.StatusCode),
		)
	}

	return nil
}
