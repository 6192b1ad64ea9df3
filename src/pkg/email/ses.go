package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
sendViaSES sends through Amazon SES v2.

Credentials and region come from the standard AWS environment
(AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_REGION). The simple content
API carries no attachments, so those are reported and skipped here; use the
mailgun or sendgrid provider when the PDF must ride along.
*/
func sendViaSES(sender string, recipients []string, subject string, textBody string, htmlBody string, attachmentPath string) (err error) {
	if attachmentPath != "" {
		tl.Log(
			tl.Warning, palette.YellowBold, "SES provider skips attachment '%s' (simple content only)",
			attachmentPath,
		)
	}

	ctx := context.Background()

	awsCfg, cfgErr := awsconfig.LoadDefaultConfig(ctx)
	if cfgErr != nil {
		return fmt.Errorf("load AWS config: %w", cfgErr)
	}

	client := sesv2.NewFromConfig(awsCfg)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(sender),
		Destination: &types.Destination{
			ToAddresses: recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(textBody)},
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	}

	output, sendErr := client.SendEmail(ctx, input)
	if sendErr != nil {
		return fmt.Errorf("SES send: %w", sendErr)
	}

	tl.Log(
		tl.Notice1, palette.GreenBold, "SES accepted message '%s' for %v",
		aws.ToString(output.MessageId), recipients,
	)

	return nil
}
