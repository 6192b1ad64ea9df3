// in case you need to create an entrypoint with multiple subprograms
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"sales-reporter/src/pkg/config"
	"sales-reporter/src/pkg/email"
	"sales-reporter/src/pkg/util"
)

/*
Pick a provider and use it to send an already-generated report PDF to the
specified address. Useful for verifying provider credentials without running
the whole pipeline.
*/
func sendReport(subprogram string, flags []string) {
	config.CheckIfEnvVarsPresent(
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION", // amazon ses
		"MAILGUN_DOMAIN", "MAILGUN_API_KEY", // mailgun
		"SENDGRID_API_KEY", // sendgrid
	)

	// common flags
	subprogramCmd := flag.NewFlagSet(subprogram, flag.ExitOnError)
	configPath := subprogramCmd.String("config", "./cfg/config.json", "Path to the config file")

	// custom flags
	provider := subprogramCmd.String("provider", "simulated", "Provider to use when sending emails")
	senderAddress := subprogramCmd.String("sender", "", "Sender's address")
	recipientAddress := subprogramCmd.String("recipient", "", "Recipient's address, comma separated for multiple")
	subject := subprogramCmd.String("subject", "", "Subject of the email. Defaults to the report file name")
	reportPath := subprogramCmd.String("report", "", "Path to the report PDF to attach")

	// parse and init config
	xerr.QuitIfError(subprogramCmd.Parse(flags), "Unable to subprogramCmd.Parse")
	config.InitializeConfig(*configPath)
	initializeEmailConfig()

	util.RequiredFlag(senderAddress, "sender")
	util.RequiredFlag(recipientAddress, "recipient")
	util.RequiredFlag(reportPath, "report")
	util.EnsureFlags()

	recipientAddresses := strings.Split(*recipientAddress, ",")

	reportName := filepath.Base(*reportPath)
	if *subject == "" {
		*subject = fmt.Sprintf("Sales Report: %s", reportName)
	}
	textBody := fmt.Sprintf("Please find the sales report '%s' attached.", reportName)
	htmlBody := fmt.Sprintf("<p>Please find the sales report <b>%s</b> attached.</p>", reportName)

	tl.Log(tl.Info, palette.Blue, "Sending '%s' to %s via %s", reportName, *recipientAddress, *provider)

	sendEmails := true
	record, err := email.SendMessage(email.Provider(*provider), &sendEmails, *senderAddress, recipientAddresses, *subject, textBody, htmlBody, *reportPath)
	xerr.QuitIfError(err, "Unable to email.SendMessage")

	if record != nil {
		tl.Log(tl.Info, palette.Green, "Recorded simulated send #%s", fmt.Sprintf("%d", record.ID))
	}
	tl.Log(tl.Info, palette.GreenBold, "Done")
}

func initializeEmailConfig() {
	emailCfg := email.DefaultValueConfig()
	if config.Section("email", &emailCfg) {
		email.InitializeConfig(&emailCfg)
	} else {
		email.InitializeConfig(nil)
	}
}

func main() {
	// Check if there are enough arguments
	if len(os.Args) < 2 {
		tl.Log(tl.Error, palette.Red, "Usage: %s", "go run src/cmd/send-email/main.go subprogram_name(for example send-report)")
		os.Exit(1)
	}
	subprogram := os.Args[1]
	flags := os.Args[2:]

	// Switch subprogram based on the first argument
	switch subprogram {
	case "send-report":
		sendReport(subprogram, flags)
	default:
		tl.Log(tl.Error, palette.Red, "Unknown subprogram: %s", subprogram)
		os.Exit(1)
	}
}
