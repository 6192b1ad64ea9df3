// Package email "sends" report documents. The simulated provider copies the
// attachment into the sent directory and records metadata for the dashboard;
// the real providers (SES, Mailgun, SendGrid) sit behind an explicit send
// gate and are never the default.
package email

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"sales-reporter/src/pkg/config"
)

// Provider selects the delivery mechanism.
type Provider string

const (
	ProviderSimulated Provider = "simulated"
	ProviderSES       Provider = "ses"
	ProviderMailgun   Provider = "mailgun"
	ProviderSendgrid  Provider = "sendgrid"
)

/*
SentRecord is the metadata saved for every simulated send, one JSON file per
record, named <id>.json. The dashboard reads these back for its sent list.
*/
type SentRecord struct {
	ID         int    `json:"id"`
	Timestamp  string `json:"timestamp"`
	From       string `json:"from"`
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Attachment string `json:"attachment"`
}

type Config struct {
	SentDir   string `json:"sent_dir,omitempty"`
	Sender    string `json:"sender,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		SentDir:   "./sent_emails",
		Sender:    "reports@example.com",
		Recipient: "boss@example.com",
		Subject:   "Monthly Sales Report",
		Body:      "Please find attached.",
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig()

/*
If local Config is provided - use it. Replace all missing values with default ones.

If not provided - just use defaultConfig.
*/
func InitializeConfig(localConfig *Config) {
	if localConfig == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "email", "not provided", "default email config")
		return
	}

	defaultConfig := DefaultValueConfig()

	Cfg = *localConfig

	tl.ApplyDefaults(&Cfg, defaultConfig, func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", config.GetPackageName(), tl.PrettyForStderr(defVal),
		)
	})

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "email", "provided", "local email config")
}

/*
SendMessage dispatches one email through the chosen provider.

The simulated provider always runs. The real providers additionally require
sendEmails to point at true; otherwise the send is skipped with a log line and
a nil record, which keeps accidental real deliveries impossible in dev.
*/
func SendMessage(provider Provider, sendEmails *bool, sender string, recipients []string, subject string, textBody string, htmlBody string, attachmentPath string) (record *SentRecord, err error) {
	if provider == ProviderSimulated || provider == "" {
		return SendSimulated(attachmentPath, sender, strings.Join(recipients, ", "), subject, textBody)
	}

	if sendEmails == nil || !*sendEmails {
		tl.Log(
			tl.Notice, palette.YellowBold, "Skipping real %s send to %v: sending is %s",
			provider, recipients, "disabled",
		)
		return nil, nil
	}

	switch provider {
	case ProviderSES:
		return nil, sendViaSES(sender, recipients, subject, textBody, htmlBody, attachmentPath)
	case ProviderMailgun:
		return nil, sendViaMailgun(sender, recipients, subject, textBody, htmlBody, attachmentPath)
	case ProviderSendgrid:
		return nil, sendViaSendgrid(sender, recipients, subject, textBody, htmlBody, attachmentPath)
	default:
		return nil, fmt.Errorf("unknown email provider '%s'", provider)
	}
}

/*
SendSimulated copies the attachment into the sent directory under a
timestamped name and writes a sequential-id metadata JSON next to it.

Returns the record so callers can log what got "sent".
*/
func SendSimulated(attachmentPath string, sender string, recipient string, subject string, body string) (record *SentRecord, err error) {
	_, statErr := os.Stat(attachmentPath)
	if statErr != nil {
		return nil, fmt.Errorf("attachment not found at '%s': %w", attachmentPath, statErr)
	}

	mkdirErr := os.MkdirAll(Cfg.SentDir, 0o755)
	if mkdirErr != nil {
		return nil, fmt.Errorf("create sent dir '%s': %w", Cfg.SentDir, mkdirErr)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	savedName := timestamp + "_" + filepath.Base(attachmentPath)

	copyErr := copyFile(attachmentPath, filepath.Join(Cfg.SentDir, savedName))
	if copyErr != nil {
		return nil, copyErr
	}

	record = &SentRecord{
		ID:         countSentRecords(Cfg.SentDir) + 1,
		Timestamp:  timestamp,
		From:       sender,
		To:         recipient,
		Subject:    subject,
		Body:       body,
		Attachment: savedName,
	}

	metadataPath := filepath.Join(Cfg.SentDir, fmt.Sprintf("%d.json", record.ID))
	saveErr := saveRecord(metadataPath, record)
	if saveErr != nil {
		return nil, saveErr
	}

	tl.Log(
		tl.Notice1, palette.GreenBold, "Simulated send %s: '%s' to '%s' with attachment '%s'",
		fmt.Sprintf("%d", record.ID), subject, recipient, savedName,
	)

	return record, nil
}

/*
copyFile copies a file's contents to a new location, overwriting any existing
file there.
*/
func copyFile(sourcePath string, destinationPath string) (err error) {
	sourceFile, openErr := os.Open(sourcePath)
	if openErr != nil {
		return fmt.Errorf("open '%s' for copy: %w", sourcePath, openErr)
	}
	defer func() {
		_ = sourceFile.Close()
	}()

	destinationFile, createErr := os.Create(destinationPath)
	if createErr != nil {
		return fmt.Errorf("create '%s': %w", destinationPath, createErr)
	}
	defer func() {
		_ = destinationFile.Close()
	}()

	_, copyErr := io.Copy(destinationFile, sourceFile)
	if copyErr != nil {
		return fmt.Errorf("copy '%s' to '%s': %w", sourcePath, destinationPath, copyErr)
	}

	return nil
}

/*
countSentRecords counts the metadata files already in the sent directory,
which yields the next sequential id.
*/
func countSentRecords(sentDir string) int {
	matches, globErr := filepath.Glob(filepath.Join(sentDir, "*.json"))
	if globErr != nil {
		return 0
	}
	return len(matches)
}

func saveRecord(destinationPath string, record *SentRecord) (err error) {
	jsonBytes, marshalErr := json.MarshalIndent(record, "", "  ")
	if marshalErr != nil {
		return fmt.Errorf("marshal sent record: %w", marshalErr)
	}

	writeErr := os.WriteFile(destinationPath, jsonBytes, 0o644)
	if writeErr != nil {
		return fmt.Errorf("write sent record '%s': %w", destinationPath, writeErr)
	}

	return nil
}

/*
readAttachment loads the attachment for the real providers; a missing path is
allowed and yields no attachment.
*/
func readAttachment(attachmentPath string) (fileName string, contents []byte, err error) {
	if attachmentPath == "" {
		return "", nil, nil
	}

	contents, readErr := os.ReadFile(attachmentPath)
	if readErr != nil {
		return "", nil, fmt.Errorf("read attachment '%s': %w", attachmentPath, readErr)
	}

	return filepath.Base(attachmentPath), contents, nil
}
