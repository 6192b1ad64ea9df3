package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"sales-reporter/src/pkg/config"
	"sales-reporter/src/pkg/email"
	"sales-reporter/src/pkg/report"
	"sales-reporter/src/pkg/samples"
	"sales-reporter/src/pkg/util"
)

/*
reportOptions controls which sample file is read and where output is written.
*/
type reportOptions struct {
	DataPath    string `json:"data_path"`
	ReportsDir  string `json:"reports_dir"`
	OutputPath  string `json:"output_path"`
	ReportTitle string `json:"report_title"`
	Send        bool   `json:"send"`
	Provider    string `json:"provider"`
}

/*
main is the CLI entry point.

Example:

	go run ./src/cmd/report -data ./sample_data/january.csv -send
*/
func main() {
	options := parseFlags()

	tl.Log(
		tl.Notice, palette.BlueBold, "Generating sales report from '%s' into '%s'",
		options.DataPath, options.OutputPath,
	)

	sampleDir, fileName := filepath.Split(options.DataPath)
	if sampleDir == "" {
		sampleDir = "."
	}

	rawRows, loadErr := samples.LoadRows(sampleDir, fileName)
	xerr.QuitIfError(loadErr, fmt.Sprintf("Unable to load rows from '%s'", options.DataPath))

	documentPath, generateErr := report.GenerateReport(rawRows, options.OutputPath, options.ReportTitle)
	xerr.QuitIfError(generateErr, "Unable to generate report")

	tl.Log(tl.Info1, palette.Green, "Saved report to '%s'", documentPath)

	if !options.Send {
		return
	}

	record, sendErr := email.SendMessage(
		email.Provider(options.Provider),
		&options.Send,
		email.Cfg.Sender,
		strings.Split(email.Cfg.Recipient, ","),
		email.Cfg.Subject,
		email.Cfg.Body,
		"",
		documentPath,
	)
	xerr.QuitIfError(sendErr, "Unable to send report")

	if record != nil {
		tl.Log(tl.Notice1, palette.GreenBold, "Report sent with id '%s'", fmt.Sprintf("%d", record.ID))
	}
}

/*
parseFlags parses CLI flags, initializes configuration, and returns validated
reportOptions.

Defaults:
- output path: <reports dir>/<data base name>_<timestamp>.pdf
- title: "Sales Report - <data base name>"
*/
func parseFlags() reportOptions {
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	dataFlag := flag.String("data", "", "Sample data file to report on (.csv or .json)")
	reportsDirFlag := flag.String("out", "./generated_reports", "Directory for generated report PDFs")
	outputFlag := flag.String("o", "", "Explicit output PDF path (default: <out>/<base>_<timestamp>.pdf)")
	titleFlag := flag.String("title", "", "Report title (default: Sales Report - <base>)")
	sendFlag := flag.Bool("send", false, "Send the finished report through the selected provider")
	providerFlag := flag.String("provider", string(email.ProviderSimulated), "Email provider: simulated, ses, mailgun, sendgrid")

	flag.Parse()
	util.RequiredFlag(dataFlag, "data")
	util.EnsureFlags()

	config.InitializeConfig(*configPath)
	initializeEmailConfig()

	baseName := strings.TrimSuffix(filepath.Base(*dataFlag), filepath.Ext(*dataFlag))

	outputPath := *outputFlag
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = filepath.Join(*reportsDirFlag, fmt.Sprintf("%s_%s.pdf", baseName, timestamp))
	}

	reportTitle := *titleFlag
	if reportTitle == "" {
		reportTitle = fmt.Sprintf("Sales Report - %s", baseName)
	}

	options := reportOptions{
		DataPath:    *dataFlag,
		ReportsDir:  *reportsDirFlag,
		OutputPath:  outputPath,
		ReportTitle: reportTitle,
		Send:        *sendFlag,
		Provider:    *providerFlag,
	}

	return options
}

func initializeEmailConfig() {
	var emailConfig email.Config
	if config.Section("email", &emailConfig) {
		email.InitializeConfig(&emailConfig)
		return
	}
	email.InitializeConfig(nil)
}
