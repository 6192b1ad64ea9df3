package main

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"sales-reporter/src/pkg/config"
	echomw "sales-reporter/src/pkg/echo-middleware"
	"sales-reporter/src/pkg/email"
	"sales-reporter/src/pkg/report"
	"sales-reporter/src/pkg/samples"
	"sales-reporter/src/pkg/store"
)

/*
dashboardConfig holds the directory layout of the dashboard.
*/
type dashboardConfig struct {
	SampleDir  string `json:"sample_dir,omitempty"`
	ReportsDir string `json:"reports_dir,omitempty"`
	SentDir    string `json:"sent_dir,omitempty"`
}

func defaultDashboardConfig() dashboardConfig {
	return dashboardConfig{
		SampleDir:  "./sample_data",
		ReportsDir: "./generated_reports",
		SentDir:    "./sent_emails",
	}
}

/*
dashboard serves the sales report dashboard:
- lists sample data files, generated reports, and sent emails
- generates a report PDF for a chosen sample file and "sends" it
- serves report downloads
*/
type dashboard struct {
	cfg dashboardConfig
}

func main() {
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	flag.Parse()

	config.InitializeConfig(*configPath)

	dashCfg := defaultDashboardConfig()
	config.Section("dashboard", &dashCfg)

	var middlewareConfig echomw.Config
	if config.Section("echo_middleware", &middlewareConfig) {
		echomw.InitializeConfig(&middlewareConfig)
	} else {
		echomw.InitializeConfig(nil)
		echomw.UptdateRateLimits(echomw.Cfg.MiddlewareRateLimit, echomw.Cfg.MiddlewareBurst)
	}

	var emailConfig email.Config
	if config.Section("email", &emailConfig) {
		email.InitializeConfig(&emailConfig)
	} else {
		email.InitializeConfig(nil)
	}
	email.Cfg.SentDir = dashCfg.SentDir

	xerr.QuitIfError(store.EnsureDir(dashCfg.ReportsDir), "Unable to create reports directory")
	xerr.QuitIfError(store.EnsureDir(dashCfg.SentDir), "Unable to create sent directory")

	server := &dashboard{cfg: dashCfg}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RouteAccessLoggerMiddleware)
	e.Use(echomw.RateLimiterMiddleware)
	e.Use(echomw.BrotliMiddleware)

	e.GET("/", server.handleIndex)
	e.POST("/generate", server.handleGenerate, echomw.RequireBearerToken)
	e.GET("/download/:name", server.handleDownload)
	e.GET("/sent/:name", server.handleSentFile)

	address := fmt.Sprintf("%s:%d", echomw.Cfg.Address, echomw.Cfg.Port)
	tl.Log(tl.Notice, palette.BlueBold, "Starting sales dashboard on '%s'", address)

	startErr := e.Start(address)
	xerr.QuitIfError(startErr, "Dashboard server stopped")
}

func (d *dashboard) handleIndex(c echo.Context) error {
	sampleFiles, sampleErr := samples.List(d.cfg.SampleDir)
	if sampleErr != nil {
		tl.Log(tl.Warning, palette.YellowBold, "Unable to list sample files: %s", sampleErr)
		sampleFiles = []string{}
	}

	reports, reportsErr := store.ListReports(d.cfg.ReportsDir)
	if reportsErr != nil {
		return reportsErr
	}

	sentRecords, sentErr := store.ListSent(d.cfg.SentDir)
	if sentErr != nil {
		return sentErr
	}

	page := indexPage{
		SampleFiles: sampleFiles,
		Reports:     reports,
		SentRecords: sentRecords,
		FlashText:   c.QueryParam("msg"),
		FlashKind:   c.QueryParam("kind"),
	}

	return c.HTML(http.StatusOK, renderIndexHTML(page))
}

/*
handleGenerate reads the chosen sample file name from the form, runs the
report pipeline into the reports directory, "sends" the result through the
simulated provider, and redirects back to the index with a flash message.
*/
func (d *dashboard) handleGenerate(c echo.Context) error {
	fileName := strings.TrimSpace(c.FormValue("file"))
	if fileName == "" {
		return redirectWithFlash(c, "No file selected", "error")
	}

	rawRows, loadErr := samples.LoadRows(d.cfg.SampleDir, fileName)
	if loadErr != nil {
		return redirectWithFlash(c, fmt.Sprintf("Unable to read %s: %s", fileName, loadErr), "error")
	}

	baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	timestamp := time.Now().Format("20060102_150405")
	outputPath := filepath.Join(d.cfg.ReportsDir, fmt.Sprintf("%s_%s.pdf", baseName, timestamp))

	documentPath, generateErr := report.GenerateReport(rawRows, outputPath, fmt.Sprintf("Sales Report - %s", baseName))
	if generateErr != nil {
		return redirectWithFlash(c, fmt.Sprintf("Error generating report: %s", generateErr), "error")
	}

	record, sendErr := email.SendSimulated(documentPath, email.Cfg.Sender, email.Cfg.Recipient, email.Cfg.Subject, email.Cfg.Body)
	if sendErr != nil {
		return redirectWithFlash(c, fmt.Sprintf("Report generated but error sending: %s", sendErr), "warning")
	}

	return redirectWithFlash(c, fmt.Sprintf("Report generated and sent (id %d)", record.ID), "success")
}

func (d *dashboard) handleDownload(c echo.Context) error {
	return serveAttachment(c, d.cfg.ReportsDir)
}

func (d *dashboard) handleSentFile(c echo.Context) error {
	return serveAttachment(c, d.cfg.SentDir)
}

/*
serveAttachment sends the named file from dir as a download. Names with path
separators are rejected outright.
*/
func serveAttachment(c echo.Context, dir string) error {
	name := c.Param("name")
	if name == "" || filepath.Base(name) != name {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file name")
	}
	return c.Attachment(filepath.Join(dir, name), name)
}

func redirectWithFlash(c echo.Context, message string, kind string) error {
	target := "/?msg=" + url.QueryEscape(message) + "&kind=" + url.QueryEscape(kind)
	return c.Redirect(http.StatusSeeOther, target)
}
