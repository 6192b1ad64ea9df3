package main

import (
	"bytes"
	"html"

	"sales-reporter/src/pkg/email"
)

/*
indexPage is everything the dashboard index shows.
*/
type indexPage struct {
	SampleFiles []string
	Reports     []string
	SentRecords []email.SentRecord
	FlashText   string
	FlashKind   string
}

/*
renderIndexHTML builds the dashboard index as a single HTML string using
inline CSS only.
*/
func renderIndexHTML(page indexPage) string {
	var buffer bytes.Buffer

	buffer.WriteString("<!doctype html>")
	buffer.WriteString("<html>")
	buffer.WriteString("<head>")
	buffer.WriteString(`<meta charset="utf-8">`)
	buffer.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	buffer.WriteString("<title>Sales Report Dashboard</title>")
	buffer.WriteString("</head>")

	bodyStyle := "margin:0;padding:0;background-color:#F3F4F6;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Inter,Arial,sans-serif;color:#111827;"
	buffer.WriteString(`<body style="` + bodyStyle + `">`)

	buffer.WriteString(`<div style="max-width:680px;margin:0 auto;padding:24px;">`)

	// Header.
	buffer.WriteString(`<div style="padding:8px 4px 18px 4px;">`)
	buffer.WriteString(`<div style="font-size:24px;font-weight:800;line-height:1.2;color:#111827;">Sales Report Dashboard</div>`)
	buffer.WriteString(`<div style="margin-top:6px;font-size:13px;line-height:1.5;color:#6B7280;">Generate a PDF report from a sample data file and simulate sending it.</div>`)
	buffer.WriteString(`</div>`)

	writeFlash(&buffer, page)
	writeGenerateCard(&buffer, page)
	writeReportsCard(&buffer, page)
	writeSentCard(&buffer, page)

	buffer.WriteString(`</div>`)
	buffer.WriteString(`</body>`)
	buffer.WriteString(`</html>`)

	return buffer.String()
}

func writeFlash(buffer *bytes.Buffer, page indexPage) {
	if page.FlashText == "" {
		return
	}

	// Default to the neutral info look for unknown kinds.
	background := "#EFF6FF"
	border := "#BFDBFE"
	switch page.FlashKind {
	case "success":
		background = "#ECFDF5"
		border = "#A7F3D0"
	case "error":
		background = "#FEF2F2"
		border = "#FECACA"
	case "warning":
		background = "#FFFBEB"
		border = "#FDE68A"
	}

	buffer.WriteString(`<div style="margin-bottom:18px;padding:12px 14px;border:1px solid ` + border + `;border-radius:12px;background-color:` + background + `;font-size:13px;line-height:1.5;color:#111827;">`)
	buffer.WriteString(html.EscapeString(page.FlashText))
	buffer.WriteString(`</div>`)
}

func writeGenerateCard(buffer *bytes.Buffer, page indexPage) {
	buffer.WriteString(cardOpen())
	buffer.WriteString(`<div style="padding:18px;">`)
	buffer.WriteString(`<div style="font-size:14px;font-weight:800;color:#111827;">Generate a report</div>`)

	if len(page.SampleFiles) == 0 {
		buffer.WriteString(emptyState("No sample data files found. Drop .csv or .json files into the sample directory."))
	} else {
		buffer.WriteString(`<form method="post" action="/generate" style="margin-top:12px;">`)
		buffer.WriteString(`<select name="file" style="padding:8px 10px;border:1px solid #D1D5DB;border-radius:8px;background-color:#FFFFFF;font-size:13px;min-width:260px;">`)
		for _, name := range page.SampleFiles {
			escaped := html.EscapeString(name)
			buffer.WriteString(`<option value="` + escaped + `">` + escaped + `</option>`)
		}
		buffer.WriteString(`</select>`)
		buffer.WriteString(`<button type="submit" style="margin-left:10px;padding:8px 16px;border:none;border-radius:8px;background-color:#2563EB;color:#FFFFFF;font-size:13px;font-weight:700;cursor:pointer;">Generate &amp; Send</button>`)
		buffer.WriteString(`</form>`)
	}

	buffer.WriteString(`</div>`)
	buffer.WriteString(cardClose())
}

func writeReportsCard(buffer *bytes.Buffer, page indexPage) {
	buffer.WriteString(`<div style="margin-top:18px;">`)
	buffer.WriteString(cardOpen())
	buffer.WriteString(`<div style="padding:18px;">`)
	buffer.WriteString(`<div style="font-size:14px;font-weight:800;color:#111827;">Generated reports</div>`)

	if len(page.Reports) == 0 {
		buffer.WriteString(emptyState("No reports generated yet."))
	} else {
		buffer.WriteString(`<div style="margin-top:10px;font-size:13px;line-height:2.0;">`)
		for _, name := range page.Reports {
			escaped := html.EscapeString(name)
			buffer.WriteString(`<a href="/download/` + escaped + `" style="color:#2563EB;text-decoration:none;">` + escaped + `</a><br>`)
		}
		buffer.WriteString(`</div>`)
	}

	buffer.WriteString(`</div>`)
	buffer.WriteString(cardClose())
	buffer.WriteString(`</div>`)
}

func writeSentCard(buffer *bytes.Buffer, page indexPage) {
	buffer.WriteString(`<div style="margin-top:18px;">`)
	buffer.WriteString(cardOpen())
	buffer.WriteString(`<div style="padding:18px;">`)
	buffer.WriteString(`<div style="font-size:14px;font-weight:800;color:#111827;">Sent emails</div>`)

	if len(page.SentRecords) == 0 {
		buffer.WriteString(emptyState("Nothing sent yet."))
	} else {
		for _, record := range page.SentRecords {
			buffer.WriteString(`<div style="margin-top:10px;padding:12px;border:1px solid #E5E7EB;border-radius:12px;background-color:#FFFFFF;">`)
			buffer.WriteString(`<div style="font-size:13px;font-weight:800;color:#111827;">` + html.EscapeString(record.Subject) + `</div>`)
			buffer.WriteString(`<div style="margin-top:4px;font-size:12px;line-height:1.6;color:#6B7280;">`)
			buffer.WriteString(`To: <span style="font-weight:700;color:#111827;">` + html.EscapeString(record.To) + `</span>`)
			buffer.WriteString(` &nbsp;&bull;&nbsp; ` + html.EscapeString(record.Timestamp))
			buffer.WriteString(`</div>`)
			if record.Attachment != "" {
				escaped := html.EscapeString(record.Attachment)
				buffer.WriteString(`<div style="margin-top:6px;font-size:12px;">Attachment: <a href="/sent/` + escaped + `" style="color:#2563EB;text-decoration:none;">` + escaped + `</a></div>`)
			}
			buffer.WriteString(`</div>`)
		}
	}

	buffer.WriteString(`</div>`)
	buffer.WriteString(cardClose())
	buffer.WriteString(`</div>`)
}

/*
cardOpen returns the opening HTML for a card-like container.
*/
func cardOpen() string {
	return `<div style="background-color:#FFFFFF;border:1px solid #E5E7EB;border-radius:16px;box-shadow:0 8px 24px rgba(17,24,39,0.06);overflow:hidden;">`
}

/*
cardClose returns the closing HTML for a card-like container.
*/
func cardClose() string {
	return `</div>`
}

func emptyState(text string) string {
	return `<div style="margin-top:12px;padding:14px;border:1px dashed #D1D5DB;border-radius:12px;background-color:#FAFAFA;color:#6B7280;font-size:13px;line-height:1.6;">` + html.EscapeString(text) + `</div>`
}
