// Package store handles the on-disk report and sent-email directories: making
// sure they exist and listing what is already in them for the dashboard.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"sales-reporter/src/pkg/email"
)

/*
EnsureDir creates the directory (and parents) if needed.
*/
func EnsureDir(dirPath string) (err error) {
	mkdirErr := os.MkdirAll(dirPath, 0o755)
	if mkdirErr != nil {
		return fmt.Errorf("create directory '%s': %w", dirPath, mkdirErr)
	}
	return nil
}

/*
ListReports returns the PDF file names in reportsDir, newest-looking first.

Report names start with a timestamp suffix per the pipeline's naming scheme,
so descending lexical order puts the most recent on top.
*/
func ListReports(reportsDir string) (names []string, err error) {
	entries, readErr := os.ReadDir(reportsDir)
	if readErr != nil {
		return nil, fmt.Errorf("list reports dir '%s': %w", reportsDir, readErr)
	}

	names = make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

/*
ListSent reads every sent-record JSON in sentDir and returns the records,
newest first (descending id).

An unreadable or malformed file is skipped with a warning so one bad record
never takes the sent list down.
*/
func ListSent(sentDir string) (records []email.SentRecord, err error) {
	matches, globErr := filepath.Glob(filepath.Join(sentDir, "*.json"))
	if globErr != nil {
		return nil, fmt.Errorf("scan sent dir '%s': %w", sentDir, globErr)
	}

	records = make([]email.SentRecord, 0, len(matches))
	for _, jsonPath := range matches {
		fileBytes, readErr := os.ReadFile(jsonPath)
		if readErr != nil {
			tl.Log(tl.Warning, palette.YellowBold, "Skipping unreadable sent record '%s': %s", jsonPath, readErr)
			continue
		}

		var record email.SentRecord
		unmarshalErr := json.Unmarshal(fileBytes, &record)
		if unmarshalErr != nil {
			tl.Log(tl.Warning, palette.YellowBold, "Skipping malformed sent record '%s': %s", jsonPath, unmarshalErr)
			continue
		}

		records = append(records, record)
	}

	sort.Slice(records, func(firstIndex int, secondIndex int) bool {
		return records[firstIndex].ID > records[secondIndex].ID
	})

	return records, nil
}
