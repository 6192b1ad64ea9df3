// Package samples lists and loads the sample data files (.csv / .json) that
// feed report generation. Format parsing lives here, not in the core.
package samples

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"sales-reporter/src/pkg/rows"
)

/*
List returns the names of all .csv and .json files in sampleDir, sorted so the
dashboard's file picker has a predictable order.
*/
func List(sampleDir string) (names []string, err error) {
	entries, readErr := os.ReadDir(sampleDir)
	if readErr != nil {
		return nil, fmt.Errorf("list sample dir '%s': %w", sampleDir, readErr)
	}

	names = make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		extension := strings.ToLower(filepath.Ext(entry.Name()))
		if extension == ".csv" || extension == ".json" {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

/*
LoadRows reads raw sales records from the named sample file in sampleDir.

CSV files need a header row; each record becomes a RawRow keyed by header.
JSON files hold an array of objects. Field typing and validation are the
normalizer's job, not ours.
*/
func LoadRows(sampleDir string, fileName string) (rawRows []rows.RawRow, err error) {
	if filepath.Base(fileName) != fileName {
		return nil, fmt.Errorf("sample file name '%s' must not contain a path", fileName)
	}

	fullPath := filepath.Join(sampleDir, fileName)

	tl.Log(tl.Info1, palette.Blue, "Loading sample rows from '%s'", fullPath)

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		rawRows, err = loadCSV(fullPath)
	case ".json":
		rawRows, err = loadJSON(fullPath)
	default:
		return nil, fmt.Errorf("unsupported sample file extension on '%s'", fileName)
	}
	if err != nil {
		return nil, err
	}

	tl.Log(tl.Info1, palette.Green, "Loaded %s rows from '%s'", fmt.Sprintf("%d", len(rawRows)), fileName)
	return rawRows, nil
}

func loadCSV(fullPath string) (rawRows []rows.RawRow, err error) {
	file, openErr := os.Open(fullPath)
	if openErr != nil {
		return nil, fmt.Errorf("open sample file: %w", openErr)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	records, readErr := reader.ReadAll()
	if readErr != nil {
		return nil, fmt.Errorf("read CSV '%s': %w", fullPath, readErr)
	}

	if len(records) == 0 {
		return []rows.RawRow{}, nil
	}

	header := records[0]
	rawRows = make([]rows.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rawRow := make(rows.RawRow, len(header))
		for columnIndex, columnName := range header {
			if columnIndex < len(record) {
				rawRow[columnName] = record[columnIndex]
			}
		}
		rawRows = append(rawRows, rawRow)
	}

	return rawRows, nil
}

func loadJSON(fullPath string) (rawRows []rows.RawRow, err error) {
	fileBytes, readErr := os.ReadFile(fullPath)
	if readErr != nil {
		return nil, fmt.Errorf("read sample file: %w", readErr)
	}

	unmarshalErr := json.Unmarshal(fileBytes, &rawRows)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal JSON '%s': %w", fullPath, unmarshalErr)
	}

	return rawRows, nil
}
