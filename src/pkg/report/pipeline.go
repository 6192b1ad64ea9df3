package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"sales-reporter/src/pkg/charts"
	"sales-reporter/src/pkg/pdfdoc"
	"sales-reporter/src/pkg/rows"
)

// Stage names one phase of the report pipeline.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageAggregate Stage = "aggregate"
	StageRender    Stage = "render"
	StageCompose   Stage = "compose"
)

/*
StageError tags a pipeline failure with the stage it happened in.
*/
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("report pipeline failed at stage '%s': %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

/*
EmptyInputError means there were no rows to report on. Producing a blank
report would hide a data problem, so the pipeline refuses instead.
*/
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "no sales rows to report on"
}

/*
GenerateReport runs the full pipeline over rawRows and writes the report PDF
to destinationPath.

Stages run in order: normalize, aggregate, render, compose. Any failure
returns a *StageError wrapping the cause; an empty normalized table fails with
EmptyInputError before aggregation. Chart images live in a per-invocation temp
directory that is removed on every exit path, so concurrent invocations with
distinct destination paths never interfere and no orphaned artifacts remain.

On success it returns the path of the finished document.
*/
func GenerateReport(rawRows []rows.RawRow, destinationPath string, title string) (documentPath string, err error) {
	invocationID := uuid.NewString()

	tl.Log(
		tl.Notice, palette.BlueBold, "Generating report '%s' (%s raw rows, run %s) into '%s'",
		title, fmt.Sprintf("%d", len(rawRows)), invocationID, destinationPath,
	)

	table, normalizeErr := rows.Normalize(rawRows)
	if normalizeErr != nil {
		return "", &StageError{Stage: StageNormalize, Err: normalizeErr}
	}
	if len(table) == 0 {
		return "", &StageError{Stage: StageNormalize, Err: &EmptyInputError{}}
	}

	aggregates, aggregateErr := Aggregate(table)
	if aggregateErr != nil {
		return "", &StageError{Stage: StageAggregate, Err: aggregateErr}
	}

	tempDirPath, tempErr := os.MkdirTemp("", "report-charts-"+invocationID+"-")
	if tempErr != nil {
		return "", &StageError{Stage: StageRender, Err: tempErr}
	}
	defer func() {
		removeErr := os.RemoveAll(tempDirPath)
		if removeErr != nil {
			tl.Log(
				tl.Warning, palette.YellowBold, "Unable to remove chart temp dir '%s': %s",
				tempDirPath, removeErr,
			)
			return
		}
		tl.Log(tl.Verbose, palette.CyanDim, "Removed chart temp dir '%s'", tempDirPath)
	}()

	shareArtifact, shareErr := charts.RenderCategoryShare(
		categorySlices(aggregates),
		filepath.Join(tempDirPath, "category-share.png"),
	)
	if shareErr != nil {
		return "", &StageError{Stage: StageRender, Err: shareErr}
	}

	trendArtifact, trendErr := charts.RenderDailyTrend(
		dailyPoints(aggregates),
		filepath.Join(tempDirPath, "daily-trend.png"),
	)
	if trendErr != nil {
		return "", &StageError{Stage: StageRender, Err: trendErr}
	}

	document, composeErr := pdfdoc.Compose(
		documentSummary(aggregates),
		shareArtifact,
		trendArtifact,
		table,
		title,
		destinationPath,
	)
	if composeErr != nil {
		return "", &StageError{Stage: StageCompose, Err: composeErr}
	}

	tl.Log(
		tl.Notice1, palette.GreenBold, "%s. Report document: '%s'",
		"Report generation completed", document.Path,
	)

	return document.Path, nil
}

/*
categorySlices converts the top-categories ranking into chart slices.
Decimal revenue goes to float64 only here, at the presentation edge.
*/
func categorySlices(aggregates Aggregates) []charts.Slice {
	slices := make([]charts.Slice, 0, len(aggregates.TopCategories))
	for _, category := range aggregates.TopCategories {
		slices = append(slices, charts.Slice{
			Label: category.Model,
			Value: category.Revenue.InexactFloat64(),
		})
	}
	return slices
}

/*
dailyPoints converts the daily series into chart points, preserving its
ascending date order.
*/
func dailyPoints(aggregates Aggregates) []charts.Point {
	points := make([]charts.Point, 0, len(aggregates.DailySeries))
	for _, day := range aggregates.DailySeries {
		points = append(points, charts.Point{
			Day:   day.Day,
			Value: day.Revenue.InexactFloat64(),
		})
	}
	return points
}

func documentSummary(aggregates Aggregates) pdfdoc.Summary {
	categories := make([]pdfdoc.CategoryLine, 0, len(aggregates.TopCategories))
	for _, category := range aggregates.TopCategories {
		categories = append(categories, pdfdoc.CategoryLine{
			Label:   category.Model,
			Revenue: category.Revenue,
		})
	}

	return pdfdoc.Summary{
		TotalRevenue:  aggregates.TotalRevenue,
		OrderCount:    aggregates.OrderCount,
		TopCategories: categories,
	}
}
