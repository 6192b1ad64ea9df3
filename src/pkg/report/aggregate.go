// Package report computes sales aggregates and orchestrates the report
// generation pipeline.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"sales-reporter/src/pkg/rows"
)

// TopCategoryCount caps the revenue-share ranking.
const TopCategoryCount = 5

/*
CategoryRevenue is one entry of the revenue-share ranking.
*/
type CategoryRevenue struct {
	Model   string          `json:"model"`
	Revenue decimal.Decimal `json:"revenue"`
}

/*
DailyRevenue is one entry of the daily revenue series.

Date keeps the original string for display; Day is the parsed calendar date
used for ordering and charting.
*/
type DailyRevenue struct {
	Date    string          `json:"date"`
	Day     time.Time       `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
}

/*
Aggregates holds the summary numbers computed once per report generation.
*/
type Aggregates struct {
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	OrderCount    int               `json:"order_count"`
	TopCategories []CategoryRevenue `json:"top_categories"`
	DailySeries   []DailyRevenue    `json:"daily_series"`
}

/*
AggregationError reports a grouping key that could not be interpreted, such as
a date that matches no known calendar layout.
*/
type AggregationError struct {
	Field string
	Value string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("cannot aggregate by field '%s': unparsable value '%s'", e.Field, e.Value)
}

/*
Aggregate computes Aggregates from a validated table.

All revenue sums use exact decimal arithmetic. Category ranking is descending
by revenue with ties broken by first-seen order and truncated to the top 5;
the daily series groups rows by their exact date string, sums revenue per day,
and sorts ascending by parsed calendar date. Order count prefers distinct
non-empty order ids and falls back to the row count when no row carries one.
*/
func Aggregate(table rows.SalesTable) (aggregates Aggregates, err error) {
	totalRevenue := decimal.Zero
	for _, row := range table {
		totalRevenue = totalRevenue.Add(row.Total)
	}

	topCategories := rankCategories(table)

	dailySeries, dailyErr := buildDailySeries(table)
	if dailyErr != nil {
		return aggregates, dailyErr
	}

	aggregates = Aggregates{
		TotalRevenue:  totalRevenue,
		OrderCount:    countOrders(table),
		TopCategories: topCategories,
		DailySeries:   dailySeries,
	}

	tl.Log(
		tl.Info1, palette.Cyan, "Aggregated %s rows: revenue %s, %s orders, %s categories, %s days",
		fmt.Sprintf("%d", len(table)), totalRevenue.StringFixed(2), fmt.Sprintf("%d", aggregates.OrderCount),
		fmt.Sprintf("%d", len(topCategories)), fmt.Sprintf("%d", len(dailySeries)),
	)

	return aggregates, nil
}

/*
rankCategories sums revenue per model and returns the top entries, descending
by revenue with first-seen order as the tie break.
*/
func rankCategories(table rows.SalesTable) []CategoryRevenue {
	revenueByModel := make(map[string]decimal.Decimal)
	firstSeenByModel := make(map[string]int)
	modelOrder := make([]string, 0)

	for _, row := range table {
		_, seen := revenueByModel[row.Model]
		if !seen {
			revenueByModel[row.Model] = decimal.Zero
			firstSeenByModel[row.Model] = len(modelOrder)
			modelOrder = append(modelOrder, row.Model)
		}
		revenueByModel[row.Model] = revenueByModel[row.Model].Add(row.Total)
	}

	ranked := make([]CategoryRevenue, 0, len(modelOrder))
	for _, model := range modelOrder {
		ranked = append(ranked, CategoryRevenue{Model: model, Revenue: revenueByModel[model]})
	}

	sort.SliceStable(ranked, func(firstIndex int, secondIndex int) bool {
		first := ranked[firstIndex]
		second := ranked[secondIndex]
		if !first.Revenue.Equal(second.Revenue) {
			return first.Revenue.GreaterThan(second.Revenue)
		}
		return firstSeenByModel[first.Model] < firstSeenByModel[second.Model]
	})

	if len(ranked) > TopCategoryCount {
		ranked = ranked[:TopCategoryCount]
	}

	return ranked
}

/*
buildDailySeries groups rows by exact date string, sums revenue per day, and
sorts ascending by parsed calendar date.
*/
func buildDailySeries(table rows.SalesTable) (series []DailyRevenue, err error) {
	revenueByDate := make(map[string]decimal.Decimal)
	dayByDate := make(map[string]time.Time)
	dateOrder := make([]string, 0)

	for _, row := range table {
		_, seen := revenueByDate[row.Date]
		if !seen {
			day, ok := parseDay(row.Date)
			if !ok {
				return nil, &AggregationError{Field: "date", Value: row.Date}
			}
			revenueByDate[row.Date] = decimal.Zero
			dayByDate[row.Date] = day
			dateOrder = append(dateOrder, row.Date)
		}
		revenueByDate[row.Date] = revenueByDate[row.Date].Add(row.Total)
	}

	series = make([]DailyRevenue, 0, len(dateOrder))
	for _, date := range dateOrder {
		series = append(series, DailyRevenue{Date: date, Day: dayByDate[date], Revenue: revenueByDate[date]})
	}

	// Stable so that two date strings parsing to the same calendar day keep
	// their first-seen order.
	sort.SliceStable(series, func(firstIndex int, secondIndex int) bool {
		return series[firstIndex].Day.Before(series[secondIndex].Day)
	})

	return series, nil
}

/*
parseDay tries common date-only layouts and returns (day, ok).
*/
func parseDay(raw string) (day time.Time, ok bool) {
	candidates := []string{
		"2006-01-02",
		"02/01/2006",
		"2006/01/02",
	}

	for _, layout := range candidates {
		value, parseErr := time.Parse(layout, raw)
		if parseErr == nil {
			return value, true
		}
	}

	return day, false
}

/*
countOrders counts distinct non-empty order ids, falling back to the row count
when no row carries an order id at all.
*/
func countOrders(table rows.SalesTable) int {
	distinct := make(map[string]bool)
	for _, row := range table {
		if row.OrderID != "" {
			distinct[row.OrderID] = true
		}
	}

	if len(distinct) == 0 {
		return len(table)
	}
	return len(distinct)
}
