package charts

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageSize(t *testing.T, path string) (width int, height int) {
	t.Helper()
	decoded, err := imaging.Open(path)
	require.NoError(t, err)
	bounds := decoded.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func TestRenderCategoryShare(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "share.png")

	artifact, err := RenderCategoryShare([]Slice{
		{Label: "X", Value: 20.0},
		{Label: "Y", Value: 5.0},
	}, destination)
	require.NoError(t, err)

	assert.Equal(t, KindCategoryShare, artifact.Kind)
	assert.Equal(t, destination, artifact.Path)

	width, height := imageSize(t, destination)
	assert.Equal(t, ShareWidth, width)
	assert.Equal(t, ShareHeight, height)
}

func TestRenderCategoryShareSingleSlice(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "share.png")

	_, err := RenderCategoryShare([]Slice{{Label: "only", Value: 9.99}}, destination)
	require.NoError(t, err)

	width, height := imageSize(t, destination)
	assert.Equal(t, ShareWidth, width)
	assert.Equal(t, ShareHeight, height)
}

func TestRenderCategoryShareEmptyPlaceholder(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "share.png")

	artifact, err := RenderCategoryShare(nil, destination)
	require.NoError(t, err)
	assert.Equal(t, ShareWidth, artifact.Width)

	width, height := imageSize(t, destination)
	assert.Equal(t, ShareWidth, width)
	assert.Equal(t, ShareHeight, height)
}

func TestRenderCategoryShareZeroTotalPlaceholder(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "share.png")

	_, err := RenderCategoryShare([]Slice{{Label: "X", Value: 0}}, destination)
	require.NoError(t, err)

	width, height := imageSize(t, destination)
	assert.Equal(t, ShareWidth, width)
	assert.Equal(t, ShareHeight, height)
}

func TestRenderDailyTrend(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "trend.png")
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	artifact, err := RenderDailyTrend([]Point{
		{Day: day, Value: 25.0},
		{Day: day.AddDate(0, 0, 1), Value: 10.0},
		{Day: day.AddDate(0, 0, 2), Value: 31.5},
	}, destination)
	require.NoError(t, err)

	assert.Equal(t, KindDailyTrend, artifact.Kind)

	width, height := imageSize(t, destination)
	assert.Equal(t, TrendWidth, width)
	assert.Equal(t, TrendHeight, height)
}

func TestRenderDailyTrendSinglePoint(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "trend.png")

	_, err := RenderDailyTrend([]Point{
		{Day: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 25.0},
	}, destination)
	require.NoError(t, err)

	width, height := imageSize(t, destination)
	assert.Equal(t, TrendWidth, width)
	assert.Equal(t, TrendHeight, height)
}

func TestRenderDailyTrendFlatSeries(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "trend.png")
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := RenderDailyTrend([]Point{
		{Day: day, Value: 5.0},
		{Day: day.AddDate(0, 0, 1), Value: 5.0},
	}, destination)
	require.NoError(t, err)
}

func TestRenderDailyTrendEmptyPlaceholder(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "trend.png")

	artifact, err := RenderDailyTrend(nil, destination)
	require.NoError(t, err)
	assert.Equal(t, TrendHeight, artifact.Height)

	width, height := imageSize(t, destination)
	assert.Equal(t, TrendWidth, width)
	assert.Equal(t, TrendHeight, height)
}
