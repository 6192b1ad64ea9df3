// Package charts renders the two report chart images: the category revenue
// share and the daily revenue trend.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// Kind identifies one of the two chart artifacts.
type Kind string

const (
	KindCategoryShare Kind = "category-share"
	KindDailyTrend    Kind = "daily-trend"
)

// Fixed pixel dimensions. The aspect ratios are part of the layout contract:
// the composer sizes its image boxes assuming them.
const (
	ShareWidth  = 400
	ShareHeight = 400
	TrendWidth  = 1200
	TrendHeight = 360
)

/*
Artifact describes one rendered chart image on disk.

Artifacts are transient: the pipeline creates them in a per-invocation temp
directory and removes that directory once the document is built.
*/
type Artifact struct {
	Kind   Kind   `json:"kind"`
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

/*
RenderError reports a chart that could not be produced.
*/
type RenderError struct {
	Kind Kind
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s chart: %s", e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

/*
saveAtSize decodes a rendered chart from buffer, resizes it to exactly
width×height, and saves it as PNG at destinationPath.

The resize keeps the artifact dimensions stable across chart library versions,
so the document layout never shifts between reports.
*/
func saveAtSize(kind Kind, buffer *bytes.Buffer, width int, height int, destinationPath string) (artifact Artifact, err error) {
	decoded, decodeErr := imaging.Decode(buffer)
	if decodeErr != nil {
		return artifact, &RenderError{Kind: kind, Err: decodeErr}
	}

	resized := imaging.Resize(decoded, width, height, imaging.Lanczos)

	saveErr := imaging.Save(resized, destinationPath)
	if saveErr != nil {
		return artifact, &RenderError{Kind: kind, Err: saveErr}
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved %s chart (%sx%s) to '%s'",
		kind, fmt.Sprintf("%d", width), fmt.Sprintf("%d", height), destinationPath,
	)

	artifact = Artifact{Kind: kind, Path: destinationPath, Width: width, Height: height}
	return artifact, nil
}

/*
savePlaceholder writes a neutral empty-state panel of the given fixed size.

An empty category or day series produces this panel instead of an error, so
the document keeps its layout even when a section has nothing to show.
*/
func savePlaceholder(kind Kind, width int, height int, destinationPath string) (artifact Artifact, err error) {
	tl.Log(
		tl.Info, palette.CyanDim, "Empty series for %s chart, rendering placeholder panel",
		kind,
	)

	border := imaging.New(width, height, color.NRGBA{R: 0xD1, G: 0xD5, B: 0xDB, A: 0xFF})
	panel := imaging.New(width-2, height-2, color.NRGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF})
	framed := imaging.Paste(border, panel, image.Pt(1, 1))

	saveErr := imaging.Save(framed, destinationPath)
	if saveErr != nil {
		return artifact, &RenderError{Kind: kind, Err: saveErr}
	}

	artifact = Artifact{Kind: kind, Path: destinationPath, Width: width, Height: height}
	return artifact, nil
}
