package export

import (
	"bytes"
	"fmt"

	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/pkg/metrics"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	chartBackground = drawing.ColorFromHex("ffffff")
	chartBar        = drawing.ColorFromHex("1a73e8")
	chartText       = drawing.ColorFromHex("202124")
)

// PointsHistogramPNG renders the point distribution of summary as a bar chart.
// An empty distribution renders a placeholder image.
func PointsHistogramPNG(summary types.Summary) ([]byte, error) {
	buckets := summary.Points.Buckets
	if len(buckets) == 0 {
		return renderPlaceholder("No participants to chart")
	}

	top := 1
	bars := make([]chart.Value, len(buckets))
	for i, b := range buckets {
		top = max(top, b.Count)
		bars[i] = chart.Value{
			Label: bucketLabel(b),
			Value: float64(b.Count),
			Style: chart.Style{FillColor: chartBar, StrokeColor: chartBar},
		}
	}

	graph := chart.BarChart{
		Title:      "Points Distribution",
		Width:      max(640, 44*len(bars)+160),
		Height:     400,
		BarWidth:   32,
		BarSpacing: 12,
		Background: chart.Style{
			FillColor: chartBackground,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: chartBackground},
		XAxis:  chart.Style{FontColor: chartText, TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  "Participants",
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	metrics.RecordExport("png")
	return buf.Bytes(), nil
}

func bucketLabel(b types.Bucket) string {
	if b.Lower == b.Upper {
		return fmt.Sprint(b.Lower)
	}
	return fmt.Sprintf("%d-%d", b.Lower, b.Upper)
}

func renderPlaceholder(msg string) ([]byte, error) {
	const width, height = 400, 200

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}

	r.SetFillColor(chartBackground)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(chartText)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}
	metrics.RecordExport("png")
	return buf.Bytes(), nil
}
