package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"connectivity-monitor/internal/models"
)

// minChartPoints is the fewest points go-chart can draw a non-zero range from
const minChartPoints = 2

func (g *Generator) generateLatencyChart(outputDir string, s models.SessionSummary) error {
	var (
		target                  string
		timestamps, failedTimes []time.Time
		values, failedValues    []float64
	)
	for _, p := range s.Pings {
		target = p.Target
		if p.Success && p.LatencyMs.Valid {
			timestamps = append(timestamps, p.Timestamp)
			values = append(values, p.LatencyMs.Float64)
			continue
		}
		failedTimes = append(failedTimes, p.Timestamp)
		failedValues = append(failedValues, 0)
	}
	if len(values) < minChartPoints {
		return nil
	}

	graph := baseChart(fmt.Sprintf("Network Latency - %s", target), "Latency (ms)")
	ts := chart.TimeSeries{
		Name: target,
		Style: chart.Style{
			StrokeColor: chart.GetDefaultColor(0),
			StrokeWidth: 2,
		},
		XValues: timestamps,
		YValues: values,
	}
	graph.Series = []chart.Series{ts}

	// Add moving average
	if len(values) > 10 {
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(1),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: ts,
			Period:      10,
		})
	}

	if len(failedTimes) > 0 {
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name: "Failed",
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    drawing.Color{R: 220, G: 50, B: 47, A: 255},
			},
			XValues: failedTimes,
			YValues: failedValues,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	filename := filepath.Join(outputDir, fmt.Sprintf("latency_%s.png", sanitizeFilename(target)))
	return renderPNG(graph, filename)
}

func (g *Generator) generateThroughputChart(outputDir string, s models.SessionSummary) error {
	var timestamps []time.Time
	var values []float64
	for _, sp := range s.SpeedSamples {
		timestamps = append(timestamps, sp.Timestamp)
		values = append(values, sp.ThroughputMbps)
	}
	if len(values) < minChartPoints {
		return nil
	}

	graph := baseChart("Download Throughput", "Throughput (Mbps)")
	graph.Series = []chart.Series{
		chart.TimeSeries{
			Name: "Download",
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(2),
				StrokeWidth: 2,
				DotWidth:    3,
			},
			XValues: timestamps,
			YValues: values,
		},
	}

	return renderPNG(graph, filepath.Join(outputDir, "throughput.png"))
}

func baseChart(title, yName string) chart.Chart {
	return chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: yName,
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
	}
}

func renderPNG(graph chart.Chart, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}
