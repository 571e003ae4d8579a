package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"connectivity-monitor/internal/models"
)

// Generator creates static images and reports for ISP evidence
type Generator struct{}

// NewGenerator creates a new report generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a text summary and charts for one session into a
// session_<id> directory under outputDir and returns that directory
func (g *Generator) Generate(s models.SessionSummary, outputDir string) (string, error) {
	reportDir := filepath.Join(outputDir, fmt.Sprintf("session_%s", s.ID))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := writeTextReport(filepath.Join(reportDir, "summary.txt"), s); err != nil {
		return "", fmt.Errorf("failed to write text report: %w", err)
	}

	if err := g.generateLatencyChart(reportDir, s); err != nil {
		log.Printf("Failed to generate latency chart: %v", err)
	}

	if err := g.generateThroughputChart(reportDir, s); err != nil {
		log.Printf("Failed to generate throughput chart: %v", err)
	}

	log.Printf("Report generated in: %s", reportDir)
	return reportDir, nil
}
