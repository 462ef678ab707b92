package aigateway

import (
	"context"
	"encoding/json"
	"fmt"
)

// Severity levels for analysis reports, from most to least concerning.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	SeveritySafe     = "safe"
)

// ReportDetail is one titled section of an analysis report.
type ReportDetail struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Report is the structured answer shared by the analysis lookups. The model
// fills it through a forced tool call so the shape is guaranteed.
type Report struct {
	Severity string         `json:"severity"`
	Summary  []string       `json:"summary"`
	Details  []ReportDetail `json:"details"`
}

// ValidSeverity reports whether s is one of the known severity levels.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeveritySafe:
		return true
	}
	return false
}

// reportSchema is the JSON schema for the report tool parameters.
var reportSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"severity": {
			"type": "string",
			"enum": ["critical", "high", "medium", "low", "safe"]
		},
		"summary": {
			"type": "array",
			"items": {"type": "string"}
		},
		"details": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"title": {"type": "string"},
					"content": {"type": "string"}
				},
				"required": ["title", "content"],
				"additionalProperties": false
			}
		}
	},
	"required": ["severity", "summary", "details"],
	"additionalProperties": false
}`)

// ReportTool returns the forced tool definition used for structured analyses.
func ReportTool(name, description string) Tool {
	return NewTool(name, description, reportSchema)
}

// AnalyzeReport runs a forced report tool call and validates the result.
func (c *Client) AnalyzeReport(ctx context.Context, messages []Message, tool Tool) (*Report, error) {
	args, err := c.CallTool(ctx, messages, tool)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := json.Unmarshal(args, &report); err != nil {
		return nil, fmt.Errorf("aigateway: decode report: %w", err)
	}
	if !ValidSeverity(report.Severity) {
		return nil, fmt.Errorf("aigateway: unknown severity %q", report.Severity)
	}
	return &report, nil
}
