package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// MonthlyAnalysis recomputes the month from current rules and records on every call.
	MonthlyAnalysis(ctx context.Context, req MonthlyAnalysisRequest) (MonthlyAnalysis, error)
}
