package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Monthly implements ReportHandler.
// Accepts ?yearMonth=YYYY-MM, or ?year=&month= when yearMonth is absent.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.MonthlyAnalysisRequest{YearMonth: q.Get("yearMonth")}
	if req.YearMonth == "" {
		year, yErr := strconv.Atoi(q.Get("year"))
		month, mErr := strconv.Atoi(q.Get("month"))
		if yErr != nil || mErr != nil {
			response.HandleError(w, report.ErrInvalidMonthSpecifier)
			return
		}
		req.Year, req.Month = year, month
	}

	analysis, err := h.reportService.MonthlyAnalysis(r.Context(), req)
	if err != nil {
		slog.Error("Failed to build monthly analysis", "error", err, "year_month", req.YearMonth)
		response.HandleError(w, err)
		return
	}
	response.Success(w, analysis)
}
