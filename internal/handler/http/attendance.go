package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	MarkIn(w http.ResponseWriter, r *http.Request)
	MarkOut(w http.ResponseWriter, r *http.Request)
	CorrectEntry(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// employeeFromToken fills an omitted employeeId from the employee_id claim.
func employeeFromToken(r *http.Request, employeeID *string) {
	if *employeeID != "" {
		return
	}
	if id, err := jwt.EmployeeIDFromContext(r.Context()); err == nil {
		*employeeID = id
	}
}

// MarkIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark in decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	employeeFromToken(r, &req.EmployeeID)

	entry, err := h.attendanceService.MarkIn(r.Context(), req)
	if err != nil {
		slog.Warn("Mark in rejected", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Marked in successfully", entry)
}

// MarkOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark out decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	employeeFromToken(r, &req.EmployeeID)

	entry, err := h.attendanceService.MarkOut(r.Context(), req)
	if err != nil {
		slog.Warn("Mark out rejected", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Marked out successfully", entry)
}

// CorrectEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) CorrectEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.CorrectEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Correct entry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.attendanceService.CorrectEntry(r.Context(), req)
	if err != nil {
		slog.Error("Failed to correct attendance entry", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance entry corrected", entry)
}

// Daily implements AttendanceHandler.
func (h *attendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.HandleError(w, validator.ValidationErrors{{Field: "date", Message: "date is required"}})
		return
	}

	record, err := h.attendanceService.GetDailyTotals(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}
