package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Check(w http.ResponseWriter, r *http.Request)
	WeeklyDates(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService}
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter holiday.HolidayFilter
	var errs validator.ValidationErrors

	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		} else {
			filter.Year = &year
		}
	}
	if m := r.URL.Query().Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		} else {
			filter.Month = &month
		}
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	holidays, err := h.holidayService.ListHolidays(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list holidays", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, holidays, &response.Meta{Count: len(holidays)})
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.holidayService.CreateHoliday(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create holiday", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday created successfully", created)
}

// Delete implements HolidayHandler.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.holidayService.DeleteHoliday(r.Context(), id); err != nil {
		slog.Error("Failed to delete holiday", "error", err, "holiday_id", id)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

// Check implements HolidayHandler.
func (h *holidayHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.HandleError(w, validator.ValidationErrors{{Field: "date", Message: "date is required"}})
		return
	}

	result, err := h.holidayService.CheckHoliday(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// WeeklyDates implements HolidayHandler.
func (h *holidayHandlerImpl) WeeklyDates(w http.ResponseWriter, r *http.Request) {
	req, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.WeeklyHolidayDates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Calendar implements HolidayHandler.
func (h *holidayHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	req, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.MonthCalendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// monthFromQuery reads the required year and month query parameters.
func monthFromQuery(r *http.Request) (holiday.MonthRequest, error) {
	var req holiday.MonthRequest
	var errs validator.ValidationErrors

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is required and must be a number"})
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required and must be a number"})
	}
	if len(errs) > 0 {
		return req, errs
	}
	req.Year, req.Month = year, month
	return req, nil
}
