package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type CompanyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateWorkWeek(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req company.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := c.companyService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create company", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Company created successfully", created)
}

// GetSettings implements CompanyHandler.
func (c *CompanyHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.companyService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}

// UpdateWorkWeek implements CompanyHandler.
func (c *CompanyHandlerImpl) UpdateWorkWeek(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateWorkWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update work week decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := c.companyService.UpdateWorkWeek(r.Context(), req)
	if err != nil {
		slog.Error("Work week update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Update work week successfully", "company_id", updated.ID)
	response.SuccessWithMessage(w, "Work week updated successfully", updated)
}

// UpdatePolicy implements CompanyHandler.
func (c *CompanyHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req company.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update attendance policy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := c.companyService.UpdatePolicy(r.Context(), req)
	if err != nil {
		slog.Error("Attendance policy update service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance policy updated successfully", updated)
}
