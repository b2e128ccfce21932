package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	SetPunchOverride(w http.ResponseWriter, r *http.Request)
	ClearPunchOverride(w http.ResponseWriter, r *http.Request)
	UpdateLunch(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// SetPunchOverride handles POST /employees/{id}/punch-override
func (h *employeeHandlerImpl) SetPunchOverride(w http.ResponseWriter, r *http.Request) {
	var req employee.SetPunchOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.employeeService.SetPunchOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch override granted", result)
}

// ClearPunchOverride handles DELETE /employees/{id}/punch-override
func (h *employeeHandlerImpl) ClearPunchOverride(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ClearPunchOverride(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch override cleared", result)
}

// UpdateLunch handles PATCH /employees/{id}/lunch
func (h *employeeHandlerImpl) UpdateLunch(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateLunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.employeeService.UpdateLunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lunch window updated", result)
}
