package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
)

type HoursHandler interface {
	// Reprocess rebuilds every hours balance from the stored punches
	Reprocess(w http.ResponseWriter, r *http.Request)
	// ListLogs returns the latest reprocess runs
	ListLogs(w http.ResponseWriter, r *http.Request)
}

type hoursHandlerImpl struct {
	hoursService hours.HoursService
}

func NewHoursHandler(hoursService hours.HoursService) HoursHandler {
	return &hoursHandlerImpl{hoursService: hoursService}
}

// Reprocess handles POST /admin/reprocess-hours. The body is optional;
// query parameters are used when it is absent.
func (h *hoursHandlerImpl) Reprocess(w http.ResponseWriter, r *http.Request) {
	var req hours.ReprocessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Start == "" && req.End == "" {
		req.Start = r.URL.Query().Get("start")
		req.End = r.URL.Query().Get("end")
	}

	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.InitiatedBy = &caller.UserID

	result, err := h.hoursService.Reprocess(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Hours balances reprocessed", result)
}

// ListLogs handles GET /admin/reprocess-logs
func (h *hoursHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	req := hours.ListLogsRequest{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	result, err := h.hoursService.ListLogs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{Total: len(result), Limit: hours.MaxLogs})
}
