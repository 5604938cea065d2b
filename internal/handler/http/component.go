package http

import (
	"encoding/json"
	"net/http"

	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ComponentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type componentHandlerImpl struct {
	componentService component.ComponentService
}

func NewComponentHandler(componentService component.ComponentService) ComponentHandler {
	return &componentHandlerImpl{componentService: componentService}
}

func (h *componentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req component.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.componentService.Create(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary component created", result)
}

func (h *componentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.componentService.Get(r.Context(), orgID, chi.URLParam(r, "componentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *componentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	result, err := h.componentService.List(r.Context(), orgID, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *componentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req component.UpdateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "componentID")

	if err := h.componentService.Update(r.Context(), orgID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary component updated", nil)
}

func (h *componentHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := h.componentService.Deactivate(r.Context(), orgID, chi.URLParam(r, "componentID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary component deactivated", nil)
}
