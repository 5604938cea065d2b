package http

import (
	"encoding/json"
	"net/http"

	"github.com/astrahr/payroll-backend-go/internal/domain/adhoc"
	"github.com/astrahr/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdhocHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type adhocHandlerImpl struct {
	paymentService adhoc.PaymentService
}

func NewAdhocHandler(paymentService adhoc.PaymentService) AdhocHandler {
	return &adhocHandlerImpl{paymentService: paymentService}
}

func (h *adhocHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req adhoc.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.paymentService.Create(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ad-hoc payment created", result)
}

func (h *adhocHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.paymentService.Get(r.Context(), orgID, chi.URLParam(r, "paymentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *adhocHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.paymentService.ListByEmployee(r.Context(), orgID, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *adhocHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := h.paymentService.Cancel(r.Context(), orgID, chi.URLParam(r, "paymentID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ad-hoc payment cancelled", nil)
}
