package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/dto"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/usecase"
)

// PaymentHandler records collection evidence against orders.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Record handles POST /api/orders/:number/payment. The response mirrors the
// reconciliation outcome one to one: receipt on commit, field errors on
// rejection, the authoritative order on conflict.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	outcome := h.facade.RecordPayment(c.Request.Context(), c.Param("number"), req.Record())
	switch outcome.Kind {
	case usecase.OutcomeCommitted:
		c.JSON(http.StatusOK, dto.NewPaymentReceiptResponse(outcome.Receipt))
	case usecase.OutcomeRejected:
		c.JSON(http.StatusUnprocessableEntity, validationResponse(outcome.Validation))
	case usecase.OutcomeConflict:
		response := dto.ConflictResponse{Error: "order already paid"}
		if outcome.Order != nil {
			order := dto.NewOrderResponse(outcome.Order)
			response.Order = &order
		}
		c.JSON(http.StatusConflict, response)
	case usecase.OutcomeNotFound:
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func validationResponse(v *usecase.ValidationError) dto.ValidationErrorResponse {
	response := dto.ValidationErrorResponse{Errors: make([]dto.FieldErrorPayload, 0, len(v.Fields))}
	for _, f := range v.Fields {
		response.Errors = append(response.Errors, dto.FieldErrorPayload{Field: f.Field, Reason: f.Reason})
	}
	return response
}
