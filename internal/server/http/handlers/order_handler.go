package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/dto"
)

// OrderHandler manages order directory endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Pending handles GET /api/orders/pending.
func (h *OrderHandler) Pending(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		limit = 0
	}

	orders, err := h.facade.PendingOrders(c.Request.Context(), page, limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.PendingOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.NewPendingOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Search handles GET /api/orders/search. The query is normalized before the
// lookup, so " os123 " and "OS123" resolve identically.
func (h *OrderHandler) Search(c *gin.Context) {
	order, err := h.facade.FindOrder(c.Request.Context(), c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrderNumber):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// Detail handles GET /api/orders/:number. For settled orders the stored
// payment evidence rides along, so a client that lost a receipt to a
// timeout can recover it.
func (h *OrderHandler) Detail(c *gin.Context) {
	order, payment, err := h.facade.OrderDetail(c.Request.Context(), c.Param("number"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrderNumber):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := dto.NewOrderResponse(order)
	if payment != nil {
		evidence := dto.NewPaymentResponse(payment)
		response.Payment = &evidence
	}
	c.JSON(http.StatusOK, response)
}

// Ingest handles POST /api/orders, the checkout feed into the directory.
func (h *OrderHandler) Ingest(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.IngestOrder(c.Request.Context(), req.Order())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrEmptyOrderNumber):
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
				Errors: []dto.FieldErrorPayload{{Field: "order_number", Reason: "required"}},
			})
		case errors.Is(err, domainErrors.ErrInvalidOrderTotal):
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
				Errors: []dto.FieldErrorPayload{{Field: "total", Reason: "totals do not add up"}},
			})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}
