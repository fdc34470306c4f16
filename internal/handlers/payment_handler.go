package handlers

import (
	"net/http"

	"destined_affinity/internal/dto"
	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(_, private *gin.RouterGroup) {
	private.POST("/payments/completed", h.Completed)
}

// Completed - клиент сообщает о прошедшем платеже; повтор того же transactionId
// возвращает сохраненную запись
func (h *PaymentHandler) Completed(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.PaymentCompletedRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.paymentService.RecordCompleted(h.GetDB(c), identity, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, result)
}
