package api

import (
	"errors"
	"net/http"

	reqdto "reservas-backend/internal/handler/dto/request"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/handler/httperr"
	"reservas-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Start checkout
// @Description Open a payment session for a pending reservation
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.StartPaymentRequest true "Reservation to pay"
// @Success 200 {object} resdto.StartCheckoutResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /payments/checkout [post]
func (h *PaymentHandler) StartCheckout(c *gin.Context) {
	var req reqdto.StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.StartCheckout(c.Request.Context(), req.ReservationID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrReservationNotOpen):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation cannot accept payment", nil)
		case errors.Is(err, commands.ErrPaymentGatewayFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromStartCheckoutResult(result))
}

// @Summary Payment webhook
// @Description Provider notification; replays of a settled payment are acknowledged without changes
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentWebhookRequest true "Payment notification"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.HandleWebhook(c.Request.Context(), req.ReservationID, req.Reference, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is closed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(result.Reservation))
}
