package api

import (
	"errors"
	"net/http"
	"strconv"

	"reservas-backend/internal/domain/reservation"
	reqdto "reservas-backend/internal/handler/dto/request"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/handler/httperr"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds   commands.ReservationCommands
	status commands.StatusCommands
	q      queries.ReservationQueries
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	status commands.StatusCommands,
	q queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, status: status, q: q}
}

// @Summary Create reservation
// @Description Create a booking for a single date, a date range or a list of discrete dates
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSpaceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Space not found", nil)
		case errors.Is(err, commands.ErrSpaceUnavailable):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Space is not active", nil)
		case errors.Is(err, commands.ErrDateBlocked):
			httperr.AbortWithError(c, http.StatusConflict, err, "Selected date is blocked", nil)
		case errors.Is(err, commands.ErrReservationConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Time slot is already taken", nil)
		case errors.Is(err, commands.ErrMemberNotFound):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Member not found", nil)
		case errors.Is(err, commands.ErrMemberInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Member is not active", nil)
		case errors.Is(err, commands.ErrQuotaExceeded):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Weekly member hours exceeded", nil)
		case errors.Is(err, commands.ErrCouponAlreadyUsed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Coupon already used", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateReservationResult(result))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description Admin listing with optional filters and pagination
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param space_id query string false "Space ID"
// @Param status query string false "Reservation status"
// @Param payment_status query string false "Payment status"
// @Param search query string false "Customer name or email substring"
// @Param from query string false "Date from (YYYY-MM-DD)"
// @Param to query string false "Date to (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.ReservationPageResponse
// @Router /admin/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	filter, err := parseReservationFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter", nil)
		return
	}

	page, err := h.q.ListAdmin(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list reservations", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Confirm reservation
// @Description Confirm a pending reservation; confirming twice is a no-op
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	result, err := h.status.Confirm(c.Request.Context(), id)
	if err != nil {
		abortStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(result.Reservation))
}

// @Summary Update reservation status
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationStatusRequest true "Target status"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/reservations/{id}/status [patch]
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	target := reservation.Status(req.Status)
	if target == reservation.StatusConfirmed {
		result, err := h.status.Confirm(c.Request.Context(), id)
		if err != nil {
			abortStatusError(c, err)
			return
		}
		c.JSON(http.StatusOK, resdto.FromReservationView(result.Reservation))
		return
	}

	view, err := h.status.Cancel(c.Request.Context(), id, target)
	if err != nil {
		abortStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Delete reservation
// @Description Soft delete: the reservation is cancelled and its slot freed
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.status.SoftDelete(c.Request.Context(), id); err != nil {
		abortStatusError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Occupied slots
// @Description Public availability calendar for a date window
// @Tags availability
// @Produce json
// @Param space_id query string false "Space ID"
// @Param from query string true "Date from (YYYY-MM-DD)"
// @Param to query string true "Date to (YYYY-MM-DD)"
// @Success 200 {array} resdto.OccupiedSlotResponse
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *ReservationHandler) Availability(c *gin.Context) {
	from, err := reservation.ParseDate(c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from date", nil)
		return
	}
	to, err := reservation.ParseDate(c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to date", nil)
		return
	}
	if to.Before(from) {
		httperr.AbortWithError(c, http.StatusBadRequest, reservation.ErrEndBeforeStart, "Invalid date window", nil)
		return
	}

	var spaceID *uuid.UUID
	if s := c.Query("space_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid space id", nil)
			return
		}
		spaceID = &id
	}

	slots, err := h.q.OccupiedSlots(c.Request.Context(), spaceID, from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load availability", nil)
		return
	}

	out := make([]*resdto.OccupiedSlotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, resdto.FromOccupiedSlotView(slot))
	}
	c.JSON(http.StatusOK, out)
}

func abortStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, commands.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status value", nil)
	case errors.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid status transition", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseReservationFilter(c *gin.Context) (queries.ReservationFilter, error) {
	var filter queries.ReservationFilter

	if s := c.Query("space_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, err
		}
		filter.SpaceID = &id
	}
	if s := c.Query("status"); s != "" {
		filter.Status = &s
	}
	if s := c.Query("payment_status"); s != "" {
		filter.PaymentStatus = &s
	}
	if s := c.Query("search"); s != "" {
		filter.Search = &s
	}
	if s := c.Query("from"); s != "" {
		d, err := reservation.ParseDate(s)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &d
	}
	if s := c.Query("to"); s != "" {
		d, err := reservation.ParseDate(s)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &d
	}

	filter.Limit = parseInt32(c.Query("limit"), 50)
	filter.Offset = parseInt32(c.Query("offset"), 0)
	return filter, nil
}

func parseInt32(s string, def int32) int32 {
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return def
	}
	return int32(n)
}
