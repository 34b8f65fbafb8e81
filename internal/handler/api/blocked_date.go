package api

import (
	"errors"
	"net/http"
	"time"

	"reservas-backend/internal/domain/reservation"
	reqdto "reservas-backend/internal/handler/dto/request"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/handler/httperr"
	"reservas-backend/internal/pkg/clock"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlockedDateHandler struct {
	cmds  commands.BlockedDateCommands
	q     queries.BlockedDateQueries
	clock clock.Clock
}

func NewBlockedDateHandler(cmds commands.BlockedDateCommands, q queries.BlockedDateQueries, clk clock.Clock) *BlockedDateHandler {
	return &BlockedDateHandler{cmds: cmds, q: q, clock: clk}
}

// @Summary List blocked dates
// @Tags blocked-dates
// @Produce json
// @Param from query string false "Date from (YYYY-MM-DD), defaults to today"
// @Param to query string false "Date to (YYYY-MM-DD), defaults to 90 days ahead"
// @Success 200 {array} resdto.BlockedDateResponse
// @Router /blocked-dates [get]
func (h *BlockedDateHandler) List(c *gin.Context) {
	now := h.clock.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 3, 0)

	var err error
	if s := c.Query("from"); s != "" {
		if from, err = reservation.ParseDate(s); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from date", nil)
			return
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = reservation.ParseDate(s); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to date", nil)
			return
		}
	}

	items, err := h.q.List(c.Request.Context(), from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list blocked dates", nil)
		return
	}

	out := make([]*resdto.BlockedDateResponse, 0, len(items))
	for _, item := range items {
		out = append(out, resdto.FromBlockedDateView(item))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Block date
// @Tags blocked-dates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BlockDateRequest true "Date and reason"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/blocked-dates [post]
func (h *BlockedDateHandler) Block(c *gin.Context) {
	var req reqdto.BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.cmds.Block(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDateAlreadyBlocked):
			httperr.AbortWithError(c, http.StatusConflict, err, "Date already blocked", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to block date", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Unblock date
// @Tags blocked-dates
// @Security BearerAuth
// @Param id path string true "Blocked date ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/blocked-dates/{id} [delete]
func (h *BlockedDateHandler) Unblock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.Unblock(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrBlockedDateMissing) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Blocked date not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to unblock date", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
