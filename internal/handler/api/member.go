package api

import (
	"errors"
	"net/http"

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

type MemberHandler struct {
	cmds  commands.MemberCommands
	q     queries.MemberQueries
	clock clock.Clock
}

func NewMemberHandler(cmds commands.MemberCommands, q queries.MemberQueries, clk clock.Clock) *MemberHandler {
	return &MemberHandler{cmds: cmds, q: q, clock: clk}
}

// @Summary Validate member
// @Description Check a RUT against the member roster and the weekly hour quota
// @Tags members
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateMemberRequest true "RUT and optional reference date"
// @Success 200 {object} resdto.MemberValidationResponse
// @Failure 400 {object} map[string]string
// @Router /members/validate [post]
func (h *MemberHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	forDate := h.clock.Now()
	if req.Date != "" {
		d, err := reservation.ParseDate(req.Date)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
			return
		}
		forDate = d
	}

	result, err := h.q.ValidateByRUT(c.Request.Context(), req.RUT, forDate)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to validate member", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMemberValidation(result))
}

// @Summary List members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.MemberResponse
// @Router /admin/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list members", nil)
		return
	}

	out := make([]*resdto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, resdto.FromMemberView(m))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Create member
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateMemberRequest true "Member data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req reqdto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, commands.ErrMemberAlreadyExists) {
			httperr.AbortWithError(c, http.StatusConflict, err, "RUT already registered", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create member", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Update member
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body reqdto.UpdateMemberRequest true "Member data"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, commands.ErrMemberNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Member not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update member", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrMemberNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Member not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to delete member", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
