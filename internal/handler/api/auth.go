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

type AuthHandler struct {
	cmds commands.AuthCommands
}

func NewAuthHandler(cmds commands.AuthCommands) *AuthHandler {
	return &AuthHandler{cmds: cmds}
}

// @Summary Admin login
// @Description Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errors.Is(err, commands.ErrAdminInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is disabled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}
