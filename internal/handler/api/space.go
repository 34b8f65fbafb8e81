package api

import (
	"net/http"

	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/handler/httperr"
	"reservas-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	q queries.SpaceQueries
}

func NewSpaceHandler(q queries.SpaceQueries) *SpaceHandler {
	return &SpaceHandler{q: q}
}

// @Summary List spaces
// @Description Public catalog of active spaces
// @Tags spaces
// @Produce json
// @Success 200 {array} resdto.SpaceResponse
// @Router /spaces [get]
func (h *SpaceHandler) List(c *gin.Context) {
	spaces, err := h.q.ListActive(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list spaces", nil)
		return
	}

	out := make([]*resdto.SpaceResponse, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, resdto.FromSpaceView(s))
	}
	c.JSON(http.StatusOK, out)
}
