package api

import (
	"net/http"

	reqdto "reservas-backend/internal/handler/dto/request"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/handler/httperr"
	"reservas-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	q queries.CouponQueries
}

func NewCouponHandler(q queries.CouponQueries) *CouponHandler {
	return &CouponHandler{q: q}
}

// @Summary Validate coupon
// @Description Pre-checkout coupon check; an unusable coupon is a negative answer, not an error
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateCouponRequest true "Code, base net amount, optional member RUT"
// @Success 200 {object} resdto.CouponValidationResponse
// @Failure 400 {object} map[string]string
// @Router /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.q.Validate(c.Request.Context(), req.Code, req.BaseNet, req.MemberRUT)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to validate coupon", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponValidation(result))
}
