package request

import "github.com/shopspring/decimal"

type ValidateCouponRequest struct {
	Code      string          `json:"code" binding:"required"`
	BaseNet   decimal.Decimal `json:"base_net"`
	MemberRUT *string         `json:"member_rut,omitempty"`
}
