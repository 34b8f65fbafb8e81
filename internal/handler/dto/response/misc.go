package response

import (
	"time"

	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AdminID     uuid.UUID `json:"adminId"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AccessToken string    `json:"accessToken"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AdminID:     r.AdminID,
		Email:       r.Email,
		Role:        r.Role,
		AccessToken: r.AccessToken,
	}
}

type SpaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Capacity    int32     `json:"capacity"`
	HourlyRate  *string   `json:"hourlyRate,omitempty"`
	Active      bool      `json:"active"`
}

func FromSpaceView(v *queries.SpaceView) *SpaceResponse {
	resp := &SpaceResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Capacity:    v.Capacity,
		Active:      v.Active,
	}
	if v.HourlyRate.Valid {
		s := v.HourlyRate.Decimal.StringFixed(2)
		resp.HourlyRate = &s
	}
	return resp
}

type MemberResponse struct {
	ID        uuid.UUID `json:"id"`
	RUT       string    `json:"rut"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

func FromMemberView(v *queries.MemberView) *MemberResponse {
	return &MemberResponse{
		ID:        v.ID,
		RUT:       v.RUT,
		FullName:  v.FullName,
		Email:     v.Email,
		Active:    v.Active,
		CreatedAt: v.CreatedAt,
	}
}

type MemberValidationResponse struct {
	Valid          bool            `json:"valid"`
	Member         *MemberResponse `json:"member,omitempty"`
	RemainingHours int             `json:"remainingHours"`
	Reason         string          `json:"reason,omitempty"`
}

func FromMemberValidation(v *queries.MemberValidationView) *MemberValidationResponse {
	resp := &MemberValidationResponse{
		Valid:          v.Valid,
		RemainingHours: v.RemainingHours,
		Reason:         v.Reason,
	}
	if v.Member != nil {
		resp.Member = FromMemberView(v.Member)
	}
	return resp
}

type CouponValidationResponse struct {
	Code     string `json:"code"`
	Valid    bool   `json:"valid"`
	Discount string `json:"discount"`
	Reason   string `json:"reason,omitempty"`
}

func FromCouponValidation(v *queries.CouponValidationView) *CouponValidationResponse {
	return &CouponValidationResponse{
		Code:     v.Code,
		Valid:    v.Valid,
		Discount: v.Discount.StringFixed(2),
		Reason:   v.Reason,
	}
}

type BlockedDateResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromBlockedDateView(v *queries.BlockedDateView) *BlockedDateResponse {
	return &BlockedDateResponse{
		ID:        v.ID,
		Date:      v.Date.Format(dateLayout),
		Reason:    v.Reason,
		CreatedAt: v.CreatedAt,
	}
}

type StartCheckoutResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	Reference     string    `json:"reference"`
	RedirectURL   string    `json:"redirectUrl"`
}

func FromStartCheckoutResult(r *commands.StartCheckoutResult) *StartCheckoutResponse {
	return &StartCheckoutResponse{
		ReservationID: r.ReservationID,
		Reference:     r.Reference,
		RedirectURL:   r.RedirectURL,
	}
}
