package response

import (
	"time"

	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID             uuid.UUID  `json:"id"`
	SpaceID        uuid.UUID  `json:"spaceId"`
	SpaceName      string     `json:"spaceName"`
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `json:"customerEmail"`
	CustomerPhone  string     `json:"customerPhone,omitempty"`
	StartDate      string     `json:"startDate"`
	EndDate        *string    `json:"endDate,omitempty"`
	StartTime      string     `json:"startTime"`
	EndTime        string     `json:"endTime"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"paymentStatus"`
	NetAmount      string     `json:"netAmount"`
	DiscountAmount string     `json:"discountAmount"`
	TaxAmount      string     `json:"taxAmount"`
	TotalAmount    string     `json:"totalAmount"`
	MemberID       *uuid.UUID `json:"memberId,omitempty"`
	CouponID       *uuid.UUID `json:"couponId,omitempty"`
	DocumentType   *string    `json:"documentType,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type CreateReservationResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	CouponValid  bool                   `json:"couponValid"`
	CouponReason string                 `json:"couponReason,omitempty"`
}

type ReservationListResponse struct {
	ID            uuid.UUID `json:"id"`
	SpaceName     string    `json:"spaceName"`
	CustomerName  string    `json:"customerName"`
	StartDate     string    `json:"startDate"`
	EndDate       *string   `json:"endDate,omitempty"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalAmount   string    `json:"totalAmount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ReservationPageResponse struct {
	Items      []*ReservationListResponse `json:"items"`
	Total      int64                      `json:"total"`
	TotalPages int64                      `json:"totalPages"`
	Limit      int32                      `json:"limit"`
	Offset     int32                      `json:"offset"`
}

type OccupiedSlotResponse struct {
	SpaceID   uuid.UUID `json:"spaceId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

const dateLayout = "2006-01-02"

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	var endDate *string
	if v.EndDate != nil {
		s := v.EndDate.Format(dateLayout)
		endDate = &s
	}
	return &ReservationResponse{
		ID:             v.ID,
		SpaceID:        v.SpaceID,
		SpaceName:      v.SpaceName,
		CustomerName:   v.CustomerName,
		CustomerEmail:  v.CustomerEmail,
		CustomerPhone:  v.CustomerPhone,
		StartDate:      v.StartDate.Format(dateLayout),
		EndDate:        endDate,
		StartTime:      v.StartTime,
		EndTime:        v.EndTime,
		Status:         v.Status,
		PaymentStatus:  v.PaymentStatus,
		NetAmount:      v.NetAmount.StringFixed(2),
		DiscountAmount: v.DiscountAmount.StringFixed(2),
		TaxAmount:      v.TaxAmount.StringFixed(2),
		TotalAmount:    v.TotalAmount.StringFixed(2),
		MemberID:       v.MemberID,
		CouponID:       v.CouponID,
		DocumentType:   v.DocumentType,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromCreateReservationResult(result *commands.CreateReservationResult) *CreateReservationResponse {
	resp := &CreateReservationResponse{
		CouponValid:  result.CouponValid,
		CouponReason: result.CouponReason,
	}
	for _, v := range result.Reservations {
		resp.Reservations = append(resp.Reservations, FromReservationView(v))
	}
	return resp
}

func FromReservationListItem(v *queries.ReservationListItem) *ReservationListResponse {
	var endDate *string
	if v.EndDate != nil {
		s := v.EndDate.Format(dateLayout)
		endDate = &s
	}
	return &ReservationListResponse{
		ID:            v.ID,
		SpaceName:     v.SpaceName,
		CustomerName:  v.CustomerName,
		StartDate:     v.StartDate.Format(dateLayout),
		EndDate:       endDate,
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		TotalAmount:   v.TotalAmount.StringFixed(2),
		CreatedAt:     v.CreatedAt,
	}
}

func FromReservationPage(page *queries.ReservationPage) *ReservationPageResponse {
	items := make([]*ReservationListResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, FromReservationListItem(item))
	}

	totalPages := int64(0)
	if page.Limit > 0 {
		totalPages = (page.Total + int64(page.Limit) - 1) / int64(page.Limit)
	}
	return &ReservationPageResponse{
		Items:      items,
		Total:      page.Total,
		TotalPages: totalPages,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
}

func FromOccupiedSlotView(v *queries.OccupiedSlotView) *OccupiedSlotResponse {
	return &OccupiedSlotResponse{
		SpaceID:   v.SpaceID,
		Date:      v.Date.Format(dateLayout),
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
	}
}
