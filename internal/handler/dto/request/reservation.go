package request

import (
	"errors"
	"strings"

	"reservas-backend/internal/domain/reservation"

	"github.com/google/uuid"
)

var ErrMissingInvoiceData = errors.New("factura requires tax id, legal name, address and activity")

type CreateReservationRequest struct {
	SpaceID       uuid.UUID `json:"space_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"required,email"`
	CustomerPhone string    `json:"customer_phone"`

	// Exactly one date shape: start_date alone, start_date+end_date, or dates.
	StartDate string   `json:"start_date"`
	EndDate   *string  `json:"end_date,omitempty"`
	Dates     []string `json:"dates,omitempty"`

	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	MemberRUT  *string `json:"member_rut,omitempty"`
	CouponCode *string `json:"coupon_code,omitempty"`

	DocumentType     string  `json:"document_type"`
	TaxID            *string `json:"tax_id,omitempty"`
	LegalName        *string `json:"legal_name,omitempty"`
	BillingAddress   *string `json:"billing_address,omitempty"`
	BusinessActivity *string `json:"business_activity,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

func (r CreateReservationRequest) GetCouponCode() *string {
	return trimmedPtr(r.CouponCode)
}

func (r CreateReservationRequest) GetMemberRUT() *string {
	return trimmedPtr(r.MemberRUT)
}

// ToBilling validates the document fields. boleta is the default and needs
// nothing extra; factura demands the full invoice block.
func (r CreateReservationRequest) ToBilling() (*reservation.Billing, error) {
	docType := strings.TrimSpace(r.DocumentType)
	if docType == "" {
		docType = "boleta"
	}

	b := reservation.Billing{DocumentType: docType}
	if !b.RequiresInvoiceData() {
		return &b, nil
	}

	taxID := trimmedPtr(r.TaxID)
	legalName := trimmedPtr(r.LegalName)
	address := trimmedPtr(r.BillingAddress)
	activity := trimmedPtr(r.BusinessActivity)
	if taxID == nil || legalName == nil || address == nil || activity == nil {
		return nil, ErrMissingInvoiceData
	}

	b.TaxID = *taxID
	b.LegalName = *legalName
	b.Address = *address
	b.Activity = *activity
	return &b, nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
