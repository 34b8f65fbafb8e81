package request

import "github.com/google/uuid"

// PaymentWebhookRequest is the notification shape posted by the payment
// provider after a checkout finishes.
type PaymentWebhookRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	Reference     string    `json:"reference" binding:"required"`
	Status        string    `json:"status" binding:"required"`
}

type StartPaymentRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
