package request

type BlockDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}
