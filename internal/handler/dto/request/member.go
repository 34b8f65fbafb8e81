package request

type CreateMemberRequest struct {
	RUT      string `json:"rut" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Active   *bool  `json:"active,omitempty"`
}

func (r CreateMemberRequest) IsActive() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

type UpdateMemberRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Active   bool   `json:"active"`
}

type ValidateMemberRequest struct {
	RUT  string `json:"rut" binding:"required"`
	Date string `json:"date,omitempty"`
}
