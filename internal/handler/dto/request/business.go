package request

import (
	"local-deals/internal/domain/business"
)

type CreateBusinessRequest struct {
	BusinessName string  `json:"business_name" binding:"required,max=200"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
}

func (r *CreateBusinessRequest) ToProfile() business.Profile {
	return business.Profile{
		Name:        r.BusinessName,
		Phone:       r.Phone,
		Address:     r.Address,
		Description: r.Description,
	}
}

type UpdateVerificationRequest struct {
	Status string `json:"verification_status" binding:"required,oneof=pending approved rejected"`
}
