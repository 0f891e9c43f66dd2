package response

import (
	"time"

	"local-deals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BusinessResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	BusinessName       string    `json:"business_name"`
	Phone              *string   `json:"phone,omitempty"`
	Address            *string   `json:"address,omitempty"`
	Description        *string   `json:"description,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

func FromBusinessView(v *queries.BusinessView) *BusinessResponse {
	var res BusinessResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromBusinessViews(vs []*queries.BusinessView) []*BusinessResponse {
	return mapAll(vs, FromBusinessView)
}

// BusinessRegistrationResponse carries a new token pair when the caller was promoted.
type BusinessRegistrationResponse struct {
	Business     *BusinessResponse `json:"business"`
	Token        string            `json:"token,omitempty"`
	RefreshToken string            `json:"refresh_token,omitempty"`
	User         *UserResponse     `json:"user,omitempty"`
}

func mapAll[S, D any](src []*S, fn func(*S) *D) []*D {
	out := make([]*D, len(src))
	for i, s := range src {
		out[i] = fn(s)
	}
	return out
}
