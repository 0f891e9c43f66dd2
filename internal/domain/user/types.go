package user

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleCustomer: 1,
	RoleBusiness: 2,
	RoleAdmin:    3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// NewSignupRole maps an optional self-service role; admin cannot be self-assigned.
func NewSignupRole(s string) (Role, error) {
	if s == "" {
		return RoleCustomer, nil
	}
	role, err := NewRole(s)
	if err != nil {
		return "", err
	}
	if role == RoleAdmin {
		return "", ErrInvalidRole
	}
	return role, nil
}
