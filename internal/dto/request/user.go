package request

type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CUSTOMER GUIDE ADMIN"`
}
