package dto

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=2,max=100"`
	Phone   string  `json:"phone"   validate:"required,min=6,max=20"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type UpdateCustomerRequest struct {
	Name    string  `json:"name"    validate:"omitempty,min=2,max=100"`
	Phone   string  `json:"phone"   validate:"omitempty,min=6,max=20"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

// CustomerFilter is bound from the query string of GET /v1/customers.
type CustomerFilter struct {
	Search string `form:"search"` // matches name or phone
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CustomerResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	Email     *string           `json:"email"`
	Address   *string           `json:"address"`
	Vehicles  []VehicleResponse `json:"vehicles,omitempty"`
	CreatedAt string            `json:"created_at"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
