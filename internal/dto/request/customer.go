package request

type CreateCustomerRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateCustomerRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
}
