package request

type CreateItemRequest struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Price float64 `json:"price" validate:"gte=0"`
}

type UpdateItemRequest struct {
	Name  *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}
