package basket

// AddItemRequest adds units of a catalog product to the basket. Quantity
// defaults to one when omitted.
type AddItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Price    int    `json:"price" validate:"min=0"`
	ImageURL string `json:"imageUrl"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
}
