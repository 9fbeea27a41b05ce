package catalog

// Product is one catalog item as served by the upstream API. It doubles as
// the per-unit entry of an order request.
type Product struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	ImageURL string `json:"imageUrl"`
}

// StoreInfo is the storefront header payload. Opening and closing times are
// raw upstream values in "HH:mm:ss.SSS'Z'" UTC form.
type StoreInfo struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	OpeningTime string  `json:"openingTime"`
	ClosingTime string  `json:"closingTime"`
}

// OrderRequest is the submission payload. Products holds one entry per unit:
// a basket line with quantity 3 contributes 3 repeated entries.
type OrderRequest struct {
	Products        []Product `json:"products"`
	DeliveryAddress string    `json:"delivery_address"`
}
