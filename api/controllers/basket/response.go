package basket

import (
	"github.com/worklabs/emarket-backend/internal/pricing"
	"github.com/worklabs/emarket-backend/pkg/db/models"
)

// ItemView is one basket line as exposed over the API.
type ItemView struct {
	Name      string `json:"name"`
	UnitPrice int    `json:"unitPrice"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"lineTotal"`
}

// BasketView is the full basket with its derived totals.
type BasketView struct {
	Items               []ItemView `json:"items"`
	TotalItems          int        `json:"totalItems"`
	TotalPrice          int        `json:"totalPrice"`
	FormattedTotalPrice string     `json:"formattedTotalPrice"`
}

func newBasketView(lines []models.BasketLine) BasketView {
	items := make([]ItemView, 0, len(lines))
	for _, line := range lines {
		items = append(items, ItemView{
			Name:      line.ProductName,
			UnitPrice: line.UnitPrice,
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
			LineTotal: line.Quantity * line.UnitPrice,
		})
	}

	total := pricing.TotalPrice(lines)
	return BasketView{
		Items:               items,
		TotalItems:          pricing.TotalItems(lines),
		TotalPrice:          total,
		FormattedTotalPrice: pricing.Format(total),
	}
}
