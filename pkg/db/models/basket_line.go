package models

import "time"

// BasketLine is one aggregated basket entry, keyed by product name.
// A line with quantity 0 never exists; it is deleted instead.
type BasketLine struct {
	ProductName string    `gorm:"column:product_name;primaryKey" json:"product_name"`
	UnitPrice   int       `gorm:"column:unit_price;not null" json:"unit_price"`
	ImageURL    string    `gorm:"column:image_url;not null;default:''" json:"image_url"`
	Quantity    int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:nano" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime:nano" json:"-"`
}

// TableName pins the table managed by the basket_lines migration.
func (BasketLine) TableName() string { return "basket_lines" }
