package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// OrderLine is one item-quantity pairing inside an order, captured as a
// snapshot at submission time. Price changes in the catalog never alter
// historical orders.
type OrderLine struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

// Order is a submitted customer order. Lines are serialized into the items
// text column as a nested JSON structure rather than separate rows.
type Order struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"not null;index" json:"createdAt"`
	CustomerName string    `gorm:"type:varchar(255);not null" json:"customerName"`
	FlatNumber   string    `gorm:"type:varchar(50);not null" json:"flatNumber"`
	DeliveryDay  string    `gorm:"type:varchar(50);not null" json:"deliveryDay"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	Notes        string    `gorm:"type:text" json:"notes"`
	ItemsTotal   float64   `gorm:"type:decimal(10,2);not null" json:"itemsTotal"`
	DeliveryFee  float64   `gorm:"type:decimal(10,2);not null" json:"deliveryFee"`
	GrandTotal   float64   `gorm:"type:decimal(10,2);not null" json:"grandTotal"`

	Items string      `gorm:"column:items;type:text;not null" json:"-"`
	Lines []OrderLine `gorm:"-" json:"items"`
}

// BeforeSave serializes Lines into the items column.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	data, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	o.Items = string(data)
	return nil
}

// AfterFind restores Lines from the items column.
func (o *Order) AfterFind(tx *gorm.DB) error {
	if o.Items == "" {
		o.Lines = nil
		return nil
	}
	return json.Unmarshal([]byte(o.Items), &o.Lines)
}
