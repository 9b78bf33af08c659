package domain

import "time"

// SoftwareProduct is a licensable product. The id is free-form text: a UUID,
// a Power BI visual GUID, or any other vendor identifier.
type SoftwareProduct struct {
	ID          string    `json:"id"`
	Vendor      string    `json:"vendor"`
	ProductArea string    `json:"productArea"`
	ProductType string    `json:"productType"`
	ProductName string    `json:"productName"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
