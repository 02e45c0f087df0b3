// model/item.go
package model

type Item struct {
	ItemID            int64          `json:"item_id"`
	Name              string         `json:"name"`
	Category          string         `json:"category"`
	Description       string         `json:"description"`
	ImageURL          *string        `json:"image_url,omitempty"`
	AvailableQuantity int64          `json:"available_quantity"`
	Specifications    map[string]any `json:"specifications"`
}
