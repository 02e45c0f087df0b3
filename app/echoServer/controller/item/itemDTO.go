package item

type UpsertItemReq struct {
	Name           string         `json:"name" validate:"required"`
	Category       string         `json:"category"`
	Description    string         `json:"description"`
	Quantity       int64          `json:"quantity" validate:"gte=0"`
	Unit           string         `json:"unit"`
	Specifications map[string]any `json:"specifications"`
	ImageURL       *string        `json:"image_url"`
}
