package booking

type BookingLineReq struct {
	ItemID   int64 `json:"item_id" validate:"required,gt=0"`
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

type CreateBookingReq struct {
	UserEmail  string           `json:"user_email" validate:"required,email"`
	UserName   string           `json:"user_name"`
	PickupDate string           `json:"pickup_date" validate:"required"`
	DueDate    string           `json:"due_date" validate:"required"`
	Purpose    string           `json:"purpose"`
	Items      []BookingLineReq `json:"items" validate:"required,min=1,dive"`
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required"`
}
