// model/booking.go
package model

type BookingStatus string

const (
	BookingPending  BookingStatus = "Pending"
	BookingApproved BookingStatus = "Approved"
	BookingRejected BookingStatus = "Rejected"
	BookingReturned BookingStatus = "Returned"
)

// Valid reports whether s is one of the recognized statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected, BookingReturned:
		return true
	}
	return false
}

// Terminal reports whether s releases reserved stock back to the pool.
func (s BookingStatus) Terminal() bool {
	return s == BookingRejected || s == BookingReturned
}

// BookingLine is one (item, quantity) pair inside a booking.
type BookingLine struct {
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}

// BookingItemRow is one flat row of the booking/line/item join,
// ordered by booking_id descending.
type BookingItemRow struct {
	BookingID  int64
	UserName   string
	Status     string
	PickupDate string
	DueDate    string
	Purpose    string
	ItemName   string
	Quantity   int64
}

// BookedItem is the per-line view inside a grouped booking.
type BookedItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// BookingWithItems is one grouped booking as served by the list endpoints.
// due_date goes out as return_date, matching the store front.
type BookingWithItems struct {
	BookingID  int64        `json:"booking_id"`
	UserName   string       `json:"user_name,omitempty"`
	Status     string       `json:"status"`
	PickupDate string       `json:"pickup_date"`
	ReturnDate string       `json:"return_date"`
	Purpose    string       `json:"purpose"`
	Items      []BookedItem `json:"items"`
}
