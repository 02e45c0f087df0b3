package bookingsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Thadzy/FIBO-Store/model"
	itemrepo "github.com/Thadzy/FIBO-Store/repository/item"

	"github.com/jackc/pgx/v5"
)

// errors used by controllers

type ErrCode string

const (
	ErrItemNotFound      ErrCode = "ITEM_NOT_FOUND"
	ErrInsufficientStock ErrCode = "INSUFFICIENT_STOCK"
	ErrBookingNotFound   ErrCode = "BOOKING_NOT_FOUND"
	ErrBadStatus         ErrCode = "BAD_STATUS"
	ErrBadInput          ErrCode = "BAD_INPUT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// StockError carries the item and quantities behind an insufficient-stock
// rejection so callers can report exactly what could not be reserved.
type StockError struct {
	ItemID    int64
	Requested int64
	Available int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}
func (e *StockError) Code() ErrCode { return ErrInsufficientStock }

// Code extracts the error code, "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type Identity struct {
	Email    string
	FullName string
}

type Request struct {
	PickupDate string
	DueDate    string
	Purpose    string
	Lines      []model.BookingLine
}

// ----- dependencies -----

type DB interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type ItemStock interface {
	QuantityForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (int64, error)
	AdjustQuantity(ctx context.Context, tx pgx.Tx, itemID int64, delta int64) error
}

type Users interface {
	ByEmail(ctx context.Context, tx pgx.Tx, email string) (*model.User, error)
	Insert(ctx context.Context, tx pgx.Tx, email, fullName string) (*model.User, error)
}

type Bookings interface {
	InsertBooking(ctx context.Context, tx pgx.Tx, userID int64, pickup, due, purpose string) (int64, error)
	InsertLine(ctx context.Context, tx pgx.Tx, bookingID, itemID, qty int64) error
	StatusForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (model.BookingStatus, error)
	SetStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error
	LinesFor(ctx context.Context, tx pgx.Tx, bookingID int64) ([]model.BookingLine, error)
	ListForUser(ctx context.Context, email string) ([]model.BookingItemRow, error)
	ListAll(ctx context.Context) ([]model.BookingItemRow, error)
}

type Service interface {
	// Create reserves stock for every line and persists the booking as one
	// transaction. Returns the new booking id.
	Create(ctx context.Context, who Identity, req Request) (int64, error)

	// UpdateStatus moves a booking to a new status. The first transition into
	// Rejected or Returned restocks every line; repeats do not.
	UpdateStatus(ctx context.Context, bookingID int64, status string) error

	MyBookings(ctx context.Context, email string) ([]model.BookingWithItems, error)
	AdminBookings(ctx context.Context) ([]model.BookingWithItems, error)
}

// ----- Service implementation -----

type service struct {
	db DB
	it ItemStock
	us Users
	bk Bookings
}

func New(db DB, it ItemStock, us Users, bk Bookings) Service {
	return &service{db: db, it: it, us: us, bk: bk}
}

func (s *service) Create(ctx context.Context, who Identity, req Request) (int64, error) {
	if strings.TrimSpace(who.Email) == "" || len(req.Lines) == 0 {
		return 0, makeErr(ErrBadInput, "email and at least one line are required")
	}
	for _, l := range req.Lines {
		if l.ItemID <= 0 || l.Quantity <= 0 {
			return 0, makeErr(ErrBadInput, "line items need a positive item_id and quantity")
		}
	}

	var bookingID int64
	err := s.db.WithinTx(ctx, func(tx pgx.Tx) error {
		userID, err := s.resolveUser(ctx, tx, who)
		if err != nil {
			return err
		}

		bookingID, err = s.bk.InsertBooking(ctx, tx, userID, req.PickupDate, req.DueDate, req.Purpose)
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			avail, err := s.it.QuantityForUpdate(ctx, tx, line.ItemID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return makeErr(ErrItemNotFound, "item %d not found", line.ItemID)
				}
				return err
			}
			if line.Quantity > avail {
				return &StockError{ItemID: line.ItemID, Requested: line.Quantity, Available: avail}
			}
			if err := s.bk.InsertLine(ctx, tx, bookingID, line.ItemID, line.Quantity); err != nil {
				return err
			}
			if err := s.it.AdjustQuantity(ctx, tx, line.ItemID, -line.Quantity); err != nil {
				if errors.Is(err, itemrepo.ErrStockGuard) {
					return &StockError{ItemID: line.ItemID, Requested: line.Quantity, Available: avail}
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bookingID, nil
}

// resolveUser maps an email to a user id, inserting on first sight. The full
// name recorded at first sight is kept on later visits.
func (s *service) resolveUser(ctx context.Context, tx pgx.Tx, who Identity) (int64, error) {
	u, err := s.us.ByEmail(ctx, tx, who.Email)
	if err == nil {
		return u.UserID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	u, err = s.us.Insert(ctx, tx, who.Email, who.FullName)
	if err == nil {
		return u.UserID, nil
	}
	// No row back from the insert: a concurrent request won the unique index
	// between our lookup and insert. The row exists now, so read it again.
	if errors.Is(err, pgx.ErrNoRows) {
		u, err = s.us.ByEmail(ctx, tx, who.Email)
		if err != nil {
			return 0, err
		}
		return u.UserID, nil
	}
	return 0, err
}

func (s *service) UpdateStatus(ctx context.Context, bookingID int64, status string) error {
	next := model.BookingStatus(status)
	if !next.Valid() {
		return makeErr(ErrBadStatus, "unrecognized status %q", status)
	}

	return s.db.WithinTx(ctx, func(tx pgx.Tx) error {
		prev, err := s.bk.StatusForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return makeErr(ErrBookingNotFound, "booking %d not found", bookingID)
			}
			return err
		}

		// Restock once: only on the transition into a terminal status from a
		// non-terminal one.
		if next.Terminal() && !prev.Terminal() {
			lines, err := s.bk.LinesFor(ctx, tx, bookingID)
			if err != nil {
				return err
			}
			for _, l := range lines {
				if err := s.it.AdjustQuantity(ctx, tx, l.ItemID, l.Quantity); err != nil {
					return err
				}
			}
		}

		return s.bk.SetStatus(ctx, tx, bookingID, next)
	})
}

func (s *service) MyBookings(ctx context.Context, email string) ([]model.BookingWithItems, error) {
	rows, err := s.bk.ListForUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return groupRows(rows), nil
}

func (s *service) AdminBookings(ctx context.Context) ([]model.BookingWithItems, error) {
	rows, err := s.bk.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return groupRows(rows), nil
}

// groupRows folds flat join rows into one record per booking. Rows arrive
// ordered by booking_id descending, so consecutive grouping is enough.
func groupRows(rows []model.BookingItemRow) []model.BookingWithItems {
	out := make([]model.BookingWithItems, 0, len(rows))
	for _, row := range rows {
		n := len(out)
		if n == 0 || out[n-1].BookingID != row.BookingID {
			out = append(out, model.BookingWithItems{
				BookingID:  row.BookingID,
				UserName:   row.UserName,
				Status:     row.Status,
				PickupDate: row.PickupDate,
				ReturnDate: row.DueDate,
				Purpose:    row.Purpose,
			})
			n++
		}
		out[n-1].Items = append(out[n-1].Items, model.BookedItem{
			Name:     row.ItemName,
			Quantity: row.Quantity,
		})
	}
	return out
}
