// repository/booking/repo.go
package bookingrepo

import (
	"context"

	"github.com/Thadzy/FIBO-Store/model"
	"github.com/Thadzy/FIBO-Store/util/database"

	"github.com/jackc/pgx/v5"
)

type Repo interface {
	// Writes, inside the caller's transaction.
	InsertBooking(ctx context.Context, tx pgx.Tx, userID int64, pickup, due, purpose string) (int64, error)
	InsertLine(ctx context.Context, tx pgx.Tx, bookingID, itemID, qty int64) error
	StatusForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (model.BookingStatus, error)
	SetStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error
	LinesFor(ctx context.Context, tx pgx.Tx, bookingID int64) ([]model.BookingLine, error)

	// Reads.
	ListForUser(ctx context.Context, email string) ([]model.BookingItemRow, error)
	ListAll(ctx context.Context) ([]model.BookingItemRow, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) InsertBooking(ctx context.Context, tx pgx.Tx, userID int64, pickup, due, purpose string) (int64, error) {
	const q = `
		INSERT INTO bookings (user_id, pickup_date, due_date, purpose, status)
		VALUES ($1, $2, $3, $4, 'Pending')
		RETURNING booking_id`
	var id int64
	if err := tx.QueryRow(ctx, q, userID, pickup, due, purpose).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) InsertLine(ctx context.Context, tx pgx.Tx, bookingID, itemID, qty int64) error {
	const q = `
		INSERT INTO booking_items (booking_id, item_id, quantity)
		VALUES ($1, $2, $3)`
	_, err := tx.Exec(ctx, q, bookingID, itemID, qty)
	return err
}

func (r *repo) StatusForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (model.BookingStatus, error) {
	const q = `
		SELECT status
		FROM bookings
		WHERE booking_id = $1
		FOR UPDATE`
	var s string
	if err := tx.QueryRow(ctx, q, bookingID).Scan(&s); err != nil {
		return "", err
	}
	return model.BookingStatus(s), nil
}

func (r *repo) SetStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error {
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE booking_id = $1`
	_, err := tx.Exec(ctx, q, bookingID, string(status))
	return err
}

func (r *repo) LinesFor(ctx context.Context, tx pgx.Tx, bookingID int64) ([]model.BookingLine, error) {
	const q = `
		SELECT item_id, quantity
		FROM booking_items
		WHERE booking_id = $1`
	rows, err := tx.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookingLine
	for rows.Next() {
		var l model.BookingLine
		if err := rows.Scan(&l.ItemID, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repo) ListForUser(ctx context.Context, email string) ([]model.BookingItemRow, error) {
	const q = `
		SELECT b.booking_id, b.status, b.pickup_date, b.due_date, b.purpose,
		       i.name, bi.quantity
		FROM bookings b
		JOIN users u  ON u.user_id = b.user_id
		JOIN booking_items bi ON bi.booking_id = b.booking_id
		JOIN items i  ON i.item_id = bi.item_id
		WHERE lower(u.email) = lower($1)
		ORDER BY b.booking_id DESC, bi.id ASC`
	rows, err := r.db.Pool.Query(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows, false)
}

func (r *repo) ListAll(ctx context.Context) ([]model.BookingItemRow, error) {
	const q = `
		SELECT b.booking_id, COALESCE(u.full_name, u.email), b.status,
		       b.pickup_date, b.due_date, b.purpose,
		       i.name, bi.quantity
		FROM bookings b
		JOIN users u  ON u.user_id = b.user_id
		JOIN booking_items bi ON bi.booking_id = b.booking_id
		JOIN items i  ON i.item_id = bi.item_id
		ORDER BY b.booking_id DESC, bi.id ASC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows, true)
}

func scanRows(rows pgx.Rows, withUser bool) ([]model.BookingItemRow, error) {
	var out []model.BookingItemRow
	for rows.Next() {
		var row model.BookingItemRow
		var err error
		if withUser {
			err = rows.Scan(&row.BookingID, &row.UserName, &row.Status,
				&row.PickupDate, &row.DueDate, &row.Purpose, &row.ItemName, &row.Quantity)
		} else {
			err = rows.Scan(&row.BookingID, &row.Status,
				&row.PickupDate, &row.DueDate, &row.Purpose, &row.ItemName, &row.Quantity)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
