// service/booking/memstore_test.go
package bookingsvc_test

import (
	"context"
	"errors"
	"sort"

	"github.com/Thadzy/FIBO-Store/model"

	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory stand-in for the three repositories plus the
// transaction runner. WithinTx snapshots all state and restores it when the
// body fails, so atomicity tests observe real rollback behavior.
type memStore struct {
	items       map[int64]*memItem
	users       map[string]*memUser
	bookings    map[int64]*memBooking
	lines       map[int64][]model.BookingLine
	nextUser    int64
	nextBooking int64

	failInsertLine bool

	// missLookups makes the next N ByEmail calls miss even when the row
	// exists, standing in for another request inserting the email between
	// the resolver's lookup and its insert.
	missLookups int
}

type memItem struct {
	name string
	qty  int64
}

type memUser struct {
	id       int64
	fullName string
}

type memBooking struct {
	userID  int64
	pickup  string
	due     string
	purpose string
	status  model.BookingStatus
}

func newMemStore() *memStore {
	return &memStore{
		items:    map[int64]*memItem{},
		users:    map[string]*memUser{},
		bookings: map[int64]*memBooking{},
		lines:    map[int64][]model.BookingLine{},
	}
}

func (m *memStore) seedItem(id int64, name string, qty int64) {
	m.items[id] = &memItem{name: name, qty: qty}
}

// --- bookingsvc.DB ---

func (m *memStore) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	snap := m.snapshot()
	if err := fn(nil); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) snapshot() *memStore {
	s := newMemStore()
	s.nextUser, s.nextBooking = m.nextUser, m.nextBooking
	s.missLookups = m.missLookups
	for id, it := range m.items {
		s.items[id] = &memItem{name: it.name, qty: it.qty}
	}
	for email, u := range m.users {
		s.users[email] = &memUser{id: u.id, fullName: u.fullName}
	}
	for id, b := range m.bookings {
		cp := *b
		s.bookings[id] = &cp
	}
	for id, ls := range m.lines {
		s.lines[id] = append([]model.BookingLine(nil), ls...)
	}
	return s
}

func (m *memStore) restore(s *memStore) {
	m.items, m.users, m.bookings, m.lines = s.items, s.users, s.bookings, s.lines
	m.nextUser, m.nextBooking = s.nextUser, s.nextBooking
	m.missLookups = s.missLookups
}

// --- bookingsvc.ItemStock ---

func (m *memStore) QuantityForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (int64, error) {
	it, ok := m.items[itemID]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return it.qty, nil
}

func (m *memStore) AdjustQuantity(ctx context.Context, tx pgx.Tx, itemID int64, delta int64) error {
	it, ok := m.items[itemID]
	if !ok {
		return pgx.ErrNoRows
	}
	if it.qty+delta < 0 {
		return errors.New("stock guard violated")
	}
	it.qty += delta
	return nil
}

// --- bookingsvc.Users ---

func (m *memStore) ByEmail(ctx context.Context, tx pgx.Tx, email string) (*model.User, error) {
	if m.missLookups > 0 {
		m.missLookups--
		return nil, pgx.ErrNoRows
	}
	u, ok := m.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &model.User{UserID: u.id, Email: email, FullName: u.fullName}, nil
}

// Insert mirrors ON CONFLICT DO NOTHING: a taken email inserts no row and
// reports pgx.ErrNoRows from the absent RETURNING row.
func (m *memStore) Insert(ctx context.Context, tx pgx.Tx, email, fullName string) (*model.User, error) {
	if _, ok := m.users[email]; ok {
		return nil, pgx.ErrNoRows
	}
	m.nextUser++
	m.users[email] = &memUser{id: m.nextUser, fullName: fullName}
	return &model.User{UserID: m.nextUser, Email: email, FullName: fullName}, nil
}

// --- bookingsvc.Bookings ---

func (m *memStore) InsertBooking(ctx context.Context, tx pgx.Tx, userID int64, pickup, due, purpose string) (int64, error) {
	m.nextBooking++
	m.bookings[m.nextBooking] = &memBooking{
		userID: userID, pickup: pickup, due: due, purpose: purpose,
		status: model.BookingPending,
	}
	return m.nextBooking, nil
}

func (m *memStore) InsertLine(ctx context.Context, tx pgx.Tx, bookingID, itemID, qty int64) error {
	if m.failInsertLine {
		return errors.New("insert line failed")
	}
	m.lines[bookingID] = append(m.lines[bookingID], model.BookingLine{ItemID: itemID, Quantity: qty})
	return nil
}

func (m *memStore) StatusForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (model.BookingStatus, error) {
	b, ok := m.bookings[bookingID]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return b.status, nil
}

func (m *memStore) SetStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error {
	b, ok := m.bookings[bookingID]
	if !ok {
		return pgx.ErrNoRows
	}
	b.status = status
	return nil
}

func (m *memStore) LinesFor(ctx context.Context, tx pgx.Tx, bookingID int64) ([]model.BookingLine, error) {
	return append([]model.BookingLine(nil), m.lines[bookingID]...), nil
}

func (m *memStore) ListForUser(ctx context.Context, email string) ([]model.BookingItemRow, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return m.flatRows(&u.id, false), nil
}

func (m *memStore) ListAll(ctx context.Context) ([]model.BookingItemRow, error) {
	return m.flatRows(nil, true), nil
}

func (m *memStore) flatRows(userID *int64, withUser bool) []model.BookingItemRow {
	ids := make([]int64, 0, len(m.bookings))
	for id := range m.bookings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var out []model.BookingItemRow
	for _, id := range ids {
		b := m.bookings[id]
		if userID != nil && b.userID != *userID {
			continue
		}
		for _, l := range m.lines[id] {
			row := model.BookingItemRow{
				BookingID:  id,
				Status:     string(b.status),
				PickupDate: b.pickup,
				DueDate:    b.due,
				Purpose:    b.purpose,
				ItemName:   m.items[l.ItemID].name,
				Quantity:   l.Quantity,
			}
			if withUser {
				row.UserName = m.userNameByID(b.userID)
			}
			out = append(out, row)
		}
	}
	return out
}

func (m *memStore) userNameByID(id int64) string {
	for email, u := range m.users {
		if u.id == id {
			if u.fullName != "" {
				return u.fullName
			}
			return email
		}
	}
	return ""
}
