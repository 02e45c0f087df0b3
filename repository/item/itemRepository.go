package itemrepo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Thadzy/FIBO-Store/model"
	"github.com/Thadzy/FIBO-Store/util/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStockGuard is returned when a decrement would push available_quantity
// below zero, either via the guarded UPDATE or the CHECK constraint.
var ErrStockGuard = errors.New("stock guard violated")

type Repo interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, it *model.Item) (int64, error)
	Update(ctx context.Context, it *model.Item) (bool, error)
	Delete(ctx context.Context, id int64) error

	// Transactional stock ops for the reservation engine. The row is locked
	// by QuantityForUpdate for the rest of the caller's transaction.
	QuantityForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (int64, error)
	AdjustQuantity(ctx context.Context, tx pgx.Tx, itemID int64, delta int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) List(ctx context.Context) ([]model.Item, error) {
	const q = `
		SELECT item_id, name, COALESCE(category,'General'), COALESCE(description,''), image_url,
		       available_quantity, specifications
		FROM items
		ORDER BY item_id ASC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		var specs []byte
		if err := rows.Scan(
			&it.ItemID, &it.Name, &it.Category, &it.Description,
			&it.ImageURL, &it.AvailableQuantity, &specs,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(specs, &it.Specifications); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repo) Create(ctx context.Context, it *model.Item) (int64, error) {
	specs, err := json.Marshal(it.Specifications)
	if err != nil {
		return 0, err
	}
	const q = `
		INSERT INTO items (name, category, description, image_url, available_quantity, specifications)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING item_id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q,
		it.Name, it.Category, it.Description, it.ImageURL, it.AvailableQuantity, specs,
	).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces all scalar fields and specifications. A nil ImageURL keeps
// the stored reference. Returns false when the id does not exist.
func (r *repo) Update(ctx context.Context, it *model.Item) (bool, error) {
	specs, err := json.Marshal(it.Specifications)
	if err != nil {
		return false, err
	}
	const q = `
		UPDATE items
		SET name = $2,
		    category = $3,
		    description = $4,
		    image_url = COALESCE($5, image_url),
		    available_quantity = $6,
		    specifications = $7
		WHERE item_id = $1`
	tag, err := r.db.Pool.Exec(ctx, q,
		it.ItemID, it.Name, it.Category, it.Description, it.ImageURL, it.AvailableQuantity, specs,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, id)
	return err
}

func (r *repo) QuantityForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (int64, error) {
	const q = `
		SELECT available_quantity
		FROM items
		WHERE item_id = $1
		FOR UPDATE`
	var qty int64
	err := tx.QueryRow(ctx, q, itemID).Scan(&qty)
	return qty, err
}

func (r *repo) AdjustQuantity(ctx context.Context, tx pgx.Tx, itemID int64, delta int64) error {
	// Guard: a decrement only applies while enough stock remains. The CHECK
	// constraint on available_quantity backs this up at the schema level.
	const q = `
		UPDATE items
		SET available_quantity = available_quantity + $2
		WHERE item_id = $1
		AND available_quantity + $2 >= 0`
	tag, err := tx.Exec(ctx, q, itemID, delta)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return ErrStockGuard
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		// Zero rows means either the guard tripped or the item is gone; tell
		// the caller which.
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1)`, itemID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		return ErrStockGuard
	}
	return nil
}
