// service/item/item_service_test.go
package itemsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Thadzy/FIBO-Store/model"
	itemsvc "github.com/Thadzy/FIBO-Store/service/item"
)

type repoMock struct {
	listFn   func(ctx context.Context) ([]model.Item, error)
	createFn func(ctx context.Context, it *model.Item) (int64, error)
	updateFn func(ctx context.Context, it *model.Item) (bool, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *repoMock) List(ctx context.Context) ([]model.Item, error) { return m.listFn(ctx) }
func (m *repoMock) Create(ctx context.Context, it *model.Item) (int64, error) {
	return m.createFn(ctx, it)
}
func (m *repoMock) Update(ctx context.Context, it *model.Item) (bool, error) {
	return m.updateFn(ctx, it)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func TestCreate_Validation(t *testing.T) {
	s := itemsvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), itemsvc.Input{Name: "", Quantity: 1}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.Create(context.Background(), itemsvc.Input{Name: "Oscilloscope", Quantity: -1}); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestCreate_MergesUnitIntoSpecs(t *testing.T) {
	var got *model.Item
	m := &repoMock{
		createFn: func(ctx context.Context, it *model.Item) (int64, error) {
			got = it
			return 7, nil
		},
	}
	s := itemsvc.New(m)

	id, err := s.Create(context.Background(), itemsvc.Input{
		Name:           "Resistor 10k",
		Quantity:       100,
		Unit:           "pcs",
		Specifications: map[string]any{"tolerance": "5%"},
	})
	if err != nil || id != 7 {
		t.Fatalf("got id=%v err=%v; want 7 nil", id, err)
	}
	if got.Specifications["unit"] != "pcs" {
		t.Fatalf("unit not merged into specifications: %v", got.Specifications)
	}
	if got.Specifications["tolerance"] != "5%" {
		t.Fatalf("existing attribute lost: %v", got.Specifications)
	}
	if got.Category != "General" {
		t.Fatalf("category default: got %q, want General", got.Category)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, it *model.Item) (bool, error) { return false, nil },
	}
	s := itemsvc.New(m)

	err := s.Update(context.Background(), 99, itemsvc.Input{Name: "x", Quantity: 1})
	if !errors.Is(err, itemsvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	calls := 0
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) error { calls++; return nil },
	}
	s := itemsvc.New(m)

	if err := s.Delete(context.Background(), 5); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.Delete(context.Background(), 5); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if calls != 2 {
		t.Fatalf("delete calls = %d; want 2", calls)
	}
}
