package itemsvc

import (
	"context"
	"errors"

	"github.com/Thadzy/FIBO-Store/model"
)

type Item = model.Item

var (
	ErrBadInput = errors.New("bad input")
	ErrNotFound = errors.New("item not found")
)

type Repo interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, it *model.Item) (int64, error)
	Update(ctx context.Context, it *model.Item) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Input carries the writable item fields. Unit travels separately from the
// open specifications map and is folded into it before persistence.
type Input struct {
	Name           string
	Category       string
	Description    string
	Quantity       int64
	Unit           string
	Specifications map[string]any
	ImageURL       *string
}

type Service interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, in Input) (int64, error)
	Update(ctx context.Context, id int64, in Input) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Item, error) { return s.r.List(ctx) }

func (s *service) Create(ctx context.Context, in Input) (int64, error) {
	it, err := toItem(0, in)
	if err != nil {
		return 0, err
	}
	return s.r.Create(ctx, it)
}

func (s *service) Update(ctx context.Context, id int64, in Input) error {
	it, err := toItem(id, in)
	if err != nil {
		return err
	}
	ok, err := s.r.Update(ctx, it)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete is idempotent: removing an absent item is not an error.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.r.Delete(ctx, id)
}

func toItem(id int64, in Input) (*model.Item, error) {
	if in.Name == "" || in.Quantity < 0 {
		return nil, ErrBadInput
	}
	if in.Category == "" {
		in.Category = "General"
	}
	specs := make(map[string]any, len(in.Specifications)+1)
	for k, v := range in.Specifications {
		specs[k] = v
	}
	if in.Unit != "" {
		specs["unit"] = in.Unit
	}
	return &model.Item{
		ItemID:            id,
		Name:              in.Name,
		Category:          in.Category,
		Description:       in.Description,
		ImageURL:          in.ImageURL,
		AvailableQuantity: in.Quantity,
		Specifications:    specs,
	}, nil
}
