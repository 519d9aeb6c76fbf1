package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/campus-market/internal/domain"
)

// CatalogService owns the append-only item list and derives the visible
// subset from the current filter state.
type CatalogService struct {
	items domain.ItemRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(items domain.ItemRepository) *CatalogService {
	return &CatalogService{items: items}
}

// AddItemInput carries the raw listing fields submitted by a seller.
type AddItemInput struct {
	Name        string
	Category    domain.Category
	Mode        domain.Mode
	Price       float64
	Description string
	Image       string
}

// AddItem validates the input, snapshots the poster's identity, appends the
// listing, and returns it. Only users with the dual buyer/seller role may
// post. Donated items are always stored with price 0.
func (s *CatalogService) AddItem(ctx context.Context, input AddItemInput, poster *domain.User) (*domain.Item, error) {
	if poster == nil || poster.Role != domain.RoleBoth {
		return nil, domain.ErrNotSeller
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if input.Category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, input.Category)
	}
	if input.Mode == "" {
		return nil, fmt.Errorf("%w: mode is required", domain.ErrInvalidInput)
	}
	if !input.Mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, input.Mode)
	}

	price := input.Price
	if input.Mode == domain.ModeDonate {
		price = 0
	} else if price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	item := &domain.Item{
		ID:            itemID(now, 0),
		Name:          name,
		Category:      input.Category,
		Mode:          input.Mode,
		Price:         price,
		Description:   input.Description,
		Image:         input.Image,
		SellerID:      poster.ID,
		SellerName:    poster.Name,
		SellerCollege: poster.College,
		SellerEmail:   poster.Email,
		CreatedAt:     now,
	}

	if err := s.items.Append(ctx, item); err != nil {
		return nil, fmt.Errorf("append item: %w", err)
	}

	return item, nil
}

// Query loads the item collection and returns the subset visible under the
// filter, in insertion order.
func (s *CatalogService) Query(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return Visible(items, filter), nil
}

// Visible returns the items matching the filter, preserving input order. It
// is a pure function: same inputs, same output, no caching. An item is
// included only when all four predicates hold: the search term is a
// case-insensitive substring of the name or description (empty term matches
// everything), the category and mode selectors are empty or equal, and the
// view is "all" or the item is a borrow/donate listing under "free".
func Visible(items []domain.Item, filter domain.ItemFilter) []domain.Item {
	term := strings.ToLower(filter.Search)

	visible := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if term != "" &&
			!strings.Contains(strings.ToLower(item.Name), term) &&
			!strings.Contains(strings.ToLower(item.Description), term) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Mode != "" && item.Mode != filter.Mode {
			continue
		}
		if filter.View == domain.ViewFree && item.Mode != domain.ModeBorrow && item.Mode != domain.ModeDonate {
			continue
		}
		visible = append(visible, item)
	}
	return visible
}

// SeedIfEmpty initializes an empty catalog with the starter listings. Once
// any item exists it is a no-op; it does not deduplicate against the starter
// set.
func (s *CatalogService) SeedIfEmpty(ctx context.Context) error {
	existing, err := s.items.List(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	seeded := make([]domain.Item, len(starterItems))
	for i, item := range starterItems {
		item.ID = itemID(now, i)
		item.CreatedAt = now
		seeded[i] = item
	}

	if err := s.items.ReplaceAll(ctx, seeded); err != nil {
		return fmt.Errorf("seed items: %w", err)
	}
	return nil
}

// itemID derives a creation-ordered identifier from the timestamp. The offset
// keeps ids distinct when several items share one timestamp, as in seeding.
func itemID(t time.Time, offset int) string {
	return strconv.FormatInt(t.UnixNano()+int64(offset), 10)
}

var starterItems = []domain.Item{
	{
		Name:          "Scientific Calculator",
		Category:      domain.CategoryTech,
		Mode:          domain.ModeBuy,
		Price:         450,
		Description:   "Casio FX-991ES Plus, lightly used, all keys working.",
		SellerID:      "starter",
		SellerName:    "Campus Market Team",
		SellerCollege: "Student Affairs",
		SellerEmail:   "team@campusmarket.example",
	},
	{
		Name:          "Lab Coat",
		Category:      domain.CategoryLab,
		Mode:          domain.ModeDonate,
		Price:         0,
		Description:   "Size M white coat, good condition, free to a new owner.",
		SellerID:      "starter",
		SellerName:    "Campus Market Team",
		SellerCollege: "Student Affairs",
		SellerEmail:   "team@campusmarket.example",
	},
	{
		Name:          "Organic Chemistry Textbook",
		Category:      domain.CategoryBooks,
		Mode:          domain.ModeBorrow,
		Price:         50,
		Description:   "Clayden, 2nd edition. Lent out for the semester.",
		SellerID:      "starter",
		SellerName:    "Campus Market Team",
		SellerCollege: "Student Affairs",
		SellerEmail:   "team@campusmarket.example",
	},
	{
		Name:          "Notebook Set",
		Category:      domain.CategoryStationery,
		Mode:          domain.ModeBuy,
		Price:         120,
		Description:   "Five ruled notebooks, 200 pages each, shrink-wrapped.",
		SellerID:      "starter",
		SellerName:    "Campus Market Team",
		SellerCollege: "Student Affairs",
		SellerEmail:   "team@campusmarket.example",
	},
}
