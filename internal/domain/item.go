package domain

import (
	"context"
	"time"
)

// Category classifies a listing.
type Category string

const (
	CategoryStationery Category = "stationery"
	CategoryLab        Category = "lab"
	CategoryTech       Category = "tech"
	CategoryBooks      Category = "books"
	CategoryMisc       Category = "misc"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryStationery, CategoryLab, CategoryTech, CategoryBooks, CategoryMisc:
		return true
	}
	return false
}

// Mode is how an item changes hands.
type Mode string

const (
	ModeBuy    Mode = "buy"
	ModeBorrow Mode = "borrow"
	ModeDonate Mode = "donate"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeBuy || m == ModeBorrow || m == ModeDonate
}

// Item is a marketplace listing. Seller fields are a snapshot of the posting
// user at creation time, not a live link. Items are never edited or deleted;
// insertion order is the display order.
type Item struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      Category  `json:"category"`
	Mode          Mode      `json:"mode"`
	Price         float64   `json:"price"`
	Description   string    `json:"description,omitempty"`
	Image         string    `json:"image,omitempty"`
	SellerID      string    `json:"sellerId"`
	SellerName    string    `json:"sellerName"`
	SellerCollege string    `json:"sellerCollege"`
	SellerEmail   string    `json:"sellerEmail"`
	CreatedAt     time.Time `json:"createdAt"`
}

// View selects which slice of the catalog is shown.
type View string

const (
	ViewAll  View = "all"
	ViewFree View = "free" // borrow and donate listings only
)

// ItemFilter is the transient filter state applied to the item list. Zero
// values mean "no restriction" for Search, Category, and Mode; an empty View
// is treated as ViewAll.
type ItemFilter struct {
	Search   string
	Category Category
	Mode     Mode
	View     View
}

// ItemRepository defines persistence operations for the item collection.
type ItemRepository interface {
	List(ctx context.Context) ([]Item, error)
	Append(ctx context.Context, item *Item) error
	ReplaceAll(ctx context.Context, items []Item) error
}
