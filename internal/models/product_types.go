package models

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table. Category membership lives in
// the product_categories join table, not on this row.
type Product struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	SKU           string          `json:"sku" db:"sku"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	Description   string          `json:"description" db:"description"`
	ImagePath     string          `json:"image_path" db:"image_path"`
	ImagesJSON    string          `json:"-" db:"images_json"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// ImageEntry is one sub-image descriptor from images_json. Current rows store
// a plain JSON array of filenames; older rows store [{src, is_main}] objects.
type ImageEntry struct {
	Src    string `json:"src"`
	IsMain bool   `json:"is_main"`
}

// ParseImagesJSON decodes images_json from either era into a uniform slice.
// Malformed or empty input yields an empty slice.
func ParseImagesJSON(raw string) []ImageEntry {
	if raw == "" {
		return []ImageEntry{}
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err == nil {
		entries := make([]ImageEntry, 0, len(names))
		for _, n := range names {
			if n != "" {
				entries = append(entries, ImageEntry{Src: n})
			}
		}
		return entries
	}

	var entries []ImageEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []ImageEntry{}
	}
	out := make([]ImageEntry, 0, len(entries))
	for _, e := range entries {
		if e.Src != "" {
			out = append(out, e)
		}
	}
	return out
}

// EncodeImagesJSON serializes sub-image filenames in the current format.
func EncodeImagesJSON(names []string) string {
	if names == nil {
		names = []string{}
	}
	b, _ := json.Marshal(names)
	return string(b)
}

// NormalizeCategoryIDs returns the numerically sorted, duplicate-free form of
// the input set. A nil input normalizes to an empty slice.
func NormalizeCategoryIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- API Input Structs ---

// ProductPayload is the JSON carried in the multipart "data" field for both
// create and update. Pointers give presence semantics: a field counts as
// supplied even when its value is zero, matching the required-field checks.
type ProductPayload struct {
	ID            int64    `json:"id"`
	Name          *string  `json:"name" validate:"required"`
	SKU           *string  `json:"sku"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"required,gte=0"`
	CategoryIDs   *[]int64 `json:"category_ids" validate:"required"`
	Description   *string  `json:"description" validate:"required"`
}

// ListProductsInput is the optional JSON body accepted by the list endpoint
// when called via POST.
type ListProductsInput struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Search  string `json:"search"`
}

// ProductListRow is one row of the paginated product list.
type ProductListRow struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
	CategoryName  string  `json:"category_name"`
	CategoryIDs   []int64 `json:"category_ids"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ProductDetail is the object returned by GetProduct.
type ProductDetail struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	SKU           string        `json:"sku"`
	Price         float64       `json:"price"`
	StockQuantity int           `json:"stock_quantity"`
	Description   string        `json:"description"`
	MainImage     string        `json:"main_image"`
	SubImages     []string      `json:"sub_images"`
	Categories    []CategoryRef `json:"categories"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}
