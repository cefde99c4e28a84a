package models

import "time"

// Category is the model for the 'categories' table. parent_id = 0 marks a
// root category; the forest of roots is what GetCategoryTree returns.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	ParentID  int64     `json:"parent_id" db:"parent_id"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// CategoryNode is one node of the nested tree response. Subcategories is
// always present, an empty slice for leaves, never null.
type CategoryNode struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Subcategories []CategoryNode `json:"subcategories"`
}

// CategoryRef is the {id, name} pair embedded in product detail responses.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// --- API Input Structs ---

type CreateCategoryInput struct {
	Name     string `json:"name"`
	ParentID int64  `json:"parent_id"`
}

type RenameCategoryInput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DeleteCategoryInput struct {
	ID int64 `json:"id"`
}
