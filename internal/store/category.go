package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/pacifichome/smarthome-admin/internal/models"
)

const maxCategoryNameLen = 100

// CreateCategory inserts a new category and returns its ID. parentID = 0
// creates a root category.
func (s *Store) CreateCategory(ctx context.Context, name string, parentID int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ValidationError{"Category name is required."}
	}
	if len(name) > maxCategoryNameLen {
		return 0, ValidationError{"Category name is too long (max 100 characters)."}
	}
	if parentID < 0 {
		return 0, ValidationError{"Invalid parent category ID."}
	}

	// No two siblings may share a name.
	var existingID int64
	err := s.DB.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = ? AND parent_id = ?`, name, parentID,
	).Scan(&existingID)
	switch {
	case err == nil:
		return 0, ConflictError{fmt.Sprintf("Category '%s' already exists under this parent.", name)}
	case err != sql.ErrNoRows:
		return 0, err
	}

	if parentID > 0 {
		var parent int64
		err := s.DB.QueryRowContext(ctx,
			`SELECT id FROM categories WHERE id = ?`, parentID,
		).Scan(&parent)
		if err == sql.ErrNoRows {
			return 0, NotFoundError{"Invalid parent category ID."}
		}
		if err != nil {
			return 0, err
		}
	}

	now := time.Now()
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO categories (name, slug, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		name, slug.Make(name), parentID, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RenameCategory updates a category's name in place. It deliberately does not
// re-check the sibling-uniqueness rule; the unique key on (name, parent_id)
// is the only guard on rename.
func (s *Store) RenameCategory(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if id <= 0 || name == "" {
		return ValidationError{"Invalid input. ID and name are required."}
	}
	if len(name) > maxCategoryNameLen {
		return ValidationError{"Category name is too long (max 100 characters)."}
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE categories SET name = ?, slug = ?, updated_at = ? WHERE id = ?`,
		name, slug.Make(name), time.Now(), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFoundError{"Category not found."}
	}
	return nil
}

// DeleteCategory removes a category. Deletion is rejected, never cascaded,
// while the category has children or is assigned to any product.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return ValidationError{"Invalid category ID"}
	}

	var existing int64
	err := s.DB.QueryRowContext(ctx, `SELECT id FROM categories WHERE id = ?`, id).Scan(&existing)
	if err == sql.ErrNoRows {
		return NotFoundError{"Category not found"}
	}
	if err != nil {
		return err
	}

	var children int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE parent_id = ?`, id,
	).Scan(&children); err != nil {
		return err
	}
	if children > 0 {
		return ConflictError{"Cannot delete category with subcategories. Please delete subcategories first."}
	}

	var assigned int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_categories WHERE category_id = ?`, id,
	).Scan(&assigned); err != nil {
		return err
	}
	if assigned > 0 {
		return ConflictError{"Cannot delete category that is assigned to products. Please remove the category from products first."}
	}

	_, err = s.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

// CategoryTree returns the full category forest. One bulk fetch, then an
// in-memory parent index; no per-node queries.
func (s *Store) CategoryTree(ctx context.Context) ([]models.CategoryNode, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, slug, parent_id FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type flatCat struct {
		node     models.CategoryNode
		parentID int64
	}
	var flat []flatCat
	for rows.Next() {
		var fc flatCat
		if err := rows.Scan(&fc.node.ID, &fc.node.Name, &fc.node.Slug, &fc.parentID); err != nil {
			return nil, err
		}
		fc.node.Subcategories = []models.CategoryNode{}
		flat = append(flat, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	children := make(map[int64][]int, len(flat))
	for i, fc := range flat {
		children[fc.parentID] = append(children[fc.parentID], i)
	}

	// Attach depth-first so each node's subtree is complete before the node
	// itself is appended to its parent.
	var build func(parentID int64) []models.CategoryNode
	build = func(parentID int64) []models.CategoryNode {
		nodes := []models.CategoryNode{}
		for _, idx := range children[parentID] {
			node := flat[idx].node
			node.Subcategories = build(node.ID)
			nodes = append(nodes, node)
		}
		return nodes
	}

	return build(0), nil
}

// CategoriesByIDs resolves category IDs into {id, name} pairs. IDs with no
// matching row are silently omitted.
func (s *Store) CategoriesByIDs(ctx context.Context, ids []int64) ([]models.CategoryRef, error) {
	refs := []models.CategoryRef{}
	if len(ids) == 0 {
		return refs, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name FROM categories WHERE id IN (`+placeholders+`) ORDER BY id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ref models.CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
