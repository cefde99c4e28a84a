package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pacifichome/smarthome-admin/internal/models"
)

// ListedProduct is one row of the paginated product list: the product plus
// its display category and full membership set.
type ListedProduct struct {
	models.Product
	CategoryName string
	CategoryIDs  []int64
}

// CreateProduct inserts the product row and its category links in one
// transaction. categoryIDs must already be normalized (sorted, de-duplicated).
func (s *Store) CreateProduct(ctx context.Context, p *models.Product, categoryIDs []int64) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := verifyCategoryIDs(ctx, tx, categoryIDs); err != nil {
		return 0, err
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := tx.ExecContext(ctx,
		`INSERT INTO products
			(name, sku, price, stock_quantity, description, image_path, images_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.SKU, p.Price, p.StockQuantity, p.Description,
		p.ImagePath, p.ImagesJSON, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertCategoryLinks(ctx, tx, id, categoryIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

// GetProduct fetches one product row and its category membership.
func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, []int64, error) {
	if id <= 0 {
		return nil, nil, ValidationError{"Invalid product ID"}
	}

	var p models.Product
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, sku, price, stock_quantity, description, image_path, images_json, created_at, updated_at
		 FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.StockQuantity, &p.Description,
		&p.ImagePath, &p.ImagesJSON, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, NotFoundError{"Product not found"}
	}
	if err != nil {
		return nil, nil, err
	}

	catIDs, err := s.categoryIDsForProduct(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &p, catIDs, nil
}

// ListProducts returns one page of products plus the unpaginated total.
// A product in several categories still occupies exactly one row: the
// display join is pinned to the product's lowest category ID.
func (s *Store) ListProducts(ctx context.Context, page, perPage int, search string) ([]ListedProduct, int, error) {
	where := ""
	var args []interface{}
	if search != "" {
		where = ` WHERE LOWER(p.name) LIKE LOWER(?)`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products p`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT p.id, p.name, p.sku, p.price, p.stock_quantity, p.description,
			p.image_path, p.images_json, p.created_at, p.updated_at, c.name
		FROM products p
		LEFT JOIN (
			SELECT product_id, MIN(category_id) AS category_id
			FROM product_categories GROUP BY product_id
		) pc ON pc.product_id = p.id
		LEFT JOIN categories c ON c.id = pc.category_id` + where + `
		ORDER BY c.name ASC, p.name ASC
		LIMIT ? OFFSET ?`
	args = append(args, perPage, (page-1)*perPage)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var listed []ListedProduct
	for rows.Next() {
		var lp ListedProduct
		var catName sql.NullString
		if err := rows.Scan(&lp.ID, &lp.Name, &lp.SKU, &lp.Price, &lp.StockQuantity,
			&lp.Description, &lp.ImagePath, &lp.ImagesJSON,
			&lp.CreatedAt, &lp.UpdatedAt, &catName); err != nil {
			return nil, 0, err
		}
		lp.CategoryName = catName.String
		lp.CategoryIDs = []int64{}
		listed = append(listed, lp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := s.fillCategoryIDs(ctx, listed); err != nil {
		return nil, 0, err
	}
	return listed, total, nil
}

// UpdateProduct rewrites every scalar column (full-replace semantics) and
// replaces the category links. The caller is expected to have fetched the
// product first, so a vanished row surfaces as NotFoundError.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product, categoryIDs []int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := verifyCategoryIDs(ctx, tx, categoryIDs); err != nil {
		return err
	}

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM products WHERE id = ?`, p.ID).Scan(&existing)
	if err == sql.ErrNoRows {
		return NotFoundError{"Product not found"}
	}
	if err != nil {
		return err
	}

	p.UpdatedAt = time.Now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET
			name = ?, sku = ?, price = ?, stock_quantity = ?, description = ?,
			image_path = ?, images_json = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.SKU, p.Price, p.StockQuantity, p.Description,
		p.ImagePath, p.ImagesJSON, p.UpdatedAt, p.ID,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM product_categories WHERE product_id = ?`, p.ID); err != nil {
		return err
	}
	if err := insertCategoryLinks(ctx, tx, p.ID, categoryIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteProduct removes the product row and its category links.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFoundError{"Product not found"}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM product_categories WHERE product_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// CountProducts backs the dashboard counter.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (s *Store) categoryIDsForProduct(ctx context.Context, productID int64) ([]int64, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT category_id FROM product_categories WHERE product_id = ? ORDER BY category_id ASC`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// fillCategoryIDs batch-loads the membership sets for one page of products.
func (s *Store) fillCategoryIDs(ctx context.Context, listed []ListedProduct) error {
	if len(listed) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(listed)), ",")
	args := make([]interface{}, len(listed))
	index := make(map[int64]int, len(listed))
	for i := range listed {
		args[i] = listed[i].ID
		index[listed[i].ID] = i
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT product_id, category_id FROM product_categories
		 WHERE product_id IN (`+placeholders+`) ORDER BY category_id ASC`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID, categoryID int64
		if err := rows.Scan(&productID, &categoryID); err != nil {
			return err
		}
		if i, ok := index[productID]; ok {
			listed[i].CategoryIDs = append(listed[i].CategoryIDs, categoryID)
		}
	}
	return rows.Err()
}

// verifyCategoryIDs rejects links to categories that do not exist.
func verifyCategoryIDs(ctx context.Context, tx *sql.Tx, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var found int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE id IN (`+placeholders+`)`, args...,
	).Scan(&found); err != nil {
		return err
	}
	if found != len(ids) {
		return ValidationError{"One or more category IDs do not exist."}
	}
	return nil
}

func insertCategoryLinks(ctx context.Context, tx *sql.Tx, productID int64, categoryIDs []int64) error {
	for _, cid := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)`,
			productID, cid); err != nil {
			return err
		}
	}
	return nil
}
