package database

import "database/sql"

// Migrate creates every table the API touches. Statements are idempotent so
// the command can be re-run on an existing database.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) NOT NULL,
			parent_id BIGINT NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE KEY uq_categories_name_parent (name, parent_id)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			sku VARCHAR(100) NOT NULL DEFAULT '',
			price DECIMAL(16,2) NOT NULL DEFAULT 0,
			stock_quantity INT NOT NULL DEFAULT 0,
			description TEXT,
			image_path VARCHAR(255) NOT NULL DEFAULT '',
			images_json TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS product_categories (
			product_id BIGINT NOT NULL,
			category_id BIGINT NOT NULL,
			PRIMARY KEY (product_id, category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'admin',
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS videos (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			url VARCHAR(255) NOT NULL,
			thm VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_date DATETIME NOT NULL,
			customer_name VARCHAR(255),
			customer_phone VARCHAR(50),
			contacted TINYINT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity INT NOT NULL DEFAULT 1
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
