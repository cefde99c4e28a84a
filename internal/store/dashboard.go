package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pacifichome/smarthome-admin/internal/models"
)

// DashboardStats gathers the admin panel counters: catalog size, orders
// placed in the last 30 days, and orders still awaiting a follow-up call.
func (s *Store) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	total, err := s.CountProducts(ctx)
	if err != nil {
		return stats, err
	}
	stats.TotalProducts = total

	cutoff := time.Now().AddDate(0, 0, -30)
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE order_date > ?`, cutoff,
	).Scan(&stats.NewCustomers); err != nil {
		return stats, err
	}

	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE contacted = 0`,
	).Scan(&stats.UnresolvedTickets); err != nil {
		return stats, err
	}

	return stats, nil
}

// UnresolvedContacts lists every uncontacted order that has at least one
// item, newest first.
func (s *Store) UnresolvedContacts(ctx context.Context) ([]models.UnresolvedContact, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT o.id, o.order_date, o.customer_name, o.customer_phone
		 FROM orders o
		 INNER JOIN order_items oi ON o.id = oi.order_id
		 WHERE o.contacted = 0
		 GROUP BY o.id, o.order_date, o.customer_name, o.customer_phone
		 ORDER BY o.order_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.UnresolvedContact{}
	for rows.Next() {
		var c models.UnresolvedContact
		var orderDate time.Time
		var name, phone sql.NullString
		if err := rows.Scan(&c.OrderID, &orderDate, &name, &phone); err != nil {
			return nil, err
		}
		c.OrderDate = orderDate.Format(timeLayout)
		c.CustomerName = "Unknown"
		if name.Valid && name.String != "" {
			c.CustomerName = name.String
		}
		c.CustomerPhone = "N/A"
		if phone.Valid && phone.String != "" {
			c.CustomerPhone = phone.String
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// MarkContacted flips the follow-up flag and reports whether a row actually
// changed; an already-contacted or unknown order yields false.
func (s *Store) MarkContacted(ctx context.Context, orderID int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE orders SET contacted = 1 WHERE id = ? AND contacted = 0`, orderID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
