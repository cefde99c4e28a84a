package models

// UnresolvedContact is one customer order awaiting a follow-up call.
type UnresolvedContact struct {
	OrderID       int64  `json:"order_id"`
	OrderDate     string `json:"order_date"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// DashboardStats holds the admin panel counters.
type DashboardStats struct {
	TotalProducts     int `json:"total_products"`
	NewCustomers      int `json:"new_customers"`
	UnresolvedTickets int `json:"unresolved_tickets"`
}
