// Package models holds the typed shapes of everything the backend owns.
// They are read-only projections: the client never mutates them except by
// issuing API calls and re-reading the result.
package models

import "time"

// Roles a user account can hold.
const (
	RoleCustomer = "customer"
	RoleCourier  = "courier"
	RoleStaff    = "staff"
)

// Roles lists every valid account role.
var Roles = []string{RoleCustomer, RoleCourier, RoleStaff}

// User is the authenticated account record.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// AuthResponse is returned by /auth/login and /auth/register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}

// Product is one catalog entry.
type Product struct {
	ID                string  `json:"id" gorm:"primaryKey"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	Image             string  `json:"image,omitempty"`
	CategoryID        string  `json:"category_id" gorm:"index"`
	StoreID           string  `json:"store_id" gorm:"index"`
	InStock           bool    `json:"in_stock"`
	QuantityAvailable int     `json:"quantity_available,omitempty"`
}

// ProductCreate is the staff-side payload for creating a product.
type ProductCreate struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	Image             string  `json:"image,omitempty"`
	CategoryID        string  `json:"category_id"`
	StoreID           string  `json:"store_id"`
	InStock           bool    `json:"in_stock"`
	QuantityAvailable int     `json:"quantity_available,omitempty"`
}

// ProductUpdate carries partial product fields; nil means "leave unchanged".
type ProductUpdate struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	Image             *string  `json:"image,omitempty"`
	CategoryID        *string  `json:"category_id,omitempty"`
	StoreID           *string  `json:"store_id,omitempty"`
	InStock           *bool    `json:"in_stock,omitempty"`
	QuantityAvailable *int     `json:"quantity_available,omitempty"`
}

// Category groups products.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Store is one storefront.
type Store struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

// Order statuses as the backend reports them.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderPreparing  = "preparing"
	OrderReady      = "ready"
	OrderDelivering = "delivering"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists every order status the backend knows.
var OrderStatuses = []string{
	OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
	OrderDelivering, OrderDelivered, OrderCancelled,
}

// Order is a placed order with its line items.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// OrderCreate is the checkout payload.
type OrderCreate struct {
	Items           []OrderCreateItem `json:"items"`
	DeliveryAddress string            `json:"delivery_address,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

// OrderCreateItem references a product by id; the backend resolves name and
// price at placement time.
type OrderCreateItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Analytics is the staff dashboard summary.
type Analytics struct {
	TotalRevenue   float64        `json:"total_revenue"`
	TotalOrders    int            `json:"total_orders"`
	TopProducts    []TopProduct   `json:"top_products"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
}

// TopProduct is one row of the analytics top-sellers list.
type TopProduct struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// Health is the backend liveness response.
type Health struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
