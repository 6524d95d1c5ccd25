package domain

import "time"

// Product представляет парфюм в каталоге
type Product struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Name     string `json:"name" bson:"name"`
	Brand    string `json:"brand" bson:"brand"`
	Price    int64  `json:"price" bson:"price"` // в минорных единицах валюты
	Category string `json:"category" bson:"category"`
	Size     string `json:"size" bson:"size"`
	Gender   string `json:"gender" bson:"gender"`
	Stock    int64  `json:"stock" bson:"stock"`
	Rating   int    `json:"rating" bson:"rating"`
	Notes    string `json:"notes" bson:"notes"`
	ImageURL string `json:"image_url" bson:"image_url"`
}

// CartLine позиция корзины: снапшот имени и цены на момент добавления
type CartLine struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Name      string `json:"name" bson:"name"`
	Price     int64  `json:"price" bson:"price"`
	Quantity  int64  `json:"quantity" bson:"quantity"`
}

// CartLineView позиция корзины, разрешённая по актуальному каталогу
type CartLineView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Total     int64  `json:"total"`
}

// CartView корзина для отображения: разрешённые позиции, устаревшие позиции и итог.
// Stale содержит позиции, чей товар больше не находится в каталоге; в итог они не входят.
type CartView struct {
	Lines      []CartLineView `json:"lines"`
	Stale      []CartLine     `json:"stale,omitempty"`
	TotalPrice int64          `json:"total_price"`
}

// Address почтовый адрес покупателя
type Address struct {
	Street string `json:"street" bson:"street"`
	City   string `json:"city" bson:"city"`
	State  string `json:"state" bson:"state"`
	Zip    string `json:"zip" bson:"zip"`
}

// Customer покупатель. Phone используется как общий секрет при входе —
// схема унаследована от исходных данных и намеренно не объединена с админской.
type Customer struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"-" bson:"phone"`
	Address       Address   `json:"address" bson:"address"`
	LoyaltyPoints int64     `json:"loyalty_points" bson:"loyalty_points"`
	RegisteredAt  time.Time `json:"registration_date" bson:"registration_date"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidStatus проверяет, что значение входит в известный набор статусов
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Order заказ, создаётся один раз при чекауте; после создания меняется только статус
type Order struct {
	ID             string      `json:"id" bson:"_id,omitempty"`
	CustomerID     string      `json:"customer_id" bson:"customer_id"`
	Lines          []CartLine  `json:"products" bson:"products"`
	TotalPrice     int64       `json:"total_price" bson:"total_price"`
	OrderDate      time.Time   `json:"order_date" bson:"order_date"`
	Status         OrderStatus `json:"status" bson:"status"`
	IdempotencyKey string      `json:"-" bson:"idempotency_key,omitempty"`
}

// Review отзыв покупателя о товаре
type Review struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ProductID  string    `json:"product_id" bson:"product_id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	ReviewDate time.Time `json:"review_date" bson:"review_date"`
}

// AdminUser учётная запись админки, пароль хранится как bcrypt-хэш
type AdminUser struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"password"`
}
