package model

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Thứ tự pipeline: chỉ cho phép đi tới, không đi lùi
var orderStatusRank = map[OrderStatus]int{
	OrderPending:   0,
	OrderConfirmed: 1,
	OrderPreparing: 2,
	OrderReady:     3,
	OrderDelivered: 4,
}

func IsOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo: tiến về phía trước trong pipeline, hoặc huỷ khi chưa giao
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == OrderCancelled || s == OrderDelivered {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	nextRank, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return nextRank > orderStatusRank[s]
}

// StatusMessage thông điệp gửi cho khách theo trạng thái mới
func (s OrderStatus) StatusMessage() string {
	switch s {
	case OrderConfirmed:
		return "Your order has been confirmed and sent to the kitchen."
	case OrderPreparing:
		return "Our chefs are preparing your order."
	case OrderReady:
		return "Your order is ready for pickup or delivery."
	case OrderDelivered:
		return "Your order has been delivered. Enjoy your meal!"
	case OrderCancelled:
		return "Your order has been cancelled."
	default:
		return "Your order has been received and is awaiting confirmation."
	}
}

type Order struct {
	DTO
	PublicCode          string      `gorm:"unique;size:20" json:"publicCode"` // Mã đơn công khai (ORD-XXXXXX)
	CustomerID          uint        `gorm:"not null" json:"customerId"`
	Customer            Customer    `gorm:"foreignKey:CustomerID" json:"customer"`
	TotalAmount         float64     `json:"totalAmount"`
	DeliveryAddress     string      `gorm:"not null" json:"deliveryAddress"`
	Phone               string      `gorm:"not null" json:"phone"`
	SpecialInstructions string      `json:"specialInstructions"`
	Status              OrderStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Items               []OrderItem `gorm:"foreignKey:OrderId" json:"items"`
}

type Orders []Order

type OrderItem struct {
	DTO
	OrderId    uint     `gorm:"not null" json:"orderId"`
	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID" json:"menuItem"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	Price      float64  `gorm:"not null" json:"price"` // Giá chốt tại thời điểm đặt
}

type CheckoutInput struct {
	DeliveryAddress     string `validate:"required" json:"deliveryAddress"`
	Phone               string `validate:"required" json:"phone"`
	SpecialInstructions string `json:"specialInstructions"`
}

type UpdateOrderStatusInput struct {
	Status    string `validate:"required,oneof=PENDING CONFIRMED PREPARING READY DELIVERED CANCELLED" json:"status"`
	OldStatus string `validate:"required,oneof=PENDING CONFIRMED PREPARING READY DELIVERED CANCELLED" json:"oldStatus"`
}

type FilterOrder struct {
	Pagination
	Status    string `json:"status" query:"status" validate:"omitempty,oneof=PENDING CONFIRMED PREPARING READY DELIVERED CANCELLED"`
	SearchKey string `json:"searchKey" query:"searchKey"`
}
