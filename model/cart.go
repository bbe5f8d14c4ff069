package model

type CartItem struct {
	DTO
	CustomerID uint     `gorm:"not null;uniqueIndex:idx_cart_customer_item" json:"customerId"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_cart_customer_item" json:"menuItemId"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID" json:"menuItem"`
	Quantity   int      `gorm:"not null" json:"quantity"`
}

type CartItems []CartItem

type AddToCartInput struct {
	MenuItemID uint `validate:"required,gt=0" json:"menuItemId"`
	Quantity   int  `validate:"required,min=1,max=50" json:"quantity"`
}

type UpdateCartQtyInput struct {
	MenuItemID uint `validate:"required,gt=0" json:"menuItemId"`
	Quantity   int  `validate:"required,min=1,max=50" json:"quantity"`
}

type RemoveCartItemInput struct {
	MenuItemID uint `validate:"required,gt=0" json:"menuItemId"`
}
