package model

type Category struct {
	DTO
	Name        string     `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Description string     `json:"description"`
	MenuItems   []MenuItem `gorm:"foreignKey:CategoryId" json:"menuItems,omitempty"`
}

type MenuItem struct {
	DTO
	Name        string   `gorm:"not null" validate:"required" json:"name"`
	Slug        string   `gorm:"uniqueIndex" json:"slug"`
	Description string   `json:"description"`
	Price       float64  `gorm:"not null" validate:"required,gt=0" json:"price"`
	ImageUrl    *string  `json:"imageUrl"`
	Available   bool     `gorm:"default:true" json:"available"`
	CategoryId  uint     `json:"categoryId"`
	Category    Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:CategoryId" json:"category"`
}

type CreateMenuItemInput struct {
	Name        string  `validate:"required" json:"name"`
	Description string  `json:"description"`
	Price       float64 `validate:"required,gt=0" json:"price"`
	CategoryId  uint    `validate:"required,gt=0" json:"categoryId"`
}

type EditMenuItemInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	CategoryId  *uint    `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	Available   *bool    `json:"available,omitempty"`
}

type FilterMenuItem struct {
	Pagination
	CategoryId uint   `json:"categoryId" query:"categoryId" validate:"omitempty,gt=0"`
	SearchKey  string `json:"searchKey" query:"searchKey"`
	Available  *bool  `json:"available" query:"available"`
}
