package model

type ContactMessage struct {
	DTO
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Subject string `json:"subject"`
	Message string `gorm:"not null" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"isRead"`
}

type CreateContactInput struct {
	Name    string `validate:"required" json:"name"`
	Email   string `validate:"required,email" json:"email"`
	Subject string `json:"subject"`
	Message string `validate:"required" json:"message"`
}
