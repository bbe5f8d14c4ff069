package database

import (
	"log"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456nh"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456nh"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, Active: true, Role: constants.ROLE_ADMIN},
	}

	for _, account := range accounts {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	categories := []model.Category{
		{Name: "Khai vị", Description: "Appetizers"},
		{Name: "Món chính", Description: "Main courses"},
		{Name: "Tráng miệng", Description: "Desserts"},
		{Name: "Đồ uống", Description: "Beverages"},
	}
	for _, category := range categories {
		category.Slug = slug.Make(category.Name)
		if err := db.Where(model.Category{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed data for category:", category.Name, "error:", err)
		}
	}
}
