package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/router"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("mở sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New()
	router.SetupRoutes(app)
	return app
}

func createCustomer(t *testing.T, email string) (model.Customer, string) {
	t.Helper()

	hash, err := helper.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	customer := model.Customer{
		Email:    email,
		Phone:    "09" + fmt.Sprintf("%08d", len(email)),
		Password: hash,
		UserName: email,
		IsActive: true,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		t.Fatalf("tạo customer: %v", err)
	}

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		CustomerId: customer.ID,
		Username:   customer.UserName,
	})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return customer, token
}

func createAccount(t *testing.T, username, role string) (model.Account, string) {
	t.Helper()

	hash, err := helper.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	account := model.Account{
		Username: username,
		Password: hash,
		Active:   true,
		Role:     role,
	}
	if err := database.DB.Create(&account).Error; err != nil {
		t.Fatalf("tạo account: %v", err)
	}

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
	})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return account, token
}

func seedMenuItem(t *testing.T, name string, price float64) model.MenuItem {
	t.Helper()

	var category model.Category
	if err := database.DB.Where(model.Category{Name: "Món chính"}).
		Attrs(model.Category{Slug: "mon-chinh"}).
		FirstOrCreate(&category).Error; err != nil {
		t.Fatalf("tạo category: %v", err)
	}

	item := model.MenuItem{
		Name:       name,
		Slug:       helper.GenerateUniqueMenuSlug(database.DB, name),
		Price:      price,
		Available:  true,
		CategoryId: category.ID,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		t.Fatalf("tạo món: %v", err)
	}
	return item
}

func doJSON(t *testing.T, app *fiber.App, method, url string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}

	var payload map[string]any
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("%s %s: body không phải JSON: %s", method, url, raw)
		}
	}
	return resp, payload
}

func dataMap(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("response thiếu data object: %v", payload)
	}
	return data
}
