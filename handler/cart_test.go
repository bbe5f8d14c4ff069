package handler_test

import (
	"testing"

	"restaurant_manager/database"
	"restaurant_manager/model"
)

func TestAddToCartAccumulates(t *testing.T) {
	app := setupApp(t)
	customer, token := createCustomer(t, "gio@example.com")
	item := seedMenuItem(t, "Phở gà", 9.50)

	body := map[string]any{"menuItemId": item.ID, "quantity": 2}
	resp, _ := doJSON(t, app, "POST", "/api/v1/cart", body, token)
	if resp.StatusCode != 200 {
		t.Fatalf("thêm giỏ: status %d", resp.StatusCode)
	}

	// Thêm lần nữa: cộng dồn, không tạo dòng mới
	body["quantity"] = 3
	_, payload := doJSON(t, app, "POST", "/api/v1/cart", body, token)

	var line model.CartItem
	if err := database.DB.Where("customer_id = ? AND menu_item_id = ?", customer.ID, item.ID).
		First(&line).Error; err != nil {
		t.Fatalf("dòng giỏ: %v", err)
	}
	if line.Quantity != 5 {
		t.Fatalf("số lượng phải cộng dồn thành 5, được %d", line.Quantity)
	}

	var count int64
	database.DB.Model(&model.CartItem{}).Where("customer_id = ?", customer.ID).Count(&count)
	if count != 1 {
		t.Fatalf("chỉ được 1 dòng cho mỗi món, có %d", count)
	}

	data := dataMap(t, payload)
	if got := data["subtotal"].(float64); got != 47.50 {
		t.Fatalf("subtotal phải là 47.50, được %v", got)
	}
}

func TestAddUnavailableItemRejected(t *testing.T) {
	app := setupApp(t)
	_, token := createCustomer(t, "ngungban@example.com")
	item := seedMenuItem(t, "Món hết", 5.00)
	database.DB.Model(&model.MenuItem{}).Where("id = ?", item.ID).Update("available", false)

	resp, _ := doJSON(t, app, "POST", "/api/v1/cart",
		map[string]any{"menuItemId": item.ID, "quantity": 1}, token)
	if resp.StatusCode != 400 {
		t.Fatalf("món ngừng bán phải trả 400, được %d", resp.StatusCode)
	}
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	app := setupApp(t)
	customer, token := createCustomer(t, "sua@example.com")
	item := seedMenuItem(t, "Bò kho", 12.00)
	addToCart(t, customer.ID, item.ID, 2)

	resp, payload := doJSON(t, app, "PUT", "/api/v1/cart",
		map[string]any{"menuItemId": item.ID, "quantity": 4}, token)
	if resp.StatusCode != 200 {
		t.Fatalf("sửa số lượng: status %d", resp.StatusCode)
	}
	if got := dataMap(t, payload)["subtotal"].(float64); got != 48.00 {
		t.Fatalf("subtotal phải là 48.00, được %v", got)
	}

	resp, _ = doJSON(t, app, "DELETE", "/api/v1/cart/item",
		map[string]any{"menuItemId": item.ID}, token)
	if resp.StatusCode != 200 {
		t.Fatalf("xoá món khỏi giỏ: status %d", resp.StatusCode)
	}

	// Sửa món không còn trong giỏ
	resp, _ = doJSON(t, app, "PUT", "/api/v1/cart",
		map[string]any{"menuItemId": item.ID, "quantity": 1}, token)
	if resp.StatusCode != 404 {
		t.Fatalf("món không trong giỏ phải trả 404, được %d", resp.StatusCode)
	}
}

func TestClearCart(t *testing.T) {
	app := setupApp(t)
	customer, token := createCustomer(t, "xoahet@example.com")
	addToCart(t, customer.ID, seedMenuItem(t, "Món 1", 3.00).ID, 1)
	addToCart(t, customer.ID, seedMenuItem(t, "Món 2", 4.00).ID, 2)

	resp, payload := doJSON(t, app, "DELETE", "/api/v1/cart", nil, token)
	if resp.StatusCode != 200 {
		t.Fatalf("dọn giỏ: status %d", resp.StatusCode)
	}
	if got := dataMap(t, payload)["subtotal"].(float64); got != 0 {
		t.Fatalf("subtotal sau khi dọn phải là 0, được %v", got)
	}
}

func TestCartRequiresLogin(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/v1/cart", nil, "")
	if resp.StatusCode != 401 {
		t.Fatalf("chưa đăng nhập phải trả 401, được %d", resp.StatusCode)
	}
}
