package handler_test

import (
	"strconv"
	"testing"

	"restaurant_manager/database"
	"restaurant_manager/model"
)

func TestMenuCRUDByAdmin(t *testing.T) {
	app := setupApp(t)
	_, adminToken := createAccount(t, "quantri1", "ADMIN")

	resp, payload := doJSON(t, app, "POST", "/api/v1/menu/categories",
		map[string]any{"name": "Đồ uống"}, adminToken)
	if resp.StatusCode != 201 {
		t.Fatalf("tạo danh mục: status %d", resp.StatusCode)
	}
	categoryId := dataMap(t, payload)["id"].(float64)
	if dataMap(t, payload)["slug"] != "do-uong" {
		t.Fatalf("slug danh mục sai: %v", dataMap(t, payload)["slug"])
	}

	resp, payload = doJSON(t, app, "POST", "/api/v1/menu",
		map[string]any{"name": "Trà đá", "price": 1.50, "categoryId": categoryId}, adminToken)
	if resp.StatusCode != 201 {
		t.Fatalf("tạo món: status %d: %v", resp.StatusCode, payload)
	}
	itemId := dataMap(t, payload)["id"].(float64)
	slug := dataMap(t, payload)["slug"].(string)
	if slug != "tra-da" {
		t.Fatalf("slug món sai: %s", slug)
	}

	// Tên trùng sinh slug có hậu tố
	resp, payload = doJSON(t, app, "POST", "/api/v1/menu",
		map[string]any{"name": "Trà đá", "price": 2.00, "categoryId": categoryId}, adminToken)
	if resp.StatusCode != 201 || dataMap(t, payload)["slug"] != "tra-da-1" {
		t.Fatalf("slug trùng phải có hậu tố: %d %v", resp.StatusCode, payload)
	}

	// Tra cứu công khai theo slug
	resp, payload = doJSON(t, app, "GET", "/api/v1/menu/tra-da", nil, "")
	if resp.StatusCode != 200 || dataMap(t, payload)["name"] != "Trà đá" {
		t.Fatalf("tra cứu slug: %d %v", resp.StatusCode, payload)
	}
	resp, _ = doJSON(t, app, "GET", "/api/v1/menu/khong-ton-tai", nil, "")
	if resp.StatusCode != 404 {
		t.Fatalf("slug lạ phải trả 404, được %d", resp.StatusCode)
	}

	// Sửa giá + ngừng bán
	resp, payload = doJSON(t, app, "PUT", "/api/v1/menu/"+itoa(itemId),
		map[string]any{"price": 1.75, "available": false}, adminToken)
	if resp.StatusCode != 200 {
		t.Fatalf("sửa món: status %d", resp.StatusCode)
	}
	data := dataMap(t, payload)
	if data["price"].(float64) != 1.75 || data["available"] != false {
		t.Fatalf("sửa món không ăn: %v", data)
	}

	// Danh mục không tồn tại
	resp, _ = doJSON(t, app, "POST", "/api/v1/menu",
		map[string]any{"name": "Món lạc", "price": 3.0, "categoryId": 9999}, adminToken)
	if resp.StatusCode != 400 {
		t.Fatalf("danh mục lạ phải trả 400, được %d", resp.StatusCode)
	}
}

func TestMenuAdminRoutesRequireAdmin(t *testing.T) {
	app := setupApp(t)
	_, staffToken := createAccount(t, "nhanvien6", "STAFF")

	resp, _ := doJSON(t, app, "POST", "/api/v1/menu",
		map[string]any{"name": "Món cấm", "price": 1.0, "categoryId": 1}, staffToken)
	if resp.StatusCode != 403 {
		t.Fatalf("staff tạo món phải bị 403, được %d", resp.StatusCode)
	}
}

func TestGetMenuItemsFilter(t *testing.T) {
	app := setupApp(t)

	pho := seedMenuItem(t, "Phở đặc biệt", 11.00)
	seedMenuItem(t, "Cà phê sữa", 2.50)
	database.DB.Model(&model.MenuItem{}).Where("id = ?", pho.ID).Update("available", false)

	resp, payload := doJSON(t, app, "GET", "/api/v1/menu/?available=true", nil, "")
	if resp.StatusCode != 200 {
		t.Fatalf("lọc menu: status %d", resp.StatusCode)
	}
	data := dataMap(t, payload)
	rows := data["rows"].([]any)
	if len(rows) != 1 {
		t.Fatalf("chỉ còn 1 món đang bán, có %d", len(rows))
	}
	if data["totalCount"].(float64) != 1 {
		t.Fatalf("totalCount sai: %v", data["totalCount"])
	}

	resp, payload = doJSON(t, app, "GET", "/api/v1/menu/?searchKey=ph%E1%BB%9F", nil, "")
	if resp.StatusCode != 200 {
		t.Fatalf("tìm theo tên: status %d", resp.StatusCode)
	}
	if rows := dataMap(t, payload)["rows"].([]any); len(rows) != 1 {
		t.Fatalf("tìm 'phở' phải ra 1 món, có %d", len(rows))
	}
}

func itoa(f float64) string {
	return strconv.Itoa(int(f))
}
