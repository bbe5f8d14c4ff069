package handler_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"
)

func reservationBody(table int, date, timeStr string) map[string]any {
	return map[string]any{
		"name":        "Nguyễn Văn A",
		"email":       "guest@example.com",
		"phone":       "0900000001",
		"date":        date,
		"time":        timeStr,
		"tableNumber": table,
		"guests":      4,
	}
}

func TestAvailabilityPartition(t *testing.T) {
	app := setupApp(t)

	// Đặt trước bàn 3 và 7
	for _, table := range []int{3, 7} {
		resp, _ := doJSON(t, app, "POST", "/api/v1/reservation",
			reservationBody(table, "2030-05-20", "19:00"), "")
		if resp.StatusCode != 201 {
			t.Fatalf("tạo đặt bàn %d: status %d", table, resp.StatusCode)
		}
	}

	resp, payload := doJSON(t, app, "POST", "/api/v1/reservation/availability",
		map[string]any{"date": "2030-05-20", "time": "19:00"}, "")
	if resp.StatusCode != 200 {
		t.Fatalf("availability: status %d", resp.StatusCode)
	}

	data := dataMap(t, payload)
	occupied := data["occupiedTables"].([]any)
	available := data["availableTables"].([]any)

	if len(occupied) != 2 || len(available) != 13 {
		t.Fatalf("phân hoạch sai: occupied=%d available=%d", len(occupied), len(available))
	}

	seen := map[float64]bool{}
	for _, v := range occupied {
		seen[v.(float64)] = true
	}
	for _, v := range available {
		if seen[v.(float64)] {
			t.Fatalf("bàn %v vừa trống vừa bị chiếm", v)
		}
		seen[v.(float64)] = true
	}
	if len(seen) != 15 {
		t.Fatalf("tổng số bàn phải là 15, có %d", len(seen))
	}
}

func TestAvailabilityOtherSlotNotAffected(t *testing.T) {
	app := setupApp(t)

	doJSON(t, app, "POST", "/api/v1/reservation", reservationBody(5, "2030-05-20", "19:00"), "")

	// Cùng ngày, giờ khác
	_, payload := doJSON(t, app, "POST", "/api/v1/reservation/availability",
		map[string]any{"date": "2030-05-20", "time": "20:00"}, "")
	if got := len(dataMap(t, payload)["availableTables"].([]any)); got != 15 {
		t.Fatalf("slot khác giờ phải còn đủ 15 bàn, có %d", got)
	}

	// Cùng giờ, ngày khác
	_, payload = doJSON(t, app, "POST", "/api/v1/reservation/availability",
		map[string]any{"date": "2030-05-21", "time": "19:00"}, "")
	if got := len(dataMap(t, payload)["availableTables"].([]any)); got != 15 {
		t.Fatalf("slot khác ngày phải còn đủ 15 bàn, có %d", got)
	}
}

func TestCreateReservationSlotConflict(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(8, "2030-05-20", "19:00"), "")
	if resp.StatusCode != 201 {
		t.Fatalf("đặt lần đầu: status %d", resp.StatusCode)
	}

	// Trùng hoàn toàn slot -> conflict
	resp, payload := doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(8, "2030-05-20", "19:00"), "")
	if resp.StatusCode != 409 {
		t.Fatalf("đặt trùng slot phải trả 409, được %d", resp.StatusCode)
	}
	if payload["keyError"] != "tableNumber" {
		t.Fatalf("keyError phải là tableNumber: %v", payload)
	}

	// Bàn khác cùng giờ vẫn đặt được
	resp, _ = doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(9, "2030-05-20", "19:00"), "")
	if resp.StatusCode != 201 {
		t.Fatalf("bàn khác phải đặt được: status %d", resp.StatusCode)
	}
}

func TestCancelledReservationFreesSlot(t *testing.T) {
	app := setupApp(t)

	doJSON(t, app, "POST", "/api/v1/reservation", reservationBody(2, "2030-05-20", "19:00"), "")
	if err := database.DB.Model(&model.Reservation{}).
		Where("table_number = ?", 2).
		Update("status", model.ReservationCancelled).Error; err != nil {
		t.Fatalf("huỷ: %v", err)
	}

	resp, _ := doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(2, "2030-05-20", "19:00"), "")
	if resp.StatusCode != 201 {
		t.Fatalf("slot đã huỷ phải đặt lại được: status %d", resp.StatusCode)
	}
}

// Hai insert đi thẳng vào DB (không qua handler check) vẫn bị partial index chặn
func TestSlotUniqueIndexBlocksDirectInsert(t *testing.T) {
	setupApp(t)

	date, _ := utils.ParseCustomDate("2030-05-20")
	first := model.Reservation{
		PublicCode: "RSV-TEST0001", Name: "A", Email: "a@x.vn", Phone: "1",
		Date: date, Time: "19:00", TableNumber: 4, Guests: 2,
		Status: model.ReservationPending,
	}
	if err := database.DB.Create(&first).Error; err != nil {
		t.Fatalf("insert đầu: %v", err)
	}

	second := model.Reservation{
		PublicCode: "RSV-TEST0002", Name: "B", Email: "b@x.vn", Phone: "2",
		Date: date, Time: "19:00", TableNumber: 4, Guests: 2,
		Status: model.ReservationPending,
	}
	if err := database.DB.Create(&second).Error; err == nil {
		t.Fatal("insert trùng slot phải bị index chặn")
	}

	// Bản ghi CANCELLED không bị index tính
	second.Status = model.ReservationCancelled
	if err := database.DB.Create(&second).Error; err != nil {
		t.Fatalf("bản ghi CANCELLED phải insert được: %v", err)
	}
}

func futureSlot(d time.Duration) (string, string) {
	start := time.Now().Add(d)
	return start.Format("2006-01-02"), start.Format("15:04")
}

func TestCancelReservationLeadTime(t *testing.T) {
	app := setupApp(t)
	_, token := createCustomer(t, "owner@example.com")

	// Còn 3 tiếng -> huỷ được
	date, slot := futureSlot(3 * time.Hour)
	resp, payload := doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(1, date, slot), token)
	if resp.StatusCode != 201 {
		t.Fatalf("tạo đặt bàn: status %d", resp.StatusCode)
	}
	id := dataMap(t, payload)["id"].(float64)

	resp, _ = doJSON(t, app, "PATCH",
		fmt.Sprintf("/api/v1/reservation/%.0f/cancel", id), nil, token)
	if resp.StatusCode != 200 {
		t.Fatalf("huỷ trước 3 tiếng phải được: status %d", resp.StatusCode)
	}

	// Huỷ lần hai -> đã xử lý rồi
	resp, _ = doJSON(t, app, "PATCH",
		fmt.Sprintf("/api/v1/reservation/%.0f/cancel", id), nil, token)
	if resp.StatusCode != 409 {
		t.Fatalf("huỷ lần hai phải trả 409, được %d", resp.StatusCode)
	}

	// Còn 1 tiếng -> quá sát giờ
	date, slot = futureSlot(1 * time.Hour)
	resp, payload = doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(6, date, slot), token)
	if resp.StatusCode != 201 {
		t.Fatalf("tạo đặt bàn sát giờ: status %d", resp.StatusCode)
	}
	id = dataMap(t, payload)["id"].(float64)

	resp, _ = doJSON(t, app, "PATCH",
		fmt.Sprintf("/api/v1/reservation/%.0f/cancel", id), nil, token)
	if resp.StatusCode != 400 {
		t.Fatalf("huỷ trong vòng 2 tiếng phải trả 400, được %d", resp.StatusCode)
	}
}

func TestCancelReservationRequiresOwner(t *testing.T) {
	app := setupApp(t)
	_, ownerToken := createCustomer(t, "chu@example.com")
	_, otherToken := createCustomer(t, "khac@example.com")

	date, slot := futureSlot(5 * time.Hour)
	_, payload := doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(10, date, slot), ownerToken)
	id := dataMap(t, payload)["id"].(float64)

	resp, _ := doJSON(t, app, "PATCH",
		fmt.Sprintf("/api/v1/reservation/%.0f/cancel", id), nil, otherToken)
	if resp.StatusCode != 404 {
		t.Fatalf("người khác huỷ phải trả 404, được %d", resp.StatusCode)
	}
}

func TestReservationInPastRejected(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(1, "2020-01-01", "19:00"), "")
	if resp.StatusCode != 400 {
		t.Fatalf("ngày quá khứ phải trả 400, được %d", resp.StatusCode)
	}
}

func TestUpdateReservationStatusByStaff(t *testing.T) {
	app := setupApp(t)
	_, staffToken := createAccount(t, "nhanvien1", "STAFF")

	mailLog := filepath.Join(t.TempDir(), "mail.log")
	t.Setenv("MAIL_LOG_FILE", mailLog)

	_, payload := doJSON(t, app, "POST", "/api/v1/reservation",
		reservationBody(12, "2030-05-20", "19:00"), "")
	id := dataMap(t, payload)["id"].(float64)
	code := dataMap(t, payload)["publicCode"].(string)

	resp, payload := doJSON(t, app, "PATCH",
		fmt.Sprintf("/api/v1/reservation/%.0f/status", id),
		map[string]any{"status": "CONFIRMED"}, staffToken)
	if resp.StatusCode != 200 {
		t.Fatalf("confirm: status %d", resp.StatusCode)
	}
	if dataMap(t, payload)["emailSent"] != true {
		t.Fatalf("emailSent phải là true: %v", payload)
	}

	raw, err := os.ReadFile(mailLog)
	if err != nil {
		t.Fatalf("đọc mail log: %v", err)
	}
	if !strings.Contains(string(raw), "Xác nhận đặt bàn #"+code) {
		t.Fatalf("mail log thiếu email xác nhận %s:\n%s", code, raw)
	}
	if !strings.Contains(string(raw), "[attachment: DatBan_"+code+".png]") {
		t.Fatalf("mail log thiếu QR đính kèm:\n%s", raw)
	}

	// CONFIRMED -> PENDING không hợp lệ
	resp, _ = doJSON(t, app, "PATCH",
		fmt.Sprintf("/api/v1/reservation/%.0f/status", id),
		map[string]any{"status": "PENDING"}, staffToken)
	if resp.StatusCode != 400 {
		t.Fatalf("chuyển lùi trạng thái phải trả 400, được %d", resp.StatusCode)
	}
}
