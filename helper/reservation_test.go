package helper

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestParseSlotTime(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"19:00", "19:00", false},
		{"9:30", "09:30", false},
		{" 08:15 ", "08:15", false},
		{"25:00", "", true},
		{"19h00", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseSlotTime(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseSlotTime(%q) phải lỗi", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseSlotTime(%q) = %q, %v; muốn %q", tc.in, got, err, tc.want)
		}
	}
}

func TestAvailableTablesComplement(t *testing.T) {
	occupied := []int{1, 5, 15}
	available := AvailableTables(occupied)

	if len(available)+len(occupied) != TotalTables {
		t.Fatalf("tổng phải bằng %d: %d + %d", TotalTables, len(available), len(occupied))
	}
	for _, table := range available {
		for _, o := range occupied {
			if table == o {
				t.Fatalf("bàn %d vừa trống vừa bị chiếm", table)
			}
		}
	}

	if got := AvailableTables(nil); len(got) != TotalTables {
		t.Fatalf("không có bàn chiếm thì phải trống đủ %d, có %d", TotalTables, len(got))
	}
}

func TestSlotStart(t *testing.T) {
	date, _ := utils.ParseCustomDate("2030-05-20")
	start, err := SlotStart(date, "19:30")
	if err != nil {
		t.Fatal(err)
	}
	if start.Hour() != 19 || start.Minute() != 30 || start.Day() != 20 {
		t.Fatalf("SlotStart sai: %v", start)
	}
}

func TestGenerateReservationCode(t *testing.T) {
	code := GenerateReservationCode()
	if !strings.HasPrefix(code, "RSV-") || len(code) != 12 {
		t.Fatalf("mã đặt bàn sai định dạng: %s", code)
	}
	if code == GenerateReservationCode() {
		t.Fatal("hai mã liên tiếp không được trùng")
	}
}

func TestExpirePastReservations(t *testing.T) {
	db := openTestDB(t)
	database.DB = db

	yesterday := utils.CustomDate{Time: time.Now().AddDate(0, 0, -1)}
	tomorrow := utils.CustomDate{Time: time.Now().AddDate(0, 0, 1)}

	past := model.Reservation{
		PublicCode: "RSV-QUAHAN01", Name: "A", Email: "a@x.vn", Phone: "1",
		Date: yesterday, Time: "19:00", TableNumber: 1, Guests: 2,
		Status: model.ReservationPending,
	}
	future := model.Reservation{
		PublicCode: "RSV-TUONGLAI", Name: "B", Email: "b@x.vn", Phone: "2",
		Date: tomorrow, Time: "19:00", TableNumber: 2, Guests: 2,
		Status: model.ReservationPending,
	}
	pastConfirmed := model.Reservation{
		PublicCode: "RSV-DAXACNH1", Name: "C", Email: "c@x.vn", Phone: "3",
		Date: yesterday, Time: "20:00", TableNumber: 3, Guests: 2,
		Status: model.ReservationConfirmed,
	}
	for _, r := range []*model.Reservation{&past, &future, &pastConfirmed} {
		if err := db.Create(r).Error; err != nil {
			t.Fatal(err)
		}
	}

	expirePastReservations()

	check := func(id uint, want model.ReservationStatus) {
		var r model.Reservation
		db.First(&r, id)
		if r.Status != want {
			t.Errorf("reservation %d: status %s, muốn %s", id, r.Status, want)
		}
	}
	check(past.ID, model.ReservationCancelled)
	check(future.ID, model.ReservationPending)
	// Chỉ PENDING quá hạn mới bị huỷ, CONFIRMED giữ nguyên
	check(pastConfirmed.ID, model.ReservationConfirmed)
}
