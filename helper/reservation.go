package helper

import (
	"log"
	"sort"
	"strings"
	"time"

	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Nhà hàng có 15 bàn cố định, đánh số 1..15
const TotalTables = 15

// Khách chỉ được tự huỷ khi còn cách giờ đặt ít nhất 2 tiếng
const CancelLeadTime = 2 * time.Hour

var reservationScheduler *cron.Cron

// ParseSlotTime kiểm tra định dạng HH:MM và chuẩn hoá (vd "9:30" -> "09:30")
func ParseSlotTime(timeStr string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(timeStr))
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

// SlotStart ghép date + time thành thời điểm bắt đầu của slot (giờ local)
func SlotStart(date utils.CustomDate, timeStr string) (time.Time, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// OccupiedTables trả về các bàn đã có đặt bàn chưa huỷ tại đúng (date, time)
func OccupiedTables(db *gorm.DB, date utils.CustomDate, timeStr string, excludeId *uint) ([]int, error) {
	query := db.Model(&model.Reservation{}).
		Where("date = ? AND time = ? AND status <> ?", date, timeStr, model.ReservationCancelled)
	if excludeId != nil {
		query = query.Where("id <> ?", *excludeId)
	}

	var tables []int
	if err := query.Pluck("table_number", &tables).Error; err != nil {
		return nil, err
	}
	sort.Ints(tables)
	return tables, nil
}

// AvailableTables = {1..15} trừ các bàn đã bị chiếm
func AvailableTables(occupied []int) []int {
	taken := make(map[int]bool, len(occupied))
	for _, t := range occupied {
		taken[t] = true
	}
	available := []int{}
	for t := 1; t <= TotalTables; t++ {
		if !taken[t] {
			available = append(available, t)
		}
	}
	return available
}

func GenerateReservationCode() string {
	return "RSV-" + strings.ToUpper(uuid.New().String()[:8])
}

// expirePastReservations huỷ các đặt bàn PENDING mà slot đã qua (khách không đến)
func expirePastReservations() {
	now := time.Now()
	today := now.Format("2006-01-02")
	clock := now.Format("15:04")

	result := database.DB.Model(&model.Reservation{}).
		Where("status = ? AND (date < ? OR (date = ? AND time < ?))",
			model.ReservationPending, today, today, clock).
		Update("status", model.ReservationCancelled)

	if result.Error != nil {
		log.Printf("Lỗi huỷ đặt bàn quá hạn: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã huỷ %d đặt bàn PENDING quá giờ", result.RowsAffected)
	}
}

func StartReservationScheduler() {
	reservationScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 10 phút
	_, err := reservationScheduler.AddFunc("*/10 * * * *", expirePastReservations)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	reservationScheduler.Start()
	log.Println("Scheduler đặt bàn đã khởi động (mỗi 10 phút)")
}

// Dừng scheduler khi tắt server
func StopReservationScheduler() {
	if reservationScheduler != nil {
		reservationScheduler.Stop()
		log.Println("Scheduler đặt bàn đã dừng")
	}
}
