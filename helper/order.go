package helper

import (
	"log"
	"math"
	"strings"
	"time"

	"restaurant_manager/database"
	"restaurant_manager/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Thuế cố định 8% trên subtotal
const TaxRate = 0.08

var cleanupScheduler gocron.Scheduler

// OrderTotal = subtotal + thuế, làm tròn 2 chữ số
func OrderTotal(subtotal float64) float64 {
	return math.Round(subtotal*(1+TaxRate)*100) / 100
}

func GenerateOrderCode() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

func cleanupExpiredResetTokens() {
	log.Println("[CRON] cleanupExpiredResetTokens triggered")

	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetToken{})

	if result.Error != nil {
		log.Printf("Lỗi xoá token hết hạn: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã xoá %d token khôi phục hết hạn", result.RowsAffected)
	}
}

func StartCleanupScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	cleanupScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(cleanupExpiredResetTokens),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Cleanup scheduler started (00:05)")
}

func StopCleanupScheduler() {
	if cleanupScheduler != nil {
		_ = cleanupScheduler.Shutdown()
	}
}
