package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"restaurant_manager/config"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{
		Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
	})

	availClients = make(map[string]map[*websocket.Conn]bool)
	availMu      sync.Mutex
)

// Room theo slot: "2025-01-15|19:00"
func slotKey(date, timeStr string) string {
	return date + "|" + timeStr
}

type availabilityPayload struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	OccupiedTables  []int  `json:"occupiedTables"`
	AvailableTables []int  `json:"availableTables"`
}

func buildAvailabilityPayload(date utils.CustomDate, timeStr string) ([]byte, error) {
	occupied, err := helper.OccupiedTables(database.DB, date, timeStr, nil)
	if err != nil {
		return nil, err
	}
	return json.Marshal(availabilityPayload{
		Date:            date.String(),
		Time:            timeStr,
		OccupiedTables:  occupied,
		AvailableTables: helper.AvailableTables(occupied),
	})
}

// AvailabilityWS đẩy realtime tình trạng bàn của một slot (?date=...&time=...)
func AvailabilityWS(c *websocket.Conn) {
	dateStr := c.Query("date")
	timeStr := c.Query("time")
	key := slotKey(dateStr, timeStr)

	// Khi WS disconnect → xoá client
	defer func() {
		availMu.Lock()
		if availClients[key] != nil {
			delete(availClients[key], c)
		}
		availMu.Unlock()
		c.Close()
	}()

	// Thêm client mới vào room
	availMu.Lock()
	if availClients[key] == nil {
		availClients[key] = make(map[*websocket.Conn]bool)
	}
	availClients[key][c] = true
	availMu.Unlock()

	// Gửi trạng thái hiện tại lần đầu
	if date, err := utils.ParseCustomDate(dateStr); err == nil {
		if payload, err := buildAvailabilityPayload(date, timeStr); err == nil {
			c.WriteMessage(websocket.TextMessage, payload)
		}
	}

	// Sub kênh Redis của slot
	pubsub := redisClient.Subscribe(context.Background(), "availability:"+key)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)

		availMu.Lock()
		for conn := range availClients[key] {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(availClients[key], conn)
			}
		}
		availMu.Unlock()
	}
}

// BroadcastAvailability publish trạng thái slot lên Redis cho mọi instance;
// Redis không chạy thì fan-out trực tiếp cho client nội bộ.
func BroadcastAvailability(date utils.CustomDate, timeStr string) {
	key := slotKey(date.String(), timeStr)

	payload, err := buildAvailabilityPayload(date, timeStr)
	if err != nil {
		log.Printf("Lỗi build availability payload %s: %v", key, err)
		return
	}

	if err := redisClient.Publish(context.Background(), "availability:"+key, payload).Err(); err != nil {
		availMu.Lock()
		for conn := range availClients[key] {
			if werr := conn.WriteMessage(websocket.TextMessage, payload); werr != nil {
				conn.Close()
				delete(availClients[key], conn)
			}
		}
		availMu.Unlock()
	}
}
