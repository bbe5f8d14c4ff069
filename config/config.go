package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var loaded = false

// Config đọc biến môi trường từ .env (load 1 lần)
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file, using environment variables")
		}
		loaded = true
	}
	return os.Getenv(key)
}

// ConfigDefault trả về fallback khi biến không được set
func ConfigDefault(key, fallback string) string {
	v := Config(key)
	if v == "" {
		return fallback
	}
	return v
}
