package helper

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate thêm FOR UPDATE vào query. SQLite không có row lock
// (file lock single-writer là đủ) nên bỏ qua để tránh lỗi cú pháp.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
