package database

import (
	"gorm.io/gorm"
)

// Store はPostgreSQL上のイベント・提出・参加可能時間・ユーザーを扱います。
// 見つからない場合は gorm.ErrRecordNotFound を返します。
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func orderedCategories(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}
