package migrations

import (
	"time"

	"gorm.io/gorm"
)

// 各マイグレーションは作成時点のテーブル定義を持つ。models の変更に引きずられないようにする。

type user202403 struct {
	ID              uint `gorm:"primarykey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProviderID      string `gorm:"unique;not null"`
	Name            string `gorm:"not null"`
	DisplayName     *string
	Email           *string
	Pronouns        *string
	ShowPronouns    bool `gorm:"not null;default:true"`
	ShowSubmissions bool `gorm:"not null;default:true"`
	IsAdmin         bool `gorm:"not null;default:false"`
}

func (user202403) TableName() string { return "users" }

func createUsers(tx *gorm.DB) error {
	return tx.AutoMigrate(&user202403{})
}
