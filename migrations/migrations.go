// Package migrations はスキーマの変更を日時順に適用します。
package migrations

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration は1つのスキーマ変更です。ID は "YYYYMMDDhhmm_説明" 形式です。
type Migration struct {
	ID      string
	Migrate func(tx *gorm.DB) error
}

// schemaMigration は適用済みのマイグレーションを記録します。
type schemaMigration struct {
	ID string `gorm:"primarykey"`
}

// All は適用順に並んだマイグレーションです。
var All = []Migration{
	{ID: "202403011200_create_users", Migrate: createUsers},
	{ID: "202403011210_create_events", Migrate: createEvents},
	{ID: "202403011220_create_submissions", Migrate: createSubmissions},
	{ID: "202403011230_create_availability", Migrate: createAvailability},
}

// Run は未適用のマイグレーションをトランザクション内で順に実行します。
func Run(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("マイグレーション管理テーブルの作成に失敗しました: %w", err)
	}

	for _, m := range All {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Migrate(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{ID: m.ID}).Error
		})
		if err != nil {
			logger.Error("マイグレーションに失敗しました", zap.String("migration", m.ID), zap.Error(err))
			return fmt.Errorf("migration %s: %w", m.ID, err)
		}
		logger.Info("マイグレーションを適用しました", zap.String("migration", m.ID))
	}
	return nil
}
