package database

import (
	"context"
	"time"

	"submitserver/models"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

func (s *Store) ListAvailability(ctx context.Context, eventID uint) ([]models.EventAvailability, error) {
	var records []models.EventAvailability
	err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&records).Error
	return records, err
}

// FindOrCreateAvailability は(ユーザー, イベント)の参加可能時間を返し、無ければ空で作成します。
func (s *Store) FindOrCreateAvailability(ctx context.Context, userID, eventID uint) (models.EventAvailability, error) {
	record := models.EventAvailability{}
	err := s.db.WithContext(ctx).
		Where(models.EventAvailability{UserID: userID, EventID: eventID}).
		Attrs(models.EventAvailability{Slots: datatypes.JSONSlice[time.Time]{}}).
		FirstOrCreate(&record).Error
	return record, err
}

// UpsertAvailability は(ユーザー, イベント)をキーに参加可能時間を作成または置き換えます。
func (s *Store) UpsertAvailability(ctx context.Context, record *models.EventAvailability) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"slots", "updated_at"}),
	}).Create(record).Error
}
