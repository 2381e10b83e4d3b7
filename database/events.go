package database

import (
	"context"

	"submitserver/models"

	"gorm.io/gorm"
)

// ListEvents はイベントを開始日順に返します。includeHidden が false なら公開中のものだけです。
func (s *Store) ListEvents(ctx context.Context, includeHidden bool) ([]models.Event, error) {
	var events []models.Event
	q := s.db.WithContext(ctx).Order("event_start ASC, id ASC")
	if !includeHidden {
		q = q.Where("visible = ?", true)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) GetEvent(ctx context.Context, id uint) (models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).First(&event, id).Error
	return event, err
}

// SaveEvent は ID が0なら作成、それ以外は更新します。
func (s *Store) SaveEvent(ctx context.Context, event *models.Event) error {
	return s.db.WithContext(ctx).Save(event).Error
}

// DeleteEvent はイベントと、それに属する提出・カテゴリ・参加可能時間を1つのトランザクションで削除します。
func (s *Store) DeleteEvent(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		submissionIDs := tx.Model(&models.GameSubmission{}).Select("id").Where("event_id = ?", id)
		if err := tx.Where("submission_id IN (?)", submissionIDs).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.GameSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.EventAvailability{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
