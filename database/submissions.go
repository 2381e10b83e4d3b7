package database

import (
	"context"

	"submitserver/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) GetSubmission(ctx context.Context, id uint) (models.GameSubmission, error) {
	var submission models.GameSubmission
	err := s.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		First(&submission, id).Error
	return submission, err
}

// CountSubmissions はユーザーがイベントに提出した件数です。
func (s *Store) CountSubmissions(ctx context.Context, userID, eventID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.GameSubmission{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count, err
}

// ListSubmissions はイベントの全提出をユーザーとカテゴリ付きで返します。
func (s *Store) ListSubmissions(ctx context.Context, eventID uint) ([]models.GameSubmission, error) {
	var submissions []models.GameSubmission
	err := s.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&submissions).Error
	return submissions, err
}

// ListUserSubmissions はユーザー自身の提出だけを返します。
func (s *Store) ListUserSubmissions(ctx context.Context, eventID, userID uint) ([]models.GameSubmission, error) {
	var submissions []models.GameSubmission
	err := s.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Order("id ASC").
		Find(&submissions).Error
	return submissions, err
}

// SaveSubmission は提出を保存します。更新時はカテゴリを全て削除してから作り直します。
func (s *Store) SaveSubmission(ctx context.Context, submission *models.GameSubmission) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := submission.Categories
		submission.Categories = nil

		if submission.ID != 0 {
			if err := tx.Where("submission_id = ?", submission.ID).Delete(&models.Category{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(submission).Error; err != nil {
			return err
		}

		for i := range categories {
			categories[i].ID = 0
			categories[i].SubmissionID = submission.ID
			categories[i].Position = i
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}
		submission.Categories = categories
		return nil
	})
}

func (s *Store) DeleteSubmission(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GameSubmission{}, id).Error
	})
}
