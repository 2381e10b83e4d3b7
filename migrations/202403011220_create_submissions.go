package migrations

import (
	"time"

	"gorm.io/gorm"
)

type gameSubmission202403 struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         uint   `gorm:"not null;index"`
	EventID        uint   `gorm:"not null;index"`
	GameTitle      string `gorm:"not null"`
	Platform       string `gorm:"not null"`
	PrimaryGenre   string `gorm:"not null"`
	SecondaryGenre *string
	Description    string `gorm:"not null"`
	TechnicalNotes *string
	ContentWarning *string
	FlashingLights bool `gorm:"not null;default:false"`
}

func (gameSubmission202403) TableName() string { return "game_submissions" }

type category202403 struct {
	ID           uint   `gorm:"primarykey"`
	SubmissionID uint   `gorm:"not null;index"`
	Position     int    `gorm:"not null;default:0"`
	CategoryName string `gorm:"not null"`
	VideoURL     string `gorm:"not null"`
	Estimate     string `gorm:"not null"`
	Description  string `gorm:"not null"`
}

func (category202403) TableName() string { return "categories" }

func createSubmissions(tx *gorm.DB) error {
	return tx.AutoMigrate(&gameSubmission202403{}, &category202403{})
}
