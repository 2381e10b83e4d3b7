package models

import "time"

// GameSubmission はユーザーがイベントに提出したゲームです。
type GameSubmission struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	UserID         uint       `gorm:"not null;index" json:"userId"`
	EventID        uint       `gorm:"not null;index" json:"eventId"`
	GameTitle      string     `gorm:"not null" json:"gameTitle"`
	Platform       string     `gorm:"not null" json:"platform"`
	PrimaryGenre   string     `gorm:"not null" json:"primaryGenre"`
	SecondaryGenre *string    `json:"secondaryGenre"`
	Description    string     `gorm:"not null" json:"description"`
	TechnicalNotes *string    `json:"technicalNotes"`
	ContentWarning *string    `json:"contentWarning"`
	FlashingLights bool       `gorm:"not null;default:false" json:"flashingLights"`
	Categories     []Category `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"categories"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Category は提出に含まれる1つのカテゴリ（走り方）です。
type Category struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	SubmissionID uint   `gorm:"not null;index" json:"submissionId"`
	Position     int    `gorm:"not null;default:0" json:"-"`
	CategoryName string `gorm:"not null" json:"categoryName"`
	VideoURL     string `gorm:"not null" json:"videoURL"`
	Estimate     string `gorm:"not null" json:"estimate"`
	Description  string `gorm:"not null" json:"description"`
}

// Apply copies the editable fields of the request onto the submission,
// replacing the category list wholesale.
func (s *GameSubmission) Apply(req SubmissionRequest) {
	s.GameTitle = req.GameTitle
	s.Platform = req.Platform
	s.PrimaryGenre = req.PrimaryGenre
	s.SecondaryGenre = req.SecondaryGenre
	s.Description = req.Description
	s.TechnicalNotes = req.TechnicalNotes
	s.ContentWarning = req.ContentWarning
	s.FlashingLights = req.FlashingLights

	s.Categories = make([]Category, 0, len(req.Categories))
	for i, c := range req.Categories {
		s.Categories = append(s.Categories, Category{
			SubmissionID: s.ID,
			Position:     i,
			CategoryName: c.CategoryName,
			VideoURL:     c.VideoURL,
			Estimate:     c.Estimate,
			Description:  c.Description,
		})
	}
}
