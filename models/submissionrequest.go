package models

// SubmissionRequest は提出の編集可能な項目です。
type SubmissionRequest struct {
	ID             *uint             `json:"id,omitempty"`
	GameTitle      string            `json:"gameTitle" validate:"required,max=100"`
	Platform       string            `json:"platform" validate:"required,max=100"`
	PrimaryGenre   string            `json:"primaryGenre" validate:"required"`
	SecondaryGenre *string           `json:"secondaryGenre"`
	Description    string            `json:"description" validate:"required,max=1000"`
	TechnicalNotes *string           `json:"technicalNotes" validate:"omitempty,max=1000"`
	ContentWarning *string           `json:"contentWarning" validate:"omitempty,max=100"`
	FlashingLights bool              `json:"flashingLights"`
	Categories     []CategoryRequest `json:"categories" validate:"min=1,dive"`
}

// CategoryRequest はカテゴリの編集可能な項目です。
type CategoryRequest struct {
	CategoryName string `json:"categoryName" validate:"required,max=100"`
	VideoURL     string `json:"videoURL" validate:"required,url,max=2048"`
	Estimate     string `json:"estimate" validate:"required,estimate"`
	Description  string `json:"description" validate:"required,max=1000"`
}

// SubmissionRequestFrom は保存済みの提出から編集用の値を作ります。
func SubmissionRequestFrom(s GameSubmission) SubmissionRequest {
	id := s.ID
	req := SubmissionRequest{
		ID:             &id,
		GameTitle:      s.GameTitle,
		Platform:       s.Platform,
		PrimaryGenre:   s.PrimaryGenre,
		SecondaryGenre: s.SecondaryGenre,
		Description:    s.Description,
		TechnicalNotes: s.TechnicalNotes,
		ContentWarning: s.ContentWarning,
		FlashingLights: s.FlashingLights,
		Categories:     make([]CategoryRequest, 0, len(s.Categories)),
	}
	for _, c := range s.Categories {
		req.Categories = append(req.Categories, CategoryRequest{
			CategoryName: c.CategoryName,
			VideoURL:     c.VideoURL,
			Estimate:     c.Estimate,
			Description:  c.Description,
		})
	}
	return req
}
