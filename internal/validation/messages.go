package validation

// messages は "フィールド名.タグ" ごとの表示用メッセージです。
var messages = map[string]string{
	// カテゴリ
	"categoryName.required": "Category name is required.",
	"categoryName.max":      "Category name cannot be longer than 100 characters.",
	"videoURL.required":     "Video link is required.",
	"videoURL.url":          "Video link must be a valid URL.",
	"videoURL.max":          "Video link cannot be longer than 2,048 characters.",
	"estimate.required":     "Estimate is required.",
	"estimate.estimate":     "Estimate must be in the format MM:SS, H:MM:SS, or HH:MM:SS",
	"description.required":  "Description is required.",
	"description.max":       "Description cannot be longer than 1,000 characters.",

	// 提出
	"gameTitle.required":    "Game title is required.",
	"gameTitle.max":         "Game title cannot be longer than 100 characters.",
	"platform.required":     "Platform is required.",
	"platform.max":          "Platform cannot be longer than 100 characters.",
	"primaryGenre.required": "Genre is required.",
	"technicalNotes.max":    "Technical notes cannot be longer than 1,000 characters.",
	"contentWarning.max":    "Content warning cannot be longer than 100 characters.",
	"categories.min":        "You must submit at least one category.",

	// イベント
	"eventName.required":             "Event name is required.",
	"eventName.max":                  "Event name cannot be longer than 100 characters.",
	"submissionWindowStart.required": "Submission period start date is required.",
	"submissionWindowEnd.required":   "Submission period end date is required.",
	"eventStart.required":            "Event start date is required.",
	"eventDays.min":                  "Event length must be at least 1.",
	"startTime.min":                  "Event start time must be at least 0.",
	"startTime.max":                  "Event start time must be under 25.",
	"endTime.min":                    "Event end time must be at least 0.",
	"endTime.max":                    "Event end time must be under 25.",
	"maxSubmissions.min":             "Max submissions must be at least 1.",
	"maxCategories.min":              "Max categories must be at least 1.",
	"genres.min":                     "At least one genre must be specified",
	"genres.required":                "Genre names cannot be empty.",
	"genres.max":                     "Genre names cannot be longer than 100 characters.",

	// プロフィール
	"displayName.max": "Display name cannot be longer than 50 characters.",
	"email.email":     "Please enter a valid email.",
	"email.max":       "Email cannot be longer than 100 characters.",
	"pronouns.max":    "Pronouns cannot be longer than 50 characters.",

	// 参加可能時間
	"slots.required": "Availability slots must be valid dates.",
}
