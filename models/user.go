package models

import "time"

// User モデルの定義
type User struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	ProviderID      string    `gorm:"unique;not null" json:"-"` // DiscordのユーザーID
	Name            string    `gorm:"not null" json:"name"`
	DisplayName     *string   `json:"displayName"`
	Email           *string   `json:"email"`
	Pronouns        *string   `json:"pronouns"`
	ShowPronouns    bool      `gorm:"not null;default:true" json:"showPronouns"`
	ShowSubmissions bool      `gorm:"not null;default:true" json:"showSubmissions"`
	IsAdmin         bool      `gorm:"not null;default:false" json:"isAdmin"`
}

// RunnerName は表示名、プロバイダー名の順にフォールバックした名前を返します。
func (u *User) RunnerName() string {
	if u == nil {
		return MissingUserName
	}
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	if u.Name != "" {
		return u.Name
	}
	return MissingUserName
}

const MissingUserName = "<username missing>"

// Apply copies the whitelisted profile fields onto the user.
func (u *User) Apply(req ProfileRequest) {
	u.DisplayName = req.DisplayName
	u.Email = req.Email
	u.Pronouns = req.Pronouns
	u.ShowPronouns = req.ShowPronouns
	u.ShowSubmissions = req.ShowSubmissions
}
