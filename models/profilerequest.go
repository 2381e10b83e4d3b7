package models

import "strings"

// ProfileRequest はユーザーが変更できるプロフィール項目です。
// IsAdmin などここに無い項目はリクエストに含まれていても無視されます。
type ProfileRequest struct {
	DisplayName     *string `json:"displayName" validate:"omitempty,max=50"`
	Email           *string `json:"email" validate:"omitempty,email,max=100"`
	Pronouns        *string `json:"pronouns" validate:"omitempty,max=50"`
	ShowPronouns    bool    `json:"showPronouns"`
	ShowSubmissions bool    `json:"showSubmissions"`
}

func ProfileRequestFrom(u User) ProfileRequest {
	return ProfileRequest{
		DisplayName:     u.DisplayName,
		Email:           u.Email,
		Pronouns:        u.Pronouns,
		ShowPronouns:    u.ShowPronouns,
		ShowSubmissions: u.ShowSubmissions,
	}
}

// Normalize は空文字列の項目を未設定（nil）にします。
func (r ProfileRequest) Normalize() ProfileRequest {
	for _, p := range []**string{&r.DisplayName, &r.Email, &r.Pronouns} {
		if *p != nil && strings.TrimSpace(**p) == "" {
			*p = nil
		}
	}
	return r
}
