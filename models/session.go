package models

import "time"

// Session はRedisに保存するセッション情報です。
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"userID"`
	CreatedAt time.Time `json:"createdAt"`
}
