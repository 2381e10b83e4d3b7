package models

import (
	"github.com/golang-jwt/jwt"
)

// SessionClaims はセッショントークンに内包するデータです。
type SessionClaims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"userid"`
	jwt.StandardClaims
}
