package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the session payload. It is trusted as-is after signature
// validation and is not re-read from the store, so it may lag behind later
// profile edits.
type Claims struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	UserRole  string `json:"userRole"`
	IsVerify  bool   `json:"isVerify"`
	jwt.RegisteredClaims
}
