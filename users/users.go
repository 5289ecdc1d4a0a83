package users

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id" bson:"id"`                  // Unique identifier for the user
	Username     string    `json:"username" bson:"username"`      // Unique username
	PasswordHash string    `json:"-" bson:"passwordHash"`         // bcrypt hash of the user's password - never serialize
	DateJoined   time.Time `json:"date_joined" bson:"dateJoined"` // Date and time when the user registered
}

// NormalizeUsername trims surrounding whitespace from a username.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
