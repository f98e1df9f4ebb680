package users

import "time"

// User es la cuenta con la que se inicia sesión. PasswordHash es bcrypt.
type User struct {
	ID           string
	Username     string
	Email        string
	MobileNumber string
	PasswordHash string
	CreatedAt    time.Time
}
