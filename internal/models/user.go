package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	DateJoined   time.Time `json:"date_joined"`
}

// FullName — отображаемое имя пользователя ("Имя Фамилия").
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	IsAdmin   *bool   `json:"is_admin,omitempty"`
	Password  *string `json:"password,omitempty"`
}
