package domain

import "time"

// User is a stored account. Email is unique across the store.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PictureURL   string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserDTO is the public projection of a User.
type UserDTO struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	PictureURL string `json:"pictureUrl"`
	IsAdmin    bool   `json:"isAdmin"`
}

func MapUser(u *User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		PictureURL: u.PictureURL,
		IsAdmin:    u.IsAdmin,
	}
}

type UserResponse struct {
	StatusCode int     `json:"statusCode"`
	Message    string  `json:"message"`
	User       UserDTO `json:"user"`
}

type AuthorizationResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Token      string `json:"token"`
}
