package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Blocked      bool      `json:"blocked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DeviceType identifies the push platform a device token belongs to.
type DeviceType int

const (
	DeviceTypeIOS     DeviceType = 1
	DeviceTypeAndroid DeviceType = 2
)

func (t DeviceType) Valid() bool {
	return t == DeviceTypeIOS || t == DeviceTypeAndroid
}

type DeviceToken struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	DeviceToken string     `json:"device_token"`
	DeviceType  DeviceType `json:"device_type"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type RevokedToken struct {
	TokenID   string
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}
