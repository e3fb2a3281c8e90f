package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"not null;index" json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `gorm:"not null;default:user" json:"role"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}
