package models

import "time"

// UserModel is an admin account.
type UserModel struct {
	Base
	Username    string     `json:"username"      gorm:"size:150;uniqueIndex;not null"`
	Password    string     `json:"-"             gorm:"not null"`
	LastLoginAt *time.Time `json:"last_login_at"`
	LastLoginIP string     `json:"last_login_ip" gorm:"size:64"`
}

func (UserModel) TableName() string { return "users" }
