package model

import "time"

// 作业状态
const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusCompleted = "completed"
)

// Assignment 作业表 — 对应 assignments
// student_id 为空表示面向全班的作业，非空表示定向作业
type Assignment struct {
	ID          uint      `gorm:"primaryKey"                         json:"id"`
	Title       string    `gorm:"type:text;not null"                 json:"title"`
	Description string    `gorm:"type:text;not null"                 json:"description"`
	DueDate     time.Time `gorm:"not null"                           json:"due_date"`
	TeacherID   uint      `gorm:"not null;index"                     json:"teacher_id"`
	StudentID   *uint     `gorm:"index"                              json:"student_id,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Student *User `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
