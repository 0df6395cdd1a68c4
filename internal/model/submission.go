package model

import "time"

// Submission 作业提交表 — 对应 submissions
type Submission struct {
	ID            uint       `gorm:"primaryKey"                         json:"id"`
	AssignmentID  uint       `gorm:"not null;index"                     json:"assignment_id"`
	StudentID     uint       `gorm:"not null;index"                     json:"student_id"`
	Content       string     `gorm:"type:text;not null"                 json:"content"`
	SubmittedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"submitted_at"`
	IsReviewed    bool       `gorm:"not null;default:false"             json:"is_reviewed"`
	ReviewContent *string    `gorm:"type:text"                          json:"review_content,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`

	// 关联
	Assignment *Assignment `gorm:"foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	Student    *User       `gorm:"foreignKey:StudentID;references:ID"    json:"student,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }
