package model

import "time"

// TeacherStudent 师生绑定表 — 对应 teacher_students
// (teacher_id, student_id) 唯一；学生侧查询按最小 id 取第一条绑定
type TeacherStudent struct {
	ID        uint      `gorm:"primaryKey"                         json:"id"`
	TeacherID uint      `gorm:"not null;index;uniqueIndex:uq_teacher_students,priority:1" json:"teacher_id"`
	StudentID uint      `gorm:"not null;index;uniqueIndex:uq_teacher_students,priority:2" json:"student_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Teacher *User `gorm:"foreignKey:TeacherID;references:ID" json:"teacher,omitempty"`
	Student *User `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

// TableName 指定表名
func (TeacherStudent) TableName() string { return "teacher_students" }
