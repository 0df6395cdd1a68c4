package dto

import "time"

// ── 作业模块 DTO ──

// CreateAssignmentRequest 创建作业请求
type CreateAssignmentRequest struct {
	Title       string    `json:"title"       binding:"required,max=255"`
	Description string    `json:"description" binding:"required"`
	DueDate     time.Time `json:"due_date"    binding:"required"`
	StudentID   *uint     `json:"student_id"` // 为空表示面向全班
}

// SubmitAssignmentRequest 学生提交作业请求
type SubmitAssignmentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReviewSubmissionRequest 教师点评提交请求
type ReviewSubmissionRequest struct {
	ReviewContent string `json:"review_content" binding:"required"`
}

// AssignmentResponse 作业信息响应（教师视角附学生简要信息）
type AssignmentResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     string           `json:"due_date"`
	TeacherID   uint             `json:"teacher_id"`
	StudentID   *uint            `json:"student_id,omitempty"`
	Status      string           `json:"status"`
	CreatedAt   string           `json:"created_at"`
	Student     *UserBrief       `json:"student,omitempty"`
	Submission  *SubmissionBrief `json:"submission,omitempty"` // 学生视角：本人提交
}

// SubmissionBrief 提交简要信息（嵌入学生作业列表）
type SubmissionBrief struct {
	ID          uint   `json:"id"`
	Content     string `json:"content"`
	SubmittedAt string `json:"submitted_at"`
	IsReviewed  bool   `json:"is_reviewed"`
}

// SubmissionResponse 提交信息响应
type SubmissionResponse struct {
	ID            uint       `json:"id"`
	AssignmentID  uint       `json:"assignment_id"`
	StudentID     uint       `json:"student_id"`
	Content       string     `json:"content"`
	SubmittedAt   string     `json:"submitted_at"`
	IsReviewed    bool       `json:"is_reviewed"`
	ReviewContent *string    `json:"review_content,omitempty"`
	ReviewedAt    *string    `json:"reviewed_at,omitempty"`
	Student       *UserBrief `json:"student,omitempty"`
}
