package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eduboard/internal/service"
	"eduboard/pkg/response"
)

// RosterHandler 师生关系与统计模块 HTTP 处理器
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// TeacherStats 教师工作台统计
// GET /api/v1/teacher/stats
func (h *RosterHandler) TeacherStats(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.rosterSvc.TeacherStats(c.Request.Context(), teacherID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// Students 教师名下学生列表（含各自提交数）
// GET /api/v1/teacher/students
func (h *RosterHandler) Students(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	students, err := h.rosterSvc.StudentsOf(c.Request.Context(), teacherID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// StudentStats 学生工作台统计
// GET /api/v1/student/stats
func (h *RosterHandler) StudentStats(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.rosterSvc.StudentStats(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// MyTeacher 学生查看绑定的教师
// GET /api/v1/student/teacher
func (h *RosterHandler) MyTeacher(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	teacher, err := h.rosterSvc.TeacherOf(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotAssigned) {
			response.NotFound(c, 14001, "尚未绑定教师")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, teacher)
}
