package handler

import "eduboard/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Schedule   *ScheduleHandler
	Roster     *RosterHandler
	Assignment *AssignmentHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Roster:     NewRosterHandler(svc.Roster),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Export:     NewExportHandler(svc.Export),
	}
}
