package service

import (
	"go.uber.org/zap"

	"eduboard/config"
	"eduboard/internal/repository"
	"eduboard/pkg/jwt"
	"eduboard/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Schedule   ScheduleService
	Roster     RosterService
	Assignment AssignmentService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Schedule:   NewScheduleService(repo, logger),
		Roster:     NewRosterService(repo, logger),
		Assignment: NewAssignmentService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
