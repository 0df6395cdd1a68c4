package repository

import (
	"context"

	"gorm.io/gorm"

	"eduboard/internal/model"
)

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id uint) (*model.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]model.Assignment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]model.Assignment, error)
	CountByTeacher(ctx context.Context, teacherID uint) (int64, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByTeacher(ctx context.Context, teacherID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByStudent(ctx context.Context, studentID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) CountByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("teacher_id = ?", teacherID).
		Count(&count).Error
	return count, err
}
