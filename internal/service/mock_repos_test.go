package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"eduboard/internal/model"
	"eduboard/internal/repository"
	apperrors "eduboard/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

// ── Mock RosterRepository ──

type mockRosterRepo struct {
	bindings []*model.TeacherStudent
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{}
}

func (m *mockRosterRepo) FirstBindingByStudent(_ context.Context, studentID uint) (*model.TeacherStudent, error) {
	var first *model.TeacherStudent
	for _, b := range m.bindings {
		if b.StudentID != studentID {
			continue
		}
		if first == nil || b.ID < first.ID {
			first = b
		}
	}
	if first == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return first, nil
}

func (m *mockRosterRepo) ListByTeacher(_ context.Context, teacherID uint) ([]model.TeacherStudent, error) {
	var result []model.TeacherStudent
	for _, b := range m.bindings {
		if b.TeacherID == teacherID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockRosterRepo) Exists(_ context.Context, teacherID, studentID uint) (bool, error) {
	for _, b := range m.bindings {
		if b.TeacherID == teacherID && b.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	slots  map[uint]*model.ScheduleSlot
	nextID uint
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{slots: make(map[uint]*model.ScheduleSlot), nextID: 1}
}

func (m *mockScheduleRepo) Create(_ context.Context, slot *model.ScheduleSlot) error {
	if slot.ID == 0 {
		slot.ID = m.nextID
		m.nextID++
	}
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id uint) (*model.ScheduleSlot, error) {
	if s, ok := m.slots[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByTeacher(_ context.Context, teacherID uint) ([]model.ScheduleSlot, error) {
	var result []model.ScheduleSlot
	for _, s := range m.slots {
		if s.TeacherID == teacherID {
			result = append(result, *s)
		}
	}
	sortSlots(result)
	return result, nil
}

func (m *mockScheduleRepo) ListAvailableByTeacher(_ context.Context, teacherID uint) ([]model.ScheduleSlot, error) {
	var result []model.ScheduleSlot
	for _, s := range m.slots {
		if s.TeacherID == teacherID && s.IsAvailable {
			result = append(result, *s)
		}
	}
	sortSlots(result)
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, slot *model.ScheduleSlot, expectedVersion int) error {
	existing, ok := m.slots[slot.ID]
	if !ok || existing.Version != expectedVersion {
		return apperrors.ErrOptimisticLock
	}
	copied := *slot
	copied.Version = expectedVersion + 1
	copied.UpdatedAt = time.Now()
	m.slots[slot.ID] = &copied
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id uint) error {
	delete(m.slots, id)
	return nil
}

// sortSlots 与 SQL 排序保持一致: day_of_week ASC, start_time ASC
func sortSlots(slots []model.ScheduleSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[uint]*model.Assignment
	nextID      uint
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[uint]*model.Assignment), nextID: 1}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.ID == 0 {
		assignment.ID = m.nextID
		m.nextID++
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now()
	}
	m.assignments[assignment.ID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id uint) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByTeacher(_ context.Context, teacherID uint) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.TeacherID == teacherID {
			result = append(result, *a)
		}
	}
	sortAssignmentsDesc(result)
	return result, nil
}

func (m *mockAssignmentRepo) ListByStudent(_ context.Context, studentID uint) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.StudentID != nil && *a.StudentID == studentID {
			result = append(result, *a)
		}
	}
	sortAssignmentsDesc(result)
	return result, nil
}

func (m *mockAssignmentRepo) CountByTeacher(_ context.Context, teacherID uint) (int64, error) {
	var count int64
	for _, a := range m.assignments {
		if a.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

// sortAssignmentsDesc 与 SQL 排序保持一致: created_at DESC
func sortAssignmentsDesc(assignments []model.Assignment) {
	sort.Slice(assignments, func(i, j int) bool {
		if !assignments[i].CreatedAt.Equal(assignments[j].CreatedAt) {
			return assignments[i].CreatedAt.After(assignments[j].CreatedAt)
		}
		return assignments[i].ID > assignments[j].ID
	})
}

// ── Mock SubmissionRepository ──

// mockSubmissionRepo 持有 assignment mock 引用以模拟 Preload("Assignment")
type mockSubmissionRepo struct {
	submissions map[uint]*model.Submission
	nextID      uint
	assignments *mockAssignmentRepo
}

func newMockSubmissionRepo(assignments *mockAssignmentRepo) *mockSubmissionRepo {
	return &mockSubmissionRepo{
		submissions: make(map[uint]*model.Submission),
		nextID:      1,
		assignments: assignments,
	}
}

func (m *mockSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	if submission.ID == 0 {
		submission.ID = m.nextID
		m.nextID++
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	m.submissions[submission.ID] = submission
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id uint) (*model.Submission, error) {
	s, ok := m.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	if a, ok := m.assignments.assignments[s.AssignmentID]; ok {
		copied.Assignment = a
	}
	return &copied, nil
}

func (m *mockSubmissionRepo) ListByAssignment(_ context.Context, assignmentID uint) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockSubmissionRepo) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID uint) (*model.Submission, error) {
	var latest *model.Submission
	for _, s := range m.submissions {
		if s.AssignmentID != assignmentID || s.StudentID != studentID {
			continue
		}
		if latest == nil || s.SubmittedAt.After(latest.SubmittedAt) ||
			(s.SubmittedAt.Equal(latest.SubmittedAt) && s.ID > latest.ID) {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *mockSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	copied := *submission
	copied.Assignment = nil
	m.submissions[submission.ID] = &copied
	return nil
}

func (m *mockSubmissionRepo) CountByStudent(_ context.Context, studentID uint) (int64, error) {
	var count int64
	for _, s := range m.submissions {
		if s.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (m *mockSubmissionRepo) CountByTeacher(_ context.Context, teacherID uint) (int64, error) {
	var count int64
	for _, s := range m.submissions {
		if a, ok := m.assignments.assignments[s.AssignmentID]; ok && a.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

// ── 测试辅助：聚合全部 mock repo ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user       *mockUserRepo
	roster     *mockRosterRepo
	schedule   *mockScheduleRepo
	assignment *mockAssignmentRepo
	submission *mockSubmissionRepo
}

func newTestRepos() *testRepos {
	assignment := newMockAssignmentRepo()
	return &testRepos{
		user:       newMockUserRepo(),
		roster:     newMockRosterRepo(),
		schedule:   newMockScheduleRepo(),
		assignment: assignment,
		submission: newMockSubmissionRepo(assignment),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:       r.user,
		Roster:     r.roster,
		Schedule:   r.schedule,
		Assignment: r.assignment,
		Submission: r.submission,
	}
}

// bind 建立师生绑定
func (r *testRepos) bind(id, teacherID, studentID uint) {
	r.roster.bindings = append(r.roster.bindings, &model.TeacherStudent{
		ID:        id,
		TeacherID: teacherID,
		StudentID: studentID,
		Teacher:   r.user.users[teacherID],
		Student:   r.user.users[studentID],
	})
}
