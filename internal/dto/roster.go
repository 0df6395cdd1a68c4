package dto

// ── 名单与统计 DTO ──

// StatsResponse 仪表盘统计
// pending = assignments - submissions，提交数超过作业数时保留负值（诊断用，不截断）
type StatsResponse struct {
	Assignments int64 `json:"assignments"`
	Submissions int64 `json:"submissions"`
	Completed   int64 `json:"completed"`
	Pending     int64 `json:"pending"`
}

// RosterStudentResponse 教师名单中的学生条目
type RosterStudentResponse struct {
	ID          uint   `json:"id"`
	FullName    string `json:"full_name"`
	Avatar      string `json:"avatar"`
	Submissions int64  `json:"submissions"`
}
