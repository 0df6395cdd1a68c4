package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"eduboard/internal/dto"
)

func setupTestAssignmentService() (AssignmentService, *testRepos) {
	repos := newTestRepos()
	svc := NewAssignmentService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

// ── Create ──

func TestAssignmentService_Create_ClassWide(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	resp, err := svc.Create(context.Background(), 1, &dto.CreateAssignmentRequest{
		Title:       "第一章习题",
		Description: "完成课后 1-10 题",
		DueDate:     time.Now().Add(7 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.StudentID != nil {
		t.Error("全班作业 student_id 应为空")
	}
	if resp.Status != "pending" {
		t.Errorf("初始状态应为 pending, 实际 %s", resp.Status)
	}
}

func TestAssignmentService_Create_DedicatedRequiresBinding(t *testing.T) {
	svc, repos := setupTestAssignmentService()

	_, err := svc.Create(context.Background(), 1, &dto.CreateAssignmentRequest{
		Title:       "定向作业",
		Description: "单独练习",
		DueDate:     time.Now().Add(24 * time.Hour),
		StudentID:   uintPtr(2),
	})
	if !errors.Is(err, ErrStudentNotInRoster) {
		t.Errorf("期望 ErrStudentNotInRoster, 实际 %v", err)
	}

	repos.bind(1, 1, 2)
	resp, err := svc.Create(context.Background(), 1, &dto.CreateAssignmentRequest{
		Title:       "定向作业",
		Description: "单独练习",
		DueDate:     time.Now().Add(24 * time.Hour),
		StudentID:   uintPtr(2),
	})
	if err != nil {
		t.Fatalf("绑定后 Create 应成功: %v", err)
	}
	if resp.StudentID == nil || *resp.StudentID != 2 {
		t.Error("定向作业应保留 student_id")
	}
}

// ── List ──

func TestAssignmentService_ListForStudent_AttachesLatestSubmission(t *testing.T) {
	svc, repos := setupTestAssignmentService()
	repos.bind(1, 1, 2)
	seedAssignment(repos, 1, 1, uintPtr(2))
	seedAssignment(repos, 2, 1, uintPtr(3)) // 定向给他人
	first := seedSubmission(repos, 1, 1, 2)
	first.SubmittedAt = time.Now().Add(-time.Hour)
	latest := seedSubmission(repos, 2, 1, 2)
	latest.Content = "第二次提交"

	list, err := svc.ListForStudent(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListForStudent 失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("学生应只看到定向给自己的作业, 实际 %d 条", len(list))
	}
	if list[0].Submission == nil {
		t.Fatal("应附带本人最近一次提交")
	}
	if list[0].Submission.Content != "第二次提交" {
		t.Errorf("应取最近一次提交, 实际 %q", list[0].Submission.Content)
	}
}

func TestAssignmentService_ListForStudent_NoSubmission(t *testing.T) {
	svc, repos := setupTestAssignmentService()
	seedAssignment(repos, 1, 1, uintPtr(2))

	list, err := svc.ListForStudent(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListForStudent 失败: %v", err)
	}
	if len(list) != 1 || list[0].Submission != nil {
		t.Error("未提交时 submission 应为空")
	}
}

// ── Submit ──

func TestAssignmentService_Submit_DedicatedOnlyByTarget(t *testing.T) {
	svc, repos := setupTestAssignmentService()
	seedAssignment(repos, 1, 1, uintPtr(2))

	_, err := svc.Submit(context.Background(), 1, 3, &dto.SubmitAssignmentRequest{Content: "x"})
	if !errors.Is(err, ErrAssignmentForbidden) {
		t.Errorf("非目标学生提交定向作业, 期望 ErrAssignmentForbidden, 实际 %v", err)
	}

	resp, err := svc.Submit(context.Background(), 1, 2, &dto.SubmitAssignmentRequest{Content: "我的答案"})
	if err != nil {
		t.Fatalf("目标学生提交失败: %v", err)
	}
	if resp.Content != "我的答案" || resp.IsReviewed {
		t.Errorf("提交内容不匹配: %+v", resp)
	}
}

func TestAssignmentService_Submit_ClassWideRequiresBinding(t *testing.T) {
	svc, repos := setupTestAssignmentService()
	seedAssignment(repos, 1, 1, nil)

	_, err := svc.Submit(context.Background(), 1, 2, &dto.SubmitAssignmentRequest{Content: "x"})
	if !errors.Is(err, ErrAssignmentForbidden) {
		t.Errorf("未绑定学生提交全班作业, 期望 ErrAssignmentForbidden, 实际 %v", err)
	}

	repos.bind(1, 1, 2)
	if _, err := svc.Submit(context.Background(), 1, 2, &dto.SubmitAssignmentRequest{Content: "x"}); err != nil {
		t.Fatalf("绑定后提交应成功: %v", err)
	}
}

func TestAssignmentService_Submit_AssignmentNotFound(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	_, err := svc.Submit(context.Background(), 42, 2, &dto.SubmitAssignmentRequest{Content: "x"})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound, 实际 %v", err)
	}
}

func TestAssignmentService_Submit_ResubmissionAllowed(t *testing.T) {
	svc, repos := setupTestAssignmentService()
	repos.bind(1, 1, 2)
	seedAssignment(repos, 1, 1, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), 1, 2, &dto.SubmitAssignmentRequest{Content: "v"}); err != nil {
			t.Fatalf("第 %d 次提交失败: %v", i+1, err)
		}
	}
	if len(repos.submission.submissions) != 2 {
		t.Errorf("重复提交应保留历史, 期望 2 条, 实际 %d", len(repos.submission.submissions))
	}
}

// ── ListSubmissions / Review ──

func TestAssignmentService_ListSubmissions_OwnershipEnforced(t *testing.T) {
	svc, repos := setupTestAssignmentService()
	seedAssignment(repos, 1, 1, nil)
	seedSubmission(repos, 1, 1, 2)

	_, err := svc.ListSubmissions(context.Background(), 1, 9)
	if !errors.Is(err, ErrAssignmentForbidden) {
		t.Errorf("期望 ErrAssignmentForbidden, 实际 %v", err)
	}

	list, err := svc.ListSubmissions(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("ListSubmissions 失败: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("期望 1 条提交, 实际 %d", len(list))
	}
}

func TestAssignmentService_Review_Success(t *testing.T) {
	svc, repos := setupTestAssignmentService()
	seedAssignment(repos, 1, 1, nil)
	seedSubmission(repos, 1, 1, 2)

	resp, err := svc.Review(context.Background(), 1, 1, &dto.ReviewSubmissionRequest{
		ReviewContent: "写得不错，注意第 3 题",
	})
	if err != nil {
		t.Fatalf("Review 失败: %v", err)
	}
	if !resp.IsReviewed || resp.ReviewContent == nil || *resp.ReviewContent != "写得不错，注意第 3 题" {
		t.Errorf("点评结果不匹配: %+v", resp)
	}
	if resp.ReviewedAt == nil {
		t.Error("reviewed_at 应被设置")
	}
}

func TestAssignmentService_Review_NotOwner(t *testing.T) {
	svc, repos := setupTestAssignmentService()
	seedAssignment(repos, 1, 1, nil)
	seedSubmission(repos, 1, 1, 2)

	_, err := svc.Review(context.Background(), 1, 9, &dto.ReviewSubmissionRequest{ReviewContent: "x"})
	if !errors.Is(err, ErrAssignmentForbidden) {
		t.Errorf("期望 ErrAssignmentForbidden, 实际 %v", err)
	}
}

func TestAssignmentService_Review_SubmissionNotFound(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	_, err := svc.Review(context.Background(), 42, 1, &dto.ReviewSubmissionRequest{ReviewContent: "x"})
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("期望 ErrSubmissionNotFound, 实际 %v", err)
	}
}
