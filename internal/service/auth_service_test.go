package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"eduboard/config"
	"eduboard/internal/dto"
	"eduboard/internal/model"
	"eduboard/pkg/jwt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "unit-test-secret-key-0123456789",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 30 * 24 * time.Hour,
		},
	}
}

func setupTestAuthService() (AuthService, *testRepos, *jwt.Manager) {
	repos := newTestRepos()
	cfg := testAuthConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos, jwtMgr
}

func seedCredentials(repos *testRepos, id uint, username, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     username,
		CreatedAt:    time.Now(),
	}
	repos.user.users[id] = u
	if id >= repos.user.nextID {
		repos.user.nextID = id + 1
	}
	return u
}

// ── Register ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, repos, jwtMgr := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "teacher1",
		Password: "password123",
		Role:     model.RoleTeacher,
		FullName: "王老师",
	})
	if err != nil {
		t.Fatalf("Register 失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("注册成功应直接签发 Token")
	}
	if resp.User.Role != model.RoleTeacher {
		t.Errorf("角色不匹配: %s", resp.User.Role)
	}

	// 密码以 bcrypt 哈希存储
	stored, _ := repos.user.GetByUsername(context.Background(), "teacher1")
	if stored.PasswordHash == "password123" {
		t.Error("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
		t.Error("存储的哈希应能校验原密码")
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil || claims.TokenType != "access" {
		t.Errorf("AccessToken 解析失败: %v", err)
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	seedCredentials(repos, 1, "teacher1", "password123", model.RoleTeacher)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "teacher1",
		Password: "password123",
		Role:     model.RoleStudent,
		FullName: "小明",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken, 实际 %v", err)
	}
}

// ── Login ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	seedCredentials(repos, 1, "student1", "password123", model.RoleStudent)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student1",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	if resp.User.ID != 1 || resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("响应不匹配: %+v", resp)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	seedCredentials(repos, 1, "student1", "password123", model.RoleStudent)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student1",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials, 实际 %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	// 不存在的用户与密码错误返回同一错误，避免枚举用户名
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "ghost",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials, 实际 %v", err)
	}
}

// ── RefreshToken ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	seedCredentials(repos, 1, "student1", "password123", model.RoleStudent)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student1",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 失败: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.User.ID != 1 {
		t.Errorf("刷新结果不匹配: %+v", refreshed)
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, repos, jwtMgr := setupTestAuthService()
	seedCredentials(repos, 1, "student1", "password123", model.RoleStudent)

	accessToken, _ := jwtMgr.GenerateAccessToken(1, model.RoleStudent)
	_, err := svc.RefreshToken(context.Background(), accessToken)
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("access token 不应可用于刷新, 实际 %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh, 实际 %v", err)
	}
}

// ── Logout ──

func TestAuthService_Logout_DegradesWithoutRedis(t *testing.T) {
	svc, _, jwtMgr := setupTestAuthService()

	token, _ := jwtMgr.GenerateAccessToken(1, model.RoleStudent)
	claims, _ := jwtMgr.ParseToken(token)

	// rdb 为 nil：登出降级为无操作而非报错
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Errorf("Logout 应降级成功, 实际 %v", err)
	}
}

// ── ChangePassword ──

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repos, _ := setupTestAuthService()
	seedCredentials(repos, 1, "student1", "old-password", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), 1, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-password-1",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("原密码错误应拒绝, 实际 %v", err)
	}

	err = svc.ChangePassword(context.Background(), 1, &dto.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password-1",
	})
	if err != nil {
		t.Fatalf("ChangePassword 失败: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "student1",
		Password: "new-password-1",
	}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}
