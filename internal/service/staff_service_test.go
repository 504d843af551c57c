package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

// ── 测试辅助 ──

func setupTestStaffService() (StaffService, *mockUserRepo) {
	userRepo := newMockUserRepo()
	studentRepo := newMockStudentRepo()
	classRepo := newMockClassroomRepo(studentRepo)
	classRepo.grades[1] = &model.Grade{GradeID: 1, GradeNumber: 7}
	classRepo.classrooms[1] = &model.Classroom{ClassID: 1, GradeID: 1, ClassName: "7A"}

	repo := &repository.Repository{
		User:      userRepo,
		Classroom: classRepo,
	}
	svc := NewStaffService(repo, zap.NewNop())
	return svc, userRepo
}

// ── Create 测试 ──

func TestStaffService_Create_HashesPassword(t *testing.T) {
	svc, userRepo := setupTestStaffService()

	result, err := svc.Create(context.Background(), &dto.CreateStaffRequest{
		StaffID:   "T1001",
		Password:  "password123",
		FirstName: "强",
		LastName:  "王",
		RoleID:    model.RoleIDTeacher,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Role != model.RoleTeacher {
		t.Errorf("期望Role=teacher，实际=%s", result.Role)
	}

	stored := userRepo.users[result.UserID]
	if stored.PasswordHash == "password123" {
		t.Fatal("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("存储的散列应能校验原密码: %v", err)
	}
}

func TestStaffService_Create_DuplicateStaffID(t *testing.T) {
	svc, userRepo := setupTestStaffService()
	userRepo.users[1] = &model.User{UserID: 1, StaffID: "T1001", RoleID: model.RoleIDTeacher}

	_, err := svc.Create(context.Background(), &dto.CreateStaffRequest{
		StaffID:   "T1001",
		Password:  "password123",
		FirstName: "强",
		LastName:  "王",
		RoleID:    model.RoleIDTeacher,
	})
	if !errors.Is(err, ErrStaffIDDuplicate) {
		t.Errorf("期望 ErrStaffIDDuplicate，实际: %v", err)
	}
}

func TestStaffService_Create_AssignedClassNotFound(t *testing.T) {
	svc, _ := setupTestStaffService()

	badClass := 99
	_, err := svc.Create(context.Background(), &dto.CreateStaffRequest{
		StaffID:         "T1001",
		Password:        "password123",
		FirstName:       "强",
		LastName:        "王",
		RoleID:          model.RoleIDTeacher,
		AssignedClassID: &badClass,
	})
	if !errors.Is(err, ErrStaffClassNotFound) {
		t.Errorf("期望 ErrStaffClassNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestStaffService_Update_RehashesPassword(t *testing.T) {
	svc, userRepo := setupTestStaffService()
	userRepo.users[1] = &model.User{UserID: 1, StaffID: "T1001", PasswordHash: "old-hash", RoleID: model.RoleIDTeacher, IsActive: true}

	newPassword := "newpassword456"
	if _, err := svc.Update(context.Background(), 1, &dto.UpdateStaffRequest{Password: &newPassword}); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	stored := userRepo.users[1]
	if stored.PasswordHash == "old-hash" {
		t.Fatal("密码散列应被更新")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(newPassword)); err != nil {
		t.Errorf("新散列应能校验新密码: %v", err)
	}
}

func TestStaffService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestStaffService()

	name := "新"
	_, err := svc.Update(context.Background(), 99, &dto.UpdateStaffRequest{FirstName: &name})
	if !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("期望 ErrStaffNotFound，实际: %v", err)
	}
}

// ── Deactivate 测试 ──

func TestStaffService_Deactivate_Success(t *testing.T) {
	svc, userRepo := setupTestStaffService()
	userRepo.users[1] = &model.User{UserID: 1, StaffID: "T1001", RoleID: model.RoleIDTeacher, IsActive: true}

	if err := svc.Deactivate(context.Background(), 1); err != nil {
		t.Fatalf("Deactivate 应成功: %v", err)
	}
	if userRepo.users[1].IsActive {
		t.Error("账号应被停用")
	}
}
