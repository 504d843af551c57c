package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

// ── 测试辅助 ──

func setupTestStudentService() (StudentService, *mockStudentRepo, *mockClassroomRepo) {
	studentRepo := newMockStudentRepo()
	classRepo := newMockClassroomRepo(studentRepo)
	classRepo.grades[1] = &model.Grade{GradeID: 1, GradeNumber: 7}
	classRepo.classrooms[1] = &model.Classroom{ClassID: 1, GradeID: 1, ClassName: "7A"}

	repo := &repository.Repository{
		Student:   studentRepo,
		Classroom: classRepo,
	}
	svc := NewStudentService(repo, zap.NewNop())
	return svc, studentRepo, classRepo
}

// ── Create 测试 ──

func TestStudentService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestStudentService()

	result, err := svc.Create(context.Background(), &dto.CreateStudentRequest{
		StudentNumber: "S001",
		FirstName:     "一",
		LastName:      "学生",
		ClassID:       1,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.StudentNumber != "S001" {
		t.Errorf("期望学号=S001，实际=%s", result.StudentNumber)
	}
	if !result.IsActive {
		t.Error("新建学生应为在册状态")
	}
}

func TestStudentService_Create_DuplicateNumber(t *testing.T) {
	svc, studentRepo, _ := setupTestStudentService()
	studentRepo.students[1] = &model.Student{StudentID: 1, StudentNumber: "S001", ClassID: 1, IsActive: true}

	_, err := svc.Create(context.Background(), &dto.CreateStudentRequest{
		StudentNumber: "S001",
		FirstName:     "二",
		LastName:      "学生",
		ClassID:       1,
	})
	if !errors.Is(err, ErrStudentNumberDuplicate) {
		t.Errorf("期望 ErrStudentNumberDuplicate，实际: %v", err)
	}
}

func TestStudentService_Create_ClassNotFound(t *testing.T) {
	svc, _, _ := setupTestStudentService()

	_, err := svc.Create(context.Background(), &dto.CreateStudentRequest{
		StudentNumber: "S001",
		FirstName:     "一",
		LastName:      "学生",
		ClassID:       99,
	})
	if !errors.Is(err, ErrStudentClassNotFound) {
		t.Errorf("期望 ErrStudentClassNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestStudentService_Update_Partial(t *testing.T) {
	svc, studentRepo, _ := setupTestStudentService()
	studentRepo.students[1] = &model.Student{StudentID: 1, StudentNumber: "S001", FirstName: "一", LastName: "学生", ClassID: 1, IsActive: true}

	newName := "壹"
	result, err := svc.Update(context.Background(), 1, &dto.UpdateStudentRequest{FirstName: &newName})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.FirstName != "壹" {
		t.Errorf("期望FirstName=壹，实际=%s", result.FirstName)
	}
	if result.StudentNumber != "S001" {
		t.Errorf("未更新字段不应变化，实际=%s", result.StudentNumber)
	}
}

func TestStudentService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestStudentService()

	newName := "壹"
	_, err := svc.Update(context.Background(), 99, &dto.UpdateStudentRequest{FirstName: &newName})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// ── Deactivate 测试 ──

func TestStudentService_Deactivate_SoftDelete(t *testing.T) {
	svc, studentRepo, _ := setupTestStudentService()
	studentRepo.students[1] = &model.Student{StudentID: 1, StudentNumber: "S001", ClassID: 1, IsActive: true}

	if err := svc.Deactivate(context.Background(), 1); err != nil {
		t.Fatalf("Deactivate 应成功: %v", err)
	}
	// 软删除：记录保留，仅移出在册名单
	if _, ok := studentRepo.students[1]; !ok {
		t.Fatal("软删除不应移除记录")
	}
	if studentRepo.students[1].IsActive {
		t.Error("学生应被置为非在册")
	}
}

func TestStudentService_Deactivate_NotFound(t *testing.T) {
	svc, _, _ := setupTestStudentService()

	err := svc.Deactivate(context.Background(), 99)
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// ── ListByClass 测试 ──

func TestStudentService_ListByClass_ExcludesInactive(t *testing.T) {
	svc, studentRepo, _ := setupTestStudentService()
	studentRepo.students[1] = &model.Student{StudentID: 1, StudentNumber: "S001", ClassID: 1, IsActive: true}
	studentRepo.students[2] = &model.Student{StudentID: 2, StudentNumber: "S002", ClassID: 1, IsActive: false}

	result, err := svc.ListByClass(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByClass 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望 1 名在册学生，实际=%d", len(result))
	}
	if result[0].StudentNumber != "S001" {
		t.Errorf("期望学号=S001，实际=%s", result[0].StudentNumber)
	}
}
