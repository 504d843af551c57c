package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

// ── 测试辅助 ──

type scoreTestEnv struct {
	svc      ScoreService
	scores   *mockScoreRepo
	students *mockStudentRepo
	subjects *mockSubjectRepo
	terms    *mockTermRepo
	classes  *mockClassroomRepo
}

// setupTestScoreService 预置一个 2026 学年（3 学期）、7 年级 1 班、
// 两门科目（数学、英语）和两名在册学生
func setupTestScoreService() *scoreTestEnv {
	termRepo := newMockTermRepo()
	studentRepo := newMockStudentRepo()
	subjectRepo := newMockSubjectRepo()
	classRepo := newMockClassroomRepo(studentRepo)
	scoreRepo := newMockScoreRepo(subjectRepo, studentRepo, termRepo, classRepo)

	year := &model.AcademicYear{AcademicYearID: 1, YearLabel: 2026}
	termRepo.years[1] = year
	for i := 1; i <= 3; i++ {
		termRepo.add(model.Term{
			TermID:         i,
			AcademicYearID: 1,
			TermNumber:     i,
			StartDate:      time.Date(2026, time.Month(i*3), 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, time.Month(i*3+2), 28, 0, 0, 0, 0, time.UTC),
		})
	}

	classRepo.grades[1] = &model.Grade{GradeID: 1, GradeNumber: 7}
	classRepo.classrooms[1] = &model.Classroom{ClassID: 1, GradeID: 1, ClassName: "7A"}

	subjectRepo.subjects[1] = &model.Subject{SubjectID: 1, GradeID: 1, SubjectName: "数学"}
	subjectRepo.subjects[2] = &model.Subject{SubjectID: 2, GradeID: 1, SubjectName: "英语"}

	studentRepo.students[1] = &model.Student{StudentID: 1, StudentNumber: "S001", FirstName: "一", LastName: "学生", ClassID: 1, IsActive: true}
	studentRepo.students[2] = &model.Student{StudentID: 2, StudentNumber: "S002", FirstName: "二", LastName: "学生", ClassID: 1, IsActive: true}

	repo := &repository.Repository{
		Year:      newMockYearRepo(termRepo),
		Term:      termRepo,
		Classroom: classRepo,
		Subject:   subjectRepo,
		Student:   studentRepo,
		Score:     scoreRepo,
	}

	return &scoreTestEnv{
		svc:      NewScoreService(repo, zap.NewNop()),
		scores:   scoreRepo,
		students: studentRepo,
		subjects: subjectRepo,
		terms:    termRepo,
		classes:  classRepo,
	}
}

func fptr(v float64) *float64 { return &v }

func upsertReq(entries ...dto.ScoreEntry) *dto.UpsertScoresRequest {
	return &dto.UpsertScoresRequest{Scores: entries}
}

// ── UpsertScores 测试 ──

func TestScoreService_Upsert_Success(t *testing.T) {
	env := setupTestScoreService()

	req := upsertReq(
		dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(80)},
		dto.ScoreEntry{SubjectID: 2, ScoreValue: fptr(60)},
	)
	if err := env.svc.UpsertScores(context.Background(), 1, 2026, 1, 10, req); err != nil {
		t.Fatalf("UpsertScores 应成功: %v", err)
	}
	if len(env.scores.scores) != 2 {
		t.Fatalf("期望写入 2 行，实际=%d", len(env.scores.scores))
	}
	// 批内共享同一录入时间
	if !env.scores.scores[0].RecordedAt.Equal(env.scores.scores[1].RecordedAt) {
		t.Error("同一批次的 recorded_at 应相同")
	}
}

func TestScoreService_Upsert_Idempotent(t *testing.T) {
	env := setupTestScoreService()
	ctx := context.Background()

	if err := env.svc.UpsertScores(ctx, 1, 2026, 1, 10, upsertReq(dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(80)})); err != nil {
		t.Fatalf("首次提交应成功: %v", err)
	}
	if err := env.svc.UpsertScores(ctx, 1, 2026, 1, 10, upsertReq(dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(95)})); err != nil {
		t.Fatalf("重复提交应成功: %v", err)
	}

	// 覆盖更新，不追加行
	if len(env.scores.scores) != 1 {
		t.Fatalf("重复提交不应追加行，实际=%d", len(env.scores.scores))
	}
	if env.scores.scores[0].ScoreValue != 95 {
		t.Errorf("期望分数被覆盖为 95，实际=%v", env.scores.scores[0].ScoreValue)
	}
}

func TestScoreService_Upsert_EmptyBatch(t *testing.T) {
	env := setupTestScoreService()

	err := env.svc.UpsertScores(context.Background(), 1, 2026, 1, 10, upsertReq())
	if !errors.Is(err, ErrScoreBatchEmpty) {
		t.Errorf("期望 ErrScoreBatchEmpty，实际: %v", err)
	}
}

func TestScoreService_Upsert_TermNotFound(t *testing.T) {
	env := setupTestScoreService()

	err := env.svc.UpsertScores(context.Background(), 1, 2030, 1, 10, upsertReq(dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(80)}))
	if !errors.Is(err, ErrScoreTermNotFound) {
		t.Errorf("期望 ErrScoreTermNotFound，实际: %v", err)
	}
}

func TestScoreService_Upsert_UnknownSubject(t *testing.T) {
	env := setupTestScoreService()

	err := env.svc.UpsertScores(context.Background(), 1, 2026, 1, 10, upsertReq(
		dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(80)},
		dto.ScoreEntry{SubjectID: 99, ScoreValue: fptr(70)},
	))
	if !errors.Is(err, ErrScoreSubjectUnknown) {
		t.Errorf("期望 ErrScoreSubjectUnknown，实际: %v", err)
	}
	// 未知科目应在写库前拒绝
	if len(env.scores.scores) != 0 {
		t.Errorf("校验失败时不应写入任何行，实际=%d", len(env.scores.scores))
	}
}

func TestScoreService_Upsert_BatchAtomic(t *testing.T) {
	env := setupTestScoreService()
	env.scores.failAfter = 2

	err := env.svc.UpsertScores(context.Background(), 1, 2026, 1, 10, upsertReq(
		dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(80)},
		dto.ScoreEntry{SubjectID: 2, ScoreValue: fptr(60)},
	))
	if !errors.Is(err, ErrScorePersist) {
		t.Fatalf("期望 ErrScorePersist，实际: %v", err)
	}
	if len(env.scores.scores) != 0 {
		t.Errorf("整批失败后不应残留部分行，实际=%d", len(env.scores.scores))
	}
}

// ── GetStudentScoresByYear 测试 ──

func TestScoreService_StudentYear_ZeroSynthesis(t *testing.T) {
	env := setupTestScoreService()
	ctx := context.Background()

	// 学期1 录两科，学期2 只录数学
	if err := env.svc.UpsertScores(ctx, 1, 2026, 1, 10, upsertReq(
		dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(80)},
		dto.ScoreEntry{SubjectID: 2, ScoreValue: fptr(60)},
	)); err != nil {
		t.Fatalf("UpsertScores 应成功: %v", err)
	}
	if err := env.svc.UpsertScores(ctx, 1, 2026, 2, 10, upsertReq(
		dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(90)},
	)); err != nil {
		t.Fatalf("UpsertScores 应成功: %v", err)
	}

	result, err := env.svc.GetStudentScoresByYear(ctx, 1, 2026)
	if err != nil {
		t.Fatalf("GetStudentScoresByYear 应成功: %v", err)
	}

	if len(result.Subjects) != 2 {
		t.Fatalf("期望 2 门科目，实际=%d", len(result.Subjects))
	}
	if len(result.Terms) != 2 {
		t.Fatalf("期望 2 个学期行，实际=%d", len(result.Terms))
	}

	// 学期1: (80+60)/2 = 70
	if result.Terms[0].Overall != 70 {
		t.Errorf("学期1 期望 overall=70，实际=%v", result.Terms[0].Overall)
	}
	// 学期2: 英语缺录补 0，(90+0)/2 = 45
	if result.Terms[1].Overall != 45 {
		t.Errorf("学期2 期望 overall=45，实际=%v", result.Terms[1].Overall)
	}
	// 学年: (70+45)/2 = 57.5
	if result.Overall != 57.5 {
		t.Errorf("学年期望 overall=57.5，实际=%v", result.Overall)
	}

	// 合成单元格: score_id 为 null、value 为 0
	englishCell, ok := result.Terms[1].Scores[2]
	if !ok {
		t.Fatal("学期2 应包含英语的合成单元格")
	}
	if englishCell.ScoreID != nil {
		t.Error("合成单元格的 score_id 应为 null")
	}
	if englishCell.Value != 0 {
		t.Errorf("合成单元格的 value 应为 0，实际=%v", englishCell.Value)
	}
}

func TestScoreService_StudentYear_NoScores(t *testing.T) {
	env := setupTestScoreService()

	result, err := env.svc.GetStudentScoresByYear(context.Background(), 1, 2026)
	if err != nil {
		t.Fatalf("无成绩时不应报错: %v", err)
	}
	if len(result.Subjects) != 0 || len(result.Terms) != 0 {
		t.Error("无成绩时科目与学期列表应为空")
	}
	if result.Overall != 0 {
		t.Errorf("无成绩时学年 overall 应为 0，实际=%v", result.Overall)
	}
}

// ── GetClassScoresByTerm 测试 ──

func TestScoreService_ClassTerm_FullGrid(t *testing.T) {
	env := setupTestScoreService()
	ctx := context.Background()

	// 只有学生 1 有成绩，且只录了数学
	if err := env.svc.UpsertScores(ctx, 1, 2026, 1, 10, upsertReq(
		dto.ScoreEntry{SubjectID: 1, ScoreValue: fptr(80)},
	)); err != nil {
		t.Fatalf("UpsertScores 应成功: %v", err)
	}

	result, err := env.svc.GetClassScoresByTerm(ctx, 1, 2026, 1)
	if err != nil {
		t.Fatalf("GetClassScoresByTerm 应成功: %v", err)
	}

	// 分母为该年级全部科目
	if len(result.Subjects) != 2 {
		t.Fatalf("期望 2 门科目，实际=%d", len(result.Subjects))
	}
	// 花名册完整：无成绩学生也占一行
	if len(result.Students) != 2 {
		t.Fatalf("期望 2 名学生，实际=%d", len(result.Students))
	}

	for _, student := range result.Students {
		switch student.StudentID {
		case 1:
			// (80+0)/2 = 40
			if student.Overall != 40 {
				t.Errorf("学生1 期望 overall=40，实际=%v", student.Overall)
			}
			if student.Scores["英语"] != 0 {
				t.Errorf("学生1 英语应补 0，实际=%v", student.Scores["英语"])
			}
		case 2:
			if student.Overall != 0 {
				t.Errorf("学生2 期望 overall=0，实际=%v", student.Overall)
			}
			if len(student.Scores) != 2 {
				t.Errorf("学生2 应有完整科目列，实际=%d", len(student.Scores))
			}
		}
	}

	if result.Term.TermNumber != 1 || result.Term.YearLabel != 2026 {
		t.Errorf("学期引用回显不正确: %+v", result.Term)
	}
}

func TestScoreService_ClassTerm_TermNotFound(t *testing.T) {
	env := setupTestScoreService()

	_, err := env.svc.GetClassScoresByTerm(context.Background(), 1, 2026, 9)
	if !errors.Is(err, ErrScoreTermNotFound) {
		t.Errorf("期望 ErrScoreTermNotFound，实际: %v", err)
	}
}

func TestScoreService_ClassTerm_ClassroomNotFound(t *testing.T) {
	env := setupTestScoreService()

	_, err := env.svc.GetClassScoresByTerm(context.Background(), 99, 2026, 1)
	if !errors.Is(err, ErrScoreClassroomNotFound) {
		t.Errorf("期望 ErrScoreClassroomNotFound，实际: %v", err)
	}
}

func TestScoreService_ClassTerm_EmptyRoster(t *testing.T) {
	env := setupTestScoreService()
	// 清空班级
	for id := range env.students.students {
		delete(env.students.students, id)
	}

	result, err := env.svc.GetClassScoresByTerm(context.Background(), 1, 2026, 1)
	if err != nil {
		t.Fatalf("空班级不应报错: %v", err)
	}
	if len(result.Students) != 0 {
		t.Errorf("空班级学生列表应为空，实际=%d", len(result.Students))
	}
}
