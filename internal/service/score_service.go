package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

// ── 成绩模块业务错误 ──

var (
	ErrScoreTermNotFound      = errors.New("指定学年与学期不存在")
	ErrScoreClassroomNotFound = errors.New("班级不存在")
	ErrScoreBatchEmpty        = errors.New("成绩列表不能为空")
	ErrScoreSubjectUnknown    = errors.New("成绩中存在未知科目")
	ErrScorePersist           = errors.New("成绩写入失败")
)

// ScoreService 成绩业务接口
//
// 设计说明：
//   - 提交走覆盖式 upsert：(学生, 科目, 学期) 三元组唯一，重复提交
//     更新分数、录入人和录入时间，不追加行。整批一个事务。
//   - recorded_at 每次调用只取一次，批内所有行共享同一时间戳。
//   - 聚合永远在读路径现算，不落任何派生数据。
type ScoreService interface {
	UpsertScores(ctx context.Context, studentID, yearLabel, termNumber, teacherUserID int, req *dto.UpsertScoresRequest) error
	GetStudentScoresByYear(ctx context.Context, studentID, yearLabel int) (*dto.StudentYearScoresResponse, error)
	GetClassScoresByTerm(ctx context.Context, classID, yearLabel, termNumber int) (*dto.ClassTermScoresResponse, error)
}

type scoreService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScoreService 创建 ScoreService 实例
func NewScoreService(repo *repository.Repository, logger *zap.Logger) ScoreService {
	return &scoreService{repo: repo, logger: logger}
}

// ────────────────────── UpsertScores ──────────────────────

func (s *scoreService) UpsertScores(ctx context.Context, studentID, yearLabel, termNumber, teacherUserID int, req *dto.UpsertScoresRequest) error {
	if len(req.Scores) == 0 {
		return ErrScoreBatchEmpty
	}

	term, err := s.repo.Term.GetByYearAndNumber(ctx, yearLabel, termNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScoreTermNotFound
		}
		s.logger.Error("解析学期失败", zap.Int("year", yearLabel), zap.Int("term", termNumber), zap.Error(err))
		return err
	}

	// 校验科目均存在，未知科目在写库前拒绝
	subjectIDs := make([]int, 0, len(req.Scores))
	for _, entry := range req.Scores {
		subjectIDs = append(subjectIDs, entry.SubjectID)
	}
	known, err := s.repo.Subject.ListByIDs(ctx, subjectIDs)
	if err != nil {
		s.logger.Error("查询科目失败", zap.Error(err))
		return err
	}
	knownSet := make(map[int]struct{}, len(known))
	for i := range known {
		knownSet[known[i].SubjectID] = struct{}{}
	}
	for _, entry := range req.Scores {
		if _, ok := knownSet[entry.SubjectID]; !ok {
			return ErrScoreSubjectUnknown
		}
	}

	// 同一批次共享一个录入时间戳
	recordedAt := time.Now()

	scores := make([]model.Score, 0, len(req.Scores))
	for _, entry := range req.Scores {
		scores = append(scores, model.Score{
			StudentID:     studentID,
			SubjectID:     entry.SubjectID,
			TermID:        term.TermID,
			TeacherUserID: teacherUserID,
			ScoreValue:    *entry.ScoreValue,
			RecordedAt:    recordedAt,
		})
	}

	if err := s.repo.Score.UpsertBatch(ctx, scores); err != nil {
		s.logger.Error("成绩批量写入失败",
			zap.Int("student_id", studentID),
			zap.Int("term_id", term.TermID),
			zap.Int("count", len(scores)),
			zap.Error(err),
		)
		return ErrScorePersist
	}

	return nil
}

// ────────────────────── GetStudentScoresByYear ──────────────────────

// GetStudentScoresByYear 学生×学年视图：科目 × 学期矩阵。
//
// 科目集合取该生当年成绩行中首次出现的顺序；某学期缺某科目时
// 合成 0 分单元格（score_id 为 null），保证每个学期行的分母一致。
// 学年 overall 为各学期 overall 的简单平均，不按科目数加权。
func (s *scoreService) GetStudentScoresByYear(ctx context.Context, studentID, yearLabel int) (*dto.StudentYearScoresResponse, error) {
	rows, err := s.repo.Score.ListByStudentAndYear(ctx, studentID, yearLabel)
	if err != nil {
		s.logger.Error("查询学生成绩失败", zap.Int("student_id", studentID), zap.Int("year", yearLabel), zap.Error(err))
		return nil, err
	}

	// 科目首见顺序
	subjects := make([]dto.SubjectRef, 0)
	seen := make(map[int]struct{})
	for _, row := range rows {
		if _, ok := seen[row.SubjectID]; !ok {
			seen[row.SubjectID] = struct{}{}
			subjects = append(subjects, dto.SubjectRef{SubjectID: row.SubjectID, Name: row.SubjectName})
		}
	}

	// 按学期分组；行已按 term_number 升序
	type termGroup struct {
		termID     int
		termNumber int
		cells      map[int]dto.ScoreCell
	}
	groups := make([]*termGroup, 0, 3)
	byNumber := make(map[int]*termGroup)
	for _, row := range rows {
		g, ok := byNumber[row.TermNumber]
		if !ok {
			g = &termGroup{termID: row.TermID, termNumber: row.TermNumber, cells: make(map[int]dto.ScoreCell)}
			byNumber[row.TermNumber] = g
			groups = append(groups, g)
		}
		scoreID := row.ScoreID
		g.cells[row.SubjectID] = dto.ScoreCell{ScoreID: &scoreID, Value: row.ScoreValue}
	}

	terms := make([]dto.TermScores, 0, len(groups))
	termOveralls := make([]float64, 0, len(groups))
	for _, g := range groups {
		values := make([]float64, 0, len(subjects))
		for _, subject := range subjects {
			cell, ok := g.cells[subject.SubjectID]
			if !ok {
				// 该学期未录该科目：补 0 单元格
				cell = dto.ScoreCell{ScoreID: nil, Value: 0}
				g.cells[subject.SubjectID] = cell
			}
			values = append(values, cell.Value)
		}
		overall := *overallAverage(values, len(subjects), zeroFill)
		termOveralls = append(termOveralls, overall)
		terms = append(terms, dto.TermScores{
			TermID:     g.termID,
			TermNumber: g.termNumber,
			Overall:    overall,
			Scores:     g.cells,
		})
	}

	return &dto.StudentYearScoresResponse{
		StudentID: studentID,
		Year:      yearLabel,
		Subjects:  subjects,
		Terms:     terms,
		Overall:   *overallAverage(termOveralls, len(termOveralls), zeroFill),
	}, nil
}

// ────────────────────── GetClassScoresByTerm ──────────────────────

// GetClassScoresByTerm 班级×学期视图：科目 × 学生矩阵。
//
// 分母与花名册都取完整集合：科目为该年级全部科目（按名称序），
// 学生为班级全部在册学生（按姓氏、名字序）——没有任何成绩的学生
// 也占一行，缺失科目一律补 0。空班级返回空学生列表而非错误。
func (s *scoreService) GetClassScoresByTerm(ctx context.Context, classID, yearLabel, termNumber int) (*dto.ClassTermScoresResponse, error) {
	term, err := s.repo.Term.GetByYearAndNumber(ctx, yearLabel, termNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScoreTermNotFound
		}
		s.logger.Error("解析学期失败", zap.Int("year", yearLabel), zap.Int("term", termNumber), zap.Error(err))
		return nil, err
	}

	classroom, err := s.repo.Classroom.GetModelByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScoreClassroomNotFound
		}
		s.logger.Error("查询班级失败", zap.Int("class_id", classID), zap.Error(err))
		return nil, err
	}

	subjects, err := s.repo.Subject.ListByGrade(ctx, classroom.GradeID)
	if err != nil {
		s.logger.Error("查询年级科目失败", zap.Int("grade_id", classroom.GradeID), zap.Error(err))
		return nil, err
	}

	roster, err := s.repo.Student.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("查询班级花名册失败", zap.Int("class_id", classID), zap.Error(err))
		return nil, err
	}

	scoreRows, err := s.repo.Score.ListByClassAndTerm(ctx, classID, term.TermID)
	if err != nil {
		s.logger.Error("查询班级成绩失败", zap.Int("class_id", classID), zap.Int("term_id", term.TermID), zap.Error(err))
		return nil, err
	}

	// (student_id, subject_name) → 分数
	recorded := make(map[int]map[string]float64, len(roster))
	for _, row := range scoreRows {
		if _, ok := recorded[row.StudentID]; !ok {
			recorded[row.StudentID] = make(map[string]float64)
		}
		recorded[row.StudentID][row.SubjectName] = row.ScoreValue
	}

	subjectRefs := make([]dto.SubjectRef, 0, len(subjects))
	for i := range subjects {
		subjectRefs = append(subjectRefs, dto.SubjectRef{SubjectID: subjects[i].SubjectID, Name: subjects[i].SubjectName})
	}

	students := make([]dto.ClassStudentRow, 0, len(roster))
	for i := range roster {
		student := &roster[i]
		cells := make(map[string]float64, len(subjects))
		values := make([]float64, 0, len(subjects))
		for j := range subjects {
			v := recorded[student.StudentID][subjects[j].SubjectName] // 缺失取零值
			cells[subjects[j].SubjectName] = v
			values = append(values, v)
		}
		students = append(students, dto.ClassStudentRow{
			StudentID:     student.StudentID,
			StudentNumber: student.StudentNumber,
			FirstName:     student.FirstName,
			LastName:      student.LastName,
			Scores:        cells,
			Overall:       *overallAverage(values, len(subjects), zeroFill),
		})
	}

	return &dto.ClassTermScoresResponse{
		ClassID: classID,
		Term: dto.ClassTermRef{
			TermID:     term.TermID,
			TermNumber: term.TermNumber,
			YearLabel:  yearLabel,
			StartDate:  term.StartDate.Format(dateLayout),
			EndDate:    term.EndDate.Format(dateLayout),
		},
		Subjects: subjectRefs,
		Students: students,
	}, nil
}
