package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nickelcy/GradeManagement/internal/model"
)

// StudentYearScoreRow 学生×学年视图的原始行：成绩联学期、学年、科目
type StudentYearScoreRow struct {
	ScoreID     int     `gorm:"column:score_id"`
	SubjectID   int     `gorm:"column:subject_id"`
	SubjectName string  `gorm:"column:subject_name"`
	TermID      int     `gorm:"column:term_id"`
	TermNumber  int     `gorm:"column:term_number"`
	ScoreValue  float64 `gorm:"column:score_value"`
}

// ClassScoreRow 班级×学期视图的原始行
type ClassScoreRow struct {
	StudentID   int     `gorm:"column:student_id"`
	SubjectID   int     `gorm:"column:subject_id"`
	SubjectName string  `gorm:"column:subject_name"`
	ScoreValue  float64 `gorm:"column:score_value"`
}

// ReportRow 学生报表的原始行：学生左联成绩，未评分学生 subject_name 为 NULL
type ReportRow struct {
	StudentID     int      `gorm:"column:student_id"`
	StudentNumber string   `gorm:"column:student_number"`
	FirstName     string   `gorm:"column:first_name"`
	LastName      string   `gorm:"column:last_name"`
	SubjectName   *string  `gorm:"column:subject_name"`
	ScoreValue    *float64 `gorm:"column:score_value"`
}

// ReportFilter 学生报表可选过滤维度；nil 表示该维度不限制
type ReportFilter struct {
	GradeNumber *int
	ClassID     *int
	StudentID   *int
}

// ScoreRepository 成绩数据访问接口
type ScoreRepository interface {
	UpsertBatch(ctx context.Context, scores []model.Score) error
	ListByStudentAndYear(ctx context.Context, studentID, yearLabel int) ([]StudentYearScoreRow, error)
	ListByClassAndTerm(ctx context.Context, classID, termID int) ([]ClassScoreRow, error)
	ListReportRows(ctx context.Context, termID int, filter ReportFilter) ([]ReportRow, error)
	AverageByGradeSubjectTerm(ctx context.Context, termID, gradeNumber, subjectID int) (*float64, error)
}

type scoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo 创建 ScoreRepository 实例
func NewScoreRepo(db *gorm.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

// UpsertBatch 批量写入一次提交的全部成绩，整批同一事务：
// 任一行失败则全部回滚。冲突键为 (student_id, subject_id, term_id)，
// 命中时覆盖 score_value / teacher_user_id / recorded_at
func (r *scoreRepo) UpsertBatch(ctx context.Context, scores []model.Score) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		onConflict := clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_id"},
				{Name: "subject_id"},
				{Name: "term_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"score_value", "teacher_user_id", "recorded_at"}),
		}
		for i := range scores {
			if err := tx.Clauses(onConflict).Create(&scores[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByStudentAndYear 一名学生在某学年的全部成绩行
// 按学期号、科目名排序，保证聚合端的首见顺序稳定
func (r *scoreRepo) ListByStudentAndYear(ctx context.Context, studentID, yearLabel int) ([]StudentYearScoreRow, error) {
	var rows []StudentYearScoreRow
	err := r.db.WithContext(ctx).
		Model(&model.Score{}).
		Select(`score.score_id, score.subject_id, sub.subject_name,
			score.term_id, t.term_number, score.score_value`).
		Joins("JOIN term t ON t.term_id = score.term_id").
		Joins("JOIN academic_year ay ON ay.academic_year_id = t.academic_year_id").
		Joins("JOIN subject sub ON sub.subject_id = score.subject_id").
		Where("score.student_id = ? AND ay.year_label = ?", studentID, yearLabel).
		Order("t.term_number, sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

// ListByClassAndTerm 某班级学生在指定学期的已录成绩行
func (r *scoreRepo) ListByClassAndTerm(ctx context.Context, classID, termID int) ([]ClassScoreRow, error) {
	var rows []ClassScoreRow
	err := r.db.WithContext(ctx).
		Model(&model.Score{}).
		Select("score.student_id, score.subject_id, sub.subject_name, score.score_value").
		Joins("JOIN student st ON st.student_id = score.student_id").
		Joins("JOIN subject sub ON sub.subject_id = score.subject_id").
		Where("st.class_id = ? AND score.term_id = ?", classID, termID).
		Order("st.last_name, st.first_name, sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

// ListReportRows 学生报表原始行
// 学生侧为驱动表，成绩按学期左联：没有成绩的学生也会出现在结果中
func (r *scoreRepo) ListReportRows(ctx context.Context, termID int, filter ReportFilter) ([]ReportRow, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Select(`student.student_id, student.student_number, student.first_name, student.last_name,
			sub.subject_name, s.score_value`).
		Joins("JOIN classroom c ON c.class_id = student.class_id").
		Joins("JOIN grade g ON g.grade_id = c.grade_id").
		Joins("LEFT JOIN score s ON s.student_id = student.student_id AND s.term_id = ?", termID).
		Joins("LEFT JOIN subject sub ON sub.subject_id = s.subject_id")

	if filter.GradeNumber != nil {
		q = q.Where("g.grade_number = ?", *filter.GradeNumber)
	}
	if filter.ClassID != nil {
		q = q.Where("c.class_id = ?", *filter.ClassID)
	}
	if filter.StudentID != nil {
		q = q.Where("student.student_id = ?", *filter.StudentID)
	}

	var rows []ReportRow
	err := q.Order("student.last_name, student.first_name, sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

// AverageByGradeSubjectTerm 某年级某科目某学期的全体均分
// 无匹配成绩时返回 nil（统计口径：null 表示无数据，不是 0 分）
func (r *scoreRepo) AverageByGradeSubjectTerm(ctx context.Context, termID, gradeNumber, subjectID int) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&model.Score{}).
		Select("AVG(score.score_value)").
		Joins("JOIN student st ON st.student_id = score.student_id").
		Joins("JOIN classroom c ON c.class_id = st.class_id").
		Joins("JOIN grade g ON g.grade_id = c.grade_id").
		Where("score.term_id = ? AND g.grade_number = ? AND score.subject_id = ?", termID, gradeNumber, subjectID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
