package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

var ErrReportTermNotFound = errors.New("指定学年与学期不存在")

// ReportService 报表业务接口
//
// 与成绩视图不同，报表不补零：学生报表只列已录科目，均分在完全
// 没有成绩时为 null；科目均分在无任何记录时同样为 null，但请求
// 参数始终原样回显。
type ReportService interface {
	GetStudentReport(ctx context.Context, q *dto.StudentReportQuery) ([]dto.StudentReportRow, error)
	GetSubjectReportAverage(ctx context.Context, q *dto.SubjectReportQuery) (*dto.SubjectReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ────────────────────── GetStudentReport ──────────────────────

func (s *reportService) GetStudentReport(ctx context.Context, q *dto.StudentReportQuery) ([]dto.StudentReportRow, error) {
	term, err := s.repo.Term.GetByYearAndNumber(ctx, q.Year, q.Term)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportTermNotFound
		}
		s.logger.Error("解析学期失败", zap.Int("year", q.Year), zap.Int("term", q.Term), zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.Score.ListReportRows(ctx, term.TermID, repository.ReportFilter{
		GradeNumber: q.Grade,
		ClassID:     q.Class,
		StudentID:   q.Student,
	})
	if err != nil {
		s.logger.Error("查询报表明细失败", zap.Int("term_id", term.TermID), zap.Error(err))
		return nil, err
	}

	// 左连接保证无成绩学生也有一行（科目列为 null），
	// 按学生折叠，保持数据库返回的行序
	report := make([]dto.StudentReportRow, 0)
	index := make(map[int]int)
	for _, row := range rows {
		pos, ok := index[row.StudentID]
		if !ok {
			pos = len(report)
			index[row.StudentID] = pos
			report = append(report, dto.StudentReportRow{
				StudentID:     row.StudentID,
				StudentNumber: row.StudentNumber,
				FirstName:     row.FirstName,
				LastName:      row.LastName,
				Scores:        make([]dto.ReportScore, 0),
			})
		}
		if row.SubjectName != nil && row.ScoreValue != nil {
			report[pos].Scores = append(report[pos].Scores, dto.ReportScore{
				SubjectName: *row.SubjectName,
				ScoreValue:  *row.ScoreValue,
			})
		}
	}

	for i := range report {
		values := make([]float64, 0, len(report[i].Scores))
		for _, sc := range report[i].Scores {
			values = append(values, sc.ScoreValue)
		}
		report[i].OverallAverage = overallAverage(values, len(values), nullOmit)
	}

	return report, nil
}

// ────────────────────── GetSubjectReportAverage ──────────────────────

func (s *reportService) GetSubjectReportAverage(ctx context.Context, q *dto.SubjectReportQuery) (*dto.SubjectReportResponse, error) {
	term, err := s.repo.Term.GetByYearAndNumber(ctx, q.Year, q.Term)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportTermNotFound
		}
		s.logger.Error("解析学期失败", zap.Int("year", q.Year), zap.Int("term", q.Term), zap.Error(err))
		return nil, err
	}

	avg, err := s.repo.Score.AverageByGradeSubjectTerm(ctx, term.TermID, q.Grade, q.Subject)
	if err != nil {
		s.logger.Error("计算科目均分失败",
			zap.Int("grade", q.Grade),
			zap.Int("subject_id", q.Subject),
			zap.Int("term_id", term.TermID),
			zap.Error(err),
		)
		return nil, err
	}
	if avg != nil {
		rounded := round2(*avg)
		avg = &rounded
	}

	// 科目名尽力解析，科目不存在不视为错误，均分自然为 null
	var subjectName *string
	if subject, err := s.repo.Subject.GetByID(ctx, q.Subject); err == nil {
		subjectName = &subject.SubjectName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("查询科目名失败", zap.Int("subject_id", q.Subject), zap.Error(err))
	}

	return &dto.SubjectReportResponse{
		SubjectName: subjectName,
		Average:     avg,
		Params: dto.SubjectReportParams{
			Grade:   q.Grade,
			Subject: q.Subject,
			Year:    q.Year,
			Term:    q.Term,
		},
	}, nil
}
