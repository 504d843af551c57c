package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

// ── 学年模块业务错误 ──

var (
	ErrYearNotFound       = errors.New("学年不存在")
	ErrYearInvalidRange   = errors.New("学年跨度不足 3 天，无法拆分为 3 个学期")
	ErrYearDateMalformed  = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrYearLabelDuplicate = errors.New("该年份标签已存在")
)

const dateLayout = "2006-01-02"

// YearService 学年业务接口
//
// 设计说明：
//   - 创建学年时按天数把 [start, end] 拆为 3 个连续学期，学年与
//     3 个学期在同一事务中落库，任一失败全部回滚。
//   - 学期生成后不可变更；学年本身支持部分更新。
type YearService interface {
	Create(ctx context.Context, req *dto.CreateYearRequest) (*dto.CreateYearResponse, error)
	GetByID(ctx context.Context, id int) (*dto.YearResponse, error)
	List(ctx context.Context) ([]dto.YearResponse, error)
	ListTerms(ctx context.Context, yearID int) ([]dto.TermResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateYearRequest) (*dto.YearResponse, error)
	// ExportCalendar 把学年的 3 个学期导出为 iCalendar 全天事件
	ExportCalendar(ctx context.Context, yearID int) (*bytes.Buffer, string, error)
}

type yearService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewYearService 创建 YearService 实例
func NewYearService(repo *repository.Repository, logger *zap.Logger) YearService {
	return &yearService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *yearService) Create(ctx context.Context, req *dto.CreateYearRequest) (*dto.CreateYearResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrYearDateMalformed
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrYearDateMalformed
	}

	spans, err := splitTerms(startDate, endDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Year.GetByLabel(ctx, req.YearLabel); err == nil {
		return nil, ErrYearLabelDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学年失败", zap.Int("year_label", req.YearLabel), zap.Error(err))
		return nil, err
	}

	year := &model.AcademicYear{
		YearLabel: req.YearLabel,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  req.IsActive,
	}

	terms := make([]model.Term, 0, 3)
	for i, span := range spans {
		terms = append(terms, model.Term{
			TermNumber: i + 1,
			StartDate:  span.Start,
			EndDate:    span.End,
		})
	}

	// 学年 + 3 个学期在同一事务中写入，任一失败整体回滚
	if err := s.repo.Year.CreateWithTerms(ctx, year, terms, req.IsActive); err != nil {
		s.logger.Error("创建学年失败", zap.Int("year_label", req.YearLabel), zap.Error(err))
		return nil, err
	}

	resp := &dto.CreateYearResponse{
		YearResponse: *toYearResponse(year),
		Terms:        make([]dto.TermResponse, 0, 3),
	}
	for i := range terms {
		resp.Terms = append(resp.Terms, *toTermResponse(&terms[i]))
	}
	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *yearService) GetByID(ctx context.Context, id int) (*dto.YearResponse, error) {
	year, err := s.repo.Year.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrYearNotFound
		}
		s.logger.Error("查询学年失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toYearResponse(year), nil
}

// ────────────────────── List ──────────────────────

func (s *yearService) List(ctx context.Context) ([]dto.YearResponse, error) {
	years, err := s.repo.Year.List(ctx)
	if err != nil {
		s.logger.Error("列出学年失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.YearResponse, 0, len(years))
	for i := range years {
		result = append(result, *toYearResponse(&years[i]))
	}
	return result, nil
}

// ────────────────────── ListTerms ──────────────────────

func (s *yearService) ListTerms(ctx context.Context, yearID int) ([]dto.TermResponse, error) {
	if _, err := s.repo.Year.GetByID(ctx, yearID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrYearNotFound
		}
		s.logger.Error("查询学年失败", zap.Int("id", yearID), zap.Error(err))
		return nil, err
	}

	terms, err := s.repo.Term.ListByYear(ctx, yearID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Int("year_id", yearID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TermResponse, 0, len(terms))
	for i := range terms {
		result = append(result, *toTermResponse(&terms[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 学年部分更新。日期变更不会重排已生成的学期。
func (s *yearService) Update(ctx context.Context, id int, req *dto.UpdateYearRequest) (*dto.YearResponse, error) {
	year, err := s.repo.Year.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrYearNotFound
		}
		s.logger.Error("查询学年失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	if req.YearLabel != nil {
		year.YearLabel = *req.YearLabel
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrYearDateMalformed
		}
		year.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrYearDateMalformed
		}
		year.EndDate = endDate
	}
	if year.EndDate.Before(year.StartDate) {
		return nil, ErrYearDateMalformed
	}

	if req.IsActive != nil && *req.IsActive && !year.IsActive {
		// 激活当前学年前先清除其他活动学年，约定同时至多一个激活
		if err := s.repo.Year.ClearActive(ctx); err != nil {
			s.logger.Error("清除活动学年失败", zap.Error(err))
			return nil, err
		}
	}
	if req.IsActive != nil {
		year.IsActive = *req.IsActive
	}

	if err := s.repo.Year.Update(ctx, year); err != nil {
		s.logger.Error("更新学年失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toYearResponse(year), nil
}

// ────────────────────── ExportCalendar ──────────────────────

func (s *yearService) ExportCalendar(ctx context.Context, yearID int) (*bytes.Buffer, string, error) {
	year, err := s.repo.Year.GetByID(ctx, yearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrYearNotFound
		}
		s.logger.Error("查询学年失败", zap.Int("id", yearID), zap.Error(err))
		return nil, "", err
	}

	terms, err := s.repo.Term.ListByYear(ctx, yearID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Int("year_id", yearID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gradebook//academic-calendar//EN")

	for i := range terms {
		term := &terms[i]
		event := cal.AddEvent(fmt.Sprintf("year-%d-term-%d@gradebook", year.YearLabel, term.TermNumber))
		event.SetSummary(fmt.Sprintf("%d 学年 第 %d 学期", year.YearLabel, term.TermNumber))
		event.SetAllDayStartAt(term.StartDate)
		// DTEND 按 iCalendar 惯例取区间末日的次日（开区间）
		event.SetAllDayEndAt(term.EndDate.AddDate(0, 0, 1))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("academic-year-%d.ics", year.YearLabel)
	return buf, filename, nil
}

// ── 内部辅助方法 ──

func toYearResponse(year *model.AcademicYear) *dto.YearResponse {
	return &dto.YearResponse{
		AcademicYearID: year.AcademicYearID,
		YearLabel:      year.YearLabel,
		StartDate:      year.StartDate.Format(dateLayout),
		EndDate:        year.EndDate.Format(dateLayout),
		IsActive:       year.IsActive,
	}
}

func toTermResponse(term *model.Term) *dto.TermResponse {
	return &dto.TermResponse{
		TermID:     term.TermID,
		TermNumber: term.TermNumber,
		StartDate:  term.StartDate.Format(dateLayout),
		EndDate:    term.EndDate.Format(dateLayout),
	}
}
