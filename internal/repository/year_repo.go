package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/model"
)

// YearRepository 学年数据访问接口
type YearRepository interface {
	// CreateWithTerms 在同一事务中写入学年与其全部学期；
	// clearActive 为 true 时先取消其它学年的激活状态
	CreateWithTerms(ctx context.Context, year *model.AcademicYear, terms []model.Term, clearActive bool) error
	GetByID(ctx context.Context, id int) (*model.AcademicYear, error)
	GetByLabel(ctx context.Context, yearLabel int) (*model.AcademicYear, error)
	List(ctx context.Context) ([]model.AcademicYear, error)
	Update(ctx context.Context, year *model.AcademicYear) error
	ClearActive(ctx context.Context) error
}

type yearRepo struct {
	db *gorm.DB
}

// NewYearRepo 创建 YearRepository 实例
func NewYearRepo(db *gorm.DB) YearRepository {
	return &yearRepo{db: db}
}

func (r *yearRepo) CreateWithTerms(ctx context.Context, year *model.AcademicYear, terms []model.Term, clearActive bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if clearActive {
			err := tx.Model(&model.AcademicYear{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error
			if err != nil {
				return err
			}
		}
		if err := tx.Create(year).Error; err != nil {
			return err
		}
		for i := range terms {
			terms[i].AcademicYearID = year.AcademicYearID
		}
		return tx.Create(&terms).Error
	})
}

func (r *yearRepo) GetByID(ctx context.Context, id int) (*model.AcademicYear, error) {
	var year model.AcademicYear
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ?", id).
		First(&year).Error
	if err != nil {
		return nil, err
	}
	return &year, nil
}

func (r *yearRepo) GetByLabel(ctx context.Context, yearLabel int) (*model.AcademicYear, error) {
	var year model.AcademicYear
	err := r.db.WithContext(ctx).
		Where("year_label = ?", yearLabel).
		First(&year).Error
	if err != nil {
		return nil, err
	}
	return &year, nil
}

func (r *yearRepo) List(ctx context.Context) ([]model.AcademicYear, error) {
	var years []model.AcademicYear
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&years).Error
	return years, err
}

func (r *yearRepo) Update(ctx context.Context, year *model.AcademicYear) error {
	return r.db.WithContext(ctx).Save(year).Error
}

// ClearActive 将所有学年的 is_active 置为 false
func (r *yearRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.AcademicYear{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}
