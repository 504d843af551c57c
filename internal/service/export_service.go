package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出班级×学期成绩矩阵为 Excel (.xlsx)
//   - 复用 ScoreService 的班级视图，导出内容与接口返回严格一致
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportClassTermScores 导出班级×学期成绩矩阵为 Excel
	ExportClassTermScores(ctx context.Context, classID, yearLabel, termNumber int) (*bytes.Buffer, string, error)
}

type exportService struct {
	scores ScoreService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(scores ScoreService, logger *zap.Logger) ExportService {
	return &exportService{scores: scores, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportClassTermScores — 导出班级成绩为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "成绩表"
//   - 行头：学号、姓氏、名字
//   - 列头：该年级全部科目（按名称序）+ 均分
//   - 单元格：分数，未录入科目显示 0（与班级视图语义一致）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportClassTermScores(ctx context.Context, classID, yearLabel, termNumber int) (*bytes.Buffer, string, error) {
	view, err := s.scores.GetClassScoresByTerm(ctx, classID, yearLabel, termNumber)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成绩表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽：学号 + 姓名两列固定，科目列统一
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "C", 10)
	lastCol := colName(2 + len(view.Subjects) + 1)
	f.SetColWidth(sheetName, "D", lastCol, 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("%d 学年 第%d学期 — 班级成绩表", view.Term.YearLabel, view.Term.TermNumber)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "学号")
	f.SetCellValue(sheetName, cell("B", row), "姓氏")
	f.SetCellValue(sheetName, cell("C", row), "名字")
	for i, subject := range view.Subjects {
		f.SetCellValue(sheetName, cell(colName(3+i), row), subject.Name)
	}
	f.SetCellValue(sheetName, cell(colName(3+len(view.Subjects)), row), "均分")

	// 数据行
	row = 3
	for _, student := range view.Students {
		f.SetCellValue(sheetName, cell("A", row), student.StudentNumber)
		f.SetCellValue(sheetName, cell("B", row), student.LastName)
		f.SetCellValue(sheetName, cell("C", row), student.FirstName)
		for i, subject := range view.Subjects {
			f.SetCellValue(sheetName, cell(colName(3+i), row), student.Scores[subject.Name])
		}
		f.SetCellValue(sheetName, cell(colName(3+len(view.Subjects)), row), student.Overall)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("class-%d-scores-%d-term-%d.xlsx", classID, yearLabel, termNumber)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
