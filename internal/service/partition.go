package service

import (
	"fmt"
	"time"
)

// termSpan 单个学期的日期区间（含两端）
type termSpan struct {
	Start time.Time
	End   time.Time
}

// splitTerms 把 [start, end]（含端点）拆为 3 个连续、不重叠、
// 并集恰好覆盖整个学年的学期区间。
//
// 天数不能被 3 整除时，余数日先补学期 1、再补学期 2，学期 3 永远不补。
// 跨度不足 3 天无法产生 3 个非空学期，返回 ErrYearInvalidRange。
func splitTerms(start, end time.Time) ([3]termSpan, error) {
	var spans [3]termSpan

	totalDays := int(end.Sub(start)/(24*time.Hour)) + 1
	if totalDays < 3 {
		return spans, ErrYearInvalidRange
	}

	base := totalDays / 3
	rem := totalDays % 3

	lengths := [3]int{base, base, base}
	if rem > 0 {
		lengths[0]++
	}
	if rem > 1 {
		lengths[1]++
	}

	cursor := start
	for i, n := range lengths {
		spans[i].Start = cursor
		spans[i].End = cursor.AddDate(0, 0, n-1)
		cursor = spans[i].End.AddDate(0, 0, 1)
	}

	// 后置校验：学期 3 必须恰好结束于学年末日
	if !spans[2].End.Equal(end) {
		return spans, fmt.Errorf("学期拆分结果与学年区间不一致: %s != %s",
			spans[2].End.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return spans, nil
}
