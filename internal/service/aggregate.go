package service

import "math"

// fillPolicy 聚合时对缺失成绩的归一化策略。
//
// 两种口径并存是刻意设计：网格视图（学生×学年、班级×学期）呈现
// 固定矩形表格，缺格补 0、分母取完整科目集；统计报表则区分
// "未评分"与"得 0 分"，缺数据得 null。
type fillPolicy int

const (
	zeroFill fillPolicy = iota // 缺失补 0，分母为完整集合
	nullOmit                   // 只统计已录入成绩，空集得 null
)

// overallAverage 按策略计算总评均分。
//
// zeroFill: sum/expected，expected 为完整分母；expected == 0 时得 0（非 null）。
// nullOmit: 无已录成绩返回 nil；否则均值保留 2 位小数。
func overallAverage(values []float64, expected int, policy fillPolicy) *float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	switch policy {
	case zeroFill:
		avg := 0.0
		if expected > 0 {
			avg = sum / float64(expected)
		}
		return &avg
	default: // nullOmit
		if len(values) == 0 {
			return nil
		}
		avg := round2(sum / float64(len(values)))
		return &avg
	}
}

// round2 四舍五入保留 2 位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
