package dto

// ── 报表模块 DTO ──

// StudentReportQuery 学生报表查询参数
// grade / class / student 为可选过滤维度，缺省表示不限制
type StudentReportQuery struct {
	Year    int  `form:"year"    binding:"required,min=1000,max=9999"`
	Term    int  `form:"term"    binding:"required,min=1,max=3"`
	Grade   *int `form:"grade"   binding:"omitempty,min=1"`
	Class   *int `form:"class"   binding:"omitempty,min=1"`
	Student *int `form:"student" binding:"omitempty,min=1"`
}

// ReportScore 报表中的单科成绩
type ReportScore struct {
	SubjectName string  `json:"subject_name"`
	ScoreValue  float64 `json:"score_value"`
}

// StudentReportRow 学生报表中的一行
// overall_average 为 null 表示该生本学期没有任何已录入成绩
// （"未评分"与"得 0 分"要区分开）
type StudentReportRow struct {
	StudentID      int           `json:"student_id"`
	StudentNumber  string        `json:"student_number"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Scores         []ReportScore `json:"scores"`
	OverallAverage *float64      `json:"overall_average"` // 已录入成绩的均值，保留 2 位小数
}

// SubjectReportQuery 科目报表查询参数
type SubjectReportQuery struct {
	Year    int `form:"year"    binding:"required,min=1000,max=9999"`
	Term    int `form:"term"    binding:"required,min=1,max=3"`
	Grade   int `form:"grade"   binding:"required,min=1"`
	Subject int `form:"subject" binding:"required,min=1"`
}

// SubjectReportParams 请求参数回显
type SubjectReportParams struct {
	Year    int `json:"year"`
	Term    int `json:"term"`
	Grade   int `json:"grade"`
	Subject int `json:"subject"`
}

// SubjectReportResponse 科目年级均分响应
// 无任何匹配成绩时 average 为 null（不是 0），参数仍然回显
type SubjectReportResponse struct {
	SubjectName *string             `json:"subject_name"`
	Average     *float64            `json:"average"`
	Params      SubjectReportParams `json:"params"`
}
