package dto

// ── 成绩模块 DTO ──

// ScoreEntry 单科成绩提交项
// score_value 用指针以区分"缺字段"与"0 分"；范围校验只在绑定层做，
// 存储层不限制取值范围
type ScoreEntry struct {
	SubjectID  int      `json:"subject_id"  binding:"required,min=1"`
	ScoreValue *float64 `json:"score_value" binding:"required,min=0,max=100"`
}

// UpsertScoresRequest 批量提交成绩请求
// 同一 (学生, 科目, 学期) 已有成绩时覆盖更新
type UpsertScoresRequest struct {
	Scores []ScoreEntry `json:"scores" binding:"required,dive"`
}

// SubjectRef 科目引用
type SubjectRef struct {
	SubjectID int    `json:"subject_id"`
	Name      string `json:"name"`
}

// ScoreCell 成绩矩阵单元格
// 补 0 合成的单元格 score_id 为 null、value 为 0
type ScoreCell struct {
	ScoreID *int    `json:"score_id"`
	Value   float64 `json:"value"`
}

// TermScores 某学期的成绩行（学生×学年视图的一行）
type TermScores struct {
	TermID     int               `json:"term_id"`
	TermNumber int               `json:"term_number"`
	Overall    float64           `json:"overall"`
	Scores     map[int]ScoreCell `json:"scores"` // subject_id → 单元格
}

// StudentYearScoresResponse 学生×学年成绩视图（科目 × 学期矩阵）
type StudentYearScoresResponse struct {
	StudentID int          `json:"student_id"`
	Year      int          `json:"year"`
	Subjects  []SubjectRef `json:"subjects"`
	Terms     []TermScores `json:"terms"`
	Overall   float64      `json:"overall"` // 各学期 overall 的简单平均
}

// ClassTermRef 已解析学期引用
type ClassTermRef struct {
	TermID     int    `json:"term_id"`
	TermNumber int    `json:"term_number"`
	YearLabel  int    `json:"year_label"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// ClassStudentRow 班级×学期视图中的一名学生
type ClassStudentRow struct {
	StudentID     int                `json:"student_id"`
	StudentNumber string             `json:"student_number"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Scores        map[string]float64 `json:"scores"` // subject_name → 分数，缺失补 0
	Overall       float64            `json:"overall"`
}

// ClassTermScoresResponse 班级×学期成绩视图（科目 × 学生矩阵）
// 花名册完整呈现：没有任何成绩的学生也占一行
type ClassTermScoresResponse struct {
	ClassID  int               `json:"class_id"`
	Term     ClassTermRef      `json:"term"`
	Subjects []SubjectRef      `json:"subjects"` // 该年级全部科目，按名称排序
	Students []ClassStudentRow `json:"students"`
}
