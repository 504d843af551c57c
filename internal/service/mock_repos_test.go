package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

// ── Mock YearRepository ──

type mockYearRepo struct {
	years     map[int]*model.AcademicYear // academic_year_id → 学年
	terms     *mockTermRepo               // CreateWithTerms 写入的学期落在这里
	idCounter int
	failTerms bool // 置 true 时学期写入失败，用于验证整体回滚
}

func newMockYearRepo(terms *mockTermRepo) *mockYearRepo {
	return &mockYearRepo{years: make(map[int]*model.AcademicYear), terms: terms}
}

func (m *mockYearRepo) CreateWithTerms(_ context.Context, year *model.AcademicYear, terms []model.Term, clearActive bool) error {
	if m.failTerms {
		return gorm.ErrInvalidData
	}
	if clearActive {
		for _, y := range m.years {
			y.IsActive = false
		}
	}
	if year.AcademicYearID == 0 {
		m.idCounter++
		year.AcademicYearID = m.idCounter
	}
	m.years[year.AcademicYearID] = year
	m.terms.years[year.AcademicYearID] = year
	for i := range terms {
		terms[i].AcademicYearID = year.AcademicYearID
		if terms[i].TermID == 0 {
			terms[i].TermID = len(m.terms.terms) + 1
		}
		m.terms.add(terms[i])
	}
	return nil
}

func (m *mockYearRepo) GetByID(_ context.Context, id int) (*model.AcademicYear, error) {
	if y, ok := m.years[id]; ok {
		return y, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockYearRepo) GetByLabel(_ context.Context, yearLabel int) (*model.AcademicYear, error) {
	for _, y := range m.years {
		if y.YearLabel == yearLabel {
			return y, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockYearRepo) List(_ context.Context) ([]model.AcademicYear, error) {
	var result []model.AcademicYear
	for _, y := range m.years {
		result = append(result, *y)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.After(result[j].StartDate)
	})
	return result, nil
}

func (m *mockYearRepo) Update(_ context.Context, year *model.AcademicYear) error {
	m.years[year.AcademicYearID] = year
	return nil
}

func (m *mockYearRepo) ClearActive(_ context.Context) error {
	for _, y := range m.years {
		y.IsActive = false
	}
	return nil
}

// ── Mock TermRepository ──

type mockTermRepo struct {
	years map[int]*model.AcademicYear // 学期解析需要年份标签
	terms []model.Term
}

func newMockTermRepo() *mockTermRepo {
	return &mockTermRepo{years: make(map[int]*model.AcademicYear)}
}

func (m *mockTermRepo) add(term model.Term) {
	if term.TermID == 0 {
		term.TermID = len(m.terms) + 1
	}
	m.terms = append(m.terms, term)
}

func (m *mockTermRepo) GetByYearAndNumber(_ context.Context, yearLabel, termNumber int) (*model.Term, error) {
	for i, t := range m.terms {
		y, ok := m.years[t.AcademicYearID]
		if ok && y.YearLabel == yearLabel && t.TermNumber == termNumber {
			return &m.terms[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermRepo) ListByYear(_ context.Context, academicYearID int) ([]model.Term, error) {
	var result []model.Term
	for _, t := range m.terms {
		if t.AcademicYearID == academicYearID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TermNumber < result[j].TermNumber })
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[int]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == 0 {
		m.idCounter++
		user.UserID = m.idCounter
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByStaffID(_ context.Context, staffID string) (*model.User, error) {
	for _, u := range m.users {
		if u.StaffID == staffID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Deactivate(_ context.Context, id int) error {
	if u, ok := m.users[id]; ok {
		u.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	classrooms map[int]*model.Classroom
	grades     map[int]*model.Grade // grade_id → 年级
	students   *mockStudentRepo     // 在册学生数来源
	teachers   map[int]int          // teacher user_id → class_id
	idCounter  int
}

func newMockClassroomRepo(students *mockStudentRepo) *mockClassroomRepo {
	return &mockClassroomRepo{
		classrooms: make(map[int]*model.Classroom),
		grades:     make(map[int]*model.Grade),
		students:   students,
		teachers:   make(map[int]int),
	}
}

func (m *mockClassroomRepo) Create(_ context.Context, classroom *model.Classroom) error {
	if classroom.ClassID == 0 {
		m.idCounter++
		classroom.ClassID = m.idCounter
	}
	m.classrooms[classroom.ClassID] = classroom
	return nil
}

func (m *mockClassroomRepo) info(c *model.Classroom) *repository.ClassroomInfo {
	gradeNumber := 0
	if g, ok := m.grades[c.GradeID]; ok {
		gradeNumber = g.GradeNumber
	}
	count := 0
	for _, s := range m.students.students {
		if s.ClassID == c.ClassID && s.IsActive {
			count++
		}
	}
	return &repository.ClassroomInfo{
		ClassID:      c.ClassID,
		GradeID:      c.GradeID,
		GradeNumber:  gradeNumber,
		ClassName:    c.ClassName,
		StudentCount: count,
	}
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id int) (*repository.ClassroomInfo, error) {
	if c, ok := m.classrooms[id]; ok {
		return m.info(c), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) GetModelByID(_ context.Context, id int) (*model.Classroom, error) {
	if c, ok := m.classrooms[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) ListByGradeNumber(_ context.Context, gradeNumber int) ([]repository.ClassroomInfo, error) {
	var result []repository.ClassroomInfo
	for _, c := range m.classrooms {
		if g, ok := m.grades[c.GradeID]; ok && g.GradeNumber == gradeNumber {
			result = append(result, *m.info(c))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClassName < result[j].ClassName })
	return result, nil
}

func (m *mockClassroomRepo) GetByTeacher(_ context.Context, teacherUserID int) (*repository.ClassroomInfo, error) {
	classID, ok := m.teachers[teacherUserID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if c, found := m.classrooms[classID]; found {
		return m.info(c), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) Update(_ context.Context, classroom *model.Classroom) error {
	m.classrooms[classroom.ClassID] = classroom
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[int]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[int]*model.Subject)}
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id int) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListByGrade(_ context.Context, gradeID int) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if s.GradeID == gradeID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubjectName < result[j].SubjectName })
	return result, nil
}

func (m *mockSubjectRepo) ListByIDs(_ context.Context, ids []int) ([]model.Subject, error) {
	var result []model.Subject
	for _, id := range ids {
		if s, ok := m.subjects[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students  map[int]*model.Student
	idCounter int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[int]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == 0 {
		m.idCounter++
		student.StudentID = m.idCounter
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByNumber(_ context.Context, studentNumber string) (*model.Student, error) {
	for _, s := range m.students {
		if s.StudentNumber == studentNumber {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	sortStudents(result)
	return result, nil
}

func (m *mockStudentRepo) ListByClass(_ context.Context, classID int) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.ClassID == classID && s.IsActive {
			result = append(result, *s)
		}
	}
	sortStudents(result)
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Deactivate(_ context.Context, id int) error {
	if s, ok := m.students[id]; ok {
		s.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

// sortStudents 与真实仓储一致：姓氏、名字排序
func sortStudents(students []model.Student) {
	sort.Slice(students, func(i, j int) bool {
		if students[i].LastName != students[j].LastName {
			return students[i].LastName < students[j].LastName
		}
		return students[i].FirstName < students[j].FirstName
	})
}

// ── Mock ScoreRepository ──

type mockScoreRepo struct {
	scores    []model.Score
	subjects  *mockSubjectRepo // 联查科目名
	students  *mockStudentRepo // 联查学生、报表驱动表
	terms     *mockTermRepo    // 联查学期号
	classes   *mockClassroomRepo
	idCounter int
	failAfter int // >0 时第 N 行写入失败，用于验证整批回滚
}

func newMockScoreRepo(subjects *mockSubjectRepo, students *mockStudentRepo, terms *mockTermRepo, classes *mockClassroomRepo) *mockScoreRepo {
	return &mockScoreRepo{subjects: subjects, students: students, terms: terms, classes: classes}
}

func (m *mockScoreRepo) UpsertBatch(_ context.Context, scores []model.Score) error {
	if m.failAfter > 0 && len(scores) >= m.failAfter {
		return gorm.ErrInvalidData // 整批失败，不留部分写入
	}
	for _, in := range scores {
		replaced := false
		for i, existing := range m.scores {
			if existing.StudentID == in.StudentID && existing.SubjectID == in.SubjectID && existing.TermID == in.TermID {
				in.ScoreID = existing.ScoreID
				m.scores[i] = in
				replaced = true
				break
			}
		}
		if !replaced {
			m.idCounter++
			in.ScoreID = m.idCounter
			m.scores = append(m.scores, in)
		}
	}
	return nil
}

func (m *mockScoreRepo) ListByStudentAndYear(_ context.Context, studentID, yearLabel int) ([]repository.StudentYearScoreRow, error) {
	var rows []repository.StudentYearScoreRow
	for _, sc := range m.scores {
		if sc.StudentID != studentID {
			continue
		}
		term := m.findTerm(sc.TermID)
		if term == nil {
			continue
		}
		year, ok := m.terms.years[term.AcademicYearID]
		if !ok || year.YearLabel != yearLabel {
			continue
		}
		rows = append(rows, repository.StudentYearScoreRow{
			ScoreID:     sc.ScoreID,
			SubjectID:   sc.SubjectID,
			SubjectName: m.subjectName(sc.SubjectID),
			TermID:      sc.TermID,
			TermNumber:  term.TermNumber,
			ScoreValue:  sc.ScoreValue,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TermNumber != rows[j].TermNumber {
			return rows[i].TermNumber < rows[j].TermNumber
		}
		return rows[i].SubjectName < rows[j].SubjectName
	})
	return rows, nil
}

func (m *mockScoreRepo) ListByClassAndTerm(_ context.Context, classID, termID int) ([]repository.ClassScoreRow, error) {
	var rows []repository.ClassScoreRow
	for _, sc := range m.scores {
		if sc.TermID != termID {
			continue
		}
		student, ok := m.students.students[sc.StudentID]
		if !ok || student.ClassID != classID {
			continue
		}
		rows = append(rows, repository.ClassScoreRow{
			StudentID:   sc.StudentID,
			SubjectID:   sc.SubjectID,
			SubjectName: m.subjectName(sc.SubjectID),
			ScoreValue:  sc.ScoreValue,
		})
	}
	return rows, nil
}

func (m *mockScoreRepo) ListReportRows(_ context.Context, termID int, filter repository.ReportFilter) ([]repository.ReportRow, error) {
	var students []model.Student
	for _, s := range m.students.students {
		if !s.IsActive {
			continue
		}
		if filter.StudentID != nil && s.StudentID != *filter.StudentID {
			continue
		}
		if filter.ClassID != nil && s.ClassID != *filter.ClassID {
			continue
		}
		if filter.GradeNumber != nil {
			classroom, ok := m.classes.classrooms[s.ClassID]
			if !ok {
				continue
			}
			grade, found := m.classes.grades[classroom.GradeID]
			if !found || grade.GradeNumber != *filter.GradeNumber {
				continue
			}
		}
		students = append(students, *s)
	}
	sortStudents(students)

	var rows []repository.ReportRow
	for _, s := range students {
		matched := false
		for _, sc := range m.scores {
			if sc.StudentID != s.StudentID || sc.TermID != termID {
				continue
			}
			name := m.subjectName(sc.SubjectID)
			value := sc.ScoreValue
			rows = append(rows, repository.ReportRow{
				StudentID:     s.StudentID,
				StudentNumber: s.StudentNumber,
				FirstName:     s.FirstName,
				LastName:      s.LastName,
				SubjectName:   &name,
				ScoreValue:    &value,
			})
			matched = true
		}
		// 左联语义：无成绩学生保留一行，科目列为 NULL
		if !matched {
			rows = append(rows, repository.ReportRow{
				StudentID:     s.StudentID,
				StudentNumber: s.StudentNumber,
				FirstName:     s.FirstName,
				LastName:      s.LastName,
			})
		}
	}
	return rows, nil
}

func (m *mockScoreRepo) AverageByGradeSubjectTerm(_ context.Context, termID, gradeNumber, subjectID int) (*float64, error) {
	var sum float64
	var count int
	for _, sc := range m.scores {
		if sc.TermID != termID || sc.SubjectID != subjectID {
			continue
		}
		student, ok := m.students.students[sc.StudentID]
		if !ok {
			continue
		}
		classroom, ok := m.classes.classrooms[student.ClassID]
		if !ok {
			continue
		}
		grade, ok := m.classes.grades[classroom.GradeID]
		if !ok || grade.GradeNumber != gradeNumber {
			continue
		}
		sum += sc.ScoreValue
		count++
	}
	if count == 0 {
		return nil, nil
	}
	avg := sum / float64(count)
	return &avg, nil
}

func (m *mockScoreRepo) findTerm(termID int) *model.Term {
	for i, t := range m.terms.terms {
		if t.TermID == termID {
			return &m.terms.terms[i]
		}
	}
	return nil
}

func (m *mockScoreRepo) subjectName(subjectID int) string {
	if s, ok := m.subjects.subjects[subjectID]; ok {
		return s.SubjectName
	}
	return ""
}
