package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"coursehub/internal/model"
)

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses   map[string]*model.Course
	failNames map[string]bool // 按课程名注入 Create 失败
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{
		courses:   make(map[string]*model.Course),
		failNames: make(map[string]bool),
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if m.failNames[course.Name] {
		return fmt.Errorf("数据库写入失败")
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, year, term int) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if year > 0 && c.Year != year {
			continue
		}
		if term > 0 && c.Term != term {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock CourseSessionRepository ──

type mockCourseSessionRepo struct {
	sessions  map[string][]model.CourseSession // courseID → 课堂
	failBatch bool                             // 注入 CreateBatch 失败
}

func newMockCourseSessionRepo() *mockCourseSessionRepo {
	return &mockCourseSessionRepo{sessions: make(map[string][]model.CourseSession)}
}

func (m *mockCourseSessionRepo) CreateBatch(_ context.Context, sessions []model.CourseSession) error {
	if m.failBatch {
		return errors.New("数据库写入失败")
	}
	if len(sessions) == 0 {
		return nil
	}
	courseID := sessions[0].CourseID
	m.sessions[courseID] = append(m.sessions[courseID], sessions...)
	return nil
}

func (m *mockCourseSessionRepo) ListByCourse(_ context.Context, courseID string) ([]model.CourseSession, error) {
	result := append([]model.CourseSession(nil), m.sessions[courseID]...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (m *mockCourseSessionRepo) DeleteByCourse(_ context.Context, courseID string) error {
	delete(m.sessions, courseID)
	return nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester // "year-term" → 学期
	failList  bool
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func semesterKey(year, term int) string {
	return fmt.Sprintf("%d-%d", year, term)
}

func (m *mockSemesterRepo) Upsert(_ context.Context, semester *model.Semester) error {
	key := semesterKey(semester.Year, semester.Term)
	if existing, ok := m.semesters[key]; ok {
		existing.StartDate = semester.StartDate
		existing.EndDate = semester.EndDate
		existing.Source = semester.Source
		return nil
	}
	if semester.SemesterID == "" {
		semester.SemesterID = "sem-" + key
	}
	m.semesters[key] = semester
	return nil
}

func (m *mockSemesterRepo) GetByYearTerm(_ context.Context, year, term int) (*model.Semester, error) {
	if s, ok := m.semesters[semesterKey(year, term)]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	if m.failList {
		return nil, errors.New("数据库读取失败")
	}
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Term < result[j].Term
	})
	return result, nil
}
