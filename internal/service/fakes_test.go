package service

import (
	"sort"
	"sync"
	"time"

	"github.com/lshigami/vocabtest/internal/model"
	"github.com/lshigami/vocabtest/internal/repository"
	"gorm.io/gorm"
)

// memStore backs the fake repositories. All fakes share one store so that
// cross-repository behaviour (sessions, results, ownership) stays consistent.
type memStore struct {
	mu           sync.Mutex
	nextID       uint
	clock        time.Time
	classrooms   map[uint]*model.Classroom
	students     map[uint]*model.Student
	categories   map[uint]*model.Category
	vocabularies map[uint]*model.Vocabulary
	sessions     map[uint]*model.TestSession
	results      []model.Result

	// recordErr, when set, is returned by RecordAnswer instead of writing.
	recordErr error
}

func newMemStore() *memStore {
	return &memStore{
		clock:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		classrooms:   map[uint]*model.Classroom{},
		students:     map[uint]*model.Student{},
		categories:   map[uint]*model.Category{},
		vocabularies: map[uint]*model.Vocabulary{},
		sessions:     map[uint]*model.TestSession{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) addClassroom(teacherID uint, name string) *model.Classroom {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &model.Classroom{ID: m.id(), Name: name, TeacherID: teacherID, CreatedAt: m.tick()}
	m.classrooms[c.ID] = c
	return c
}

func (m *memStore) addStudent(classroomID uint, name string) *model.Student {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &model.Student{ID: m.id(), FullName: name, ClassroomID: classroomID, CreatedAt: m.tick()}
	m.students[s.ID] = s
	return s
}

func (m *memStore) addCategory(teacherID uint, name string) *model.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &model.Category{ID: m.id(), Name: name, TeacherID: teacherID, CreatedAt: m.tick()}
	m.categories[c.ID] = c
	return c
}

func (m *memStore) addVocabulary(teacherID, categoryID uint, word string) *model.Vocabulary {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &model.Vocabulary{ID: m.id(), CategoryID: categoryID, Word: word, ImageRef: "img/" + word + ".png", TeacherID: teacherID, CreatedAt: m.tick()}
	m.vocabularies[v.ID] = v
	return v
}

func (m *memStore) session(studentID, categoryID uint) *model.TestSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.StudentID == studentID && s.CategoryID == categoryID {
			copied := *s
			return &copied
		}
	}
	return nil
}

type fakeRepos struct {
	store       *memStore
	classrooms  repository.ClassroomRepository
	students    repository.StudentRepository
	categories  repository.CategoryRepository
	vocabulary  repository.VocabularyRepository
	sessions    repository.TestSessionRepository
	resultsRepo repository.ResultRepository
}

func newFakeRepos() *fakeRepos {
	store := newMemStore()
	return &fakeRepos{
		store:       store,
		classrooms:  fakeClassroomRepo{store},
		students:    fakeStudentRepo{store},
		categories:  fakeCategoryRepo{store},
		vocabulary:  fakeVocabularyRepo{store},
		sessions:    fakeSessionRepo{store},
		resultsRepo: fakeResultRepo{store},
	}
}

type fakeClassroomRepo struct{ m *memStore }

func (r fakeClassroomRepo) Create(c *model.Classroom) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c.ID = r.m.id()
	c.CreatedAt = r.m.tick()
	stored := *c
	r.m.classrooms[c.ID] = &stored
	return nil
}

func (r fakeClassroomRepo) FindByIDForTeacher(id, teacherID uint) (*model.Classroom, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.classrooms[id]
	if !ok || c.TeacherID != teacherID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	out.Students = r.m.studentsOf(id)
	return &out, nil
}

func (r fakeClassroomRepo) FindAllByTeacher(teacherID uint) ([]model.Classroom, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Classroom
	for _, c := range r.m.classrooms {
		if c.TeacherID == teacherID {
			copied := *c
			copied.Students = r.m.studentsOf(c.ID)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeClassroomRepo) Delete(id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.studentsOf(id) {
		r.m.deleteStudentData(s.ID)
		delete(r.m.students, s.ID)
	}
	delete(r.m.classrooms, id)
	return nil
}

// studentsOf expects m.mu to be held.
func (m *memStore) studentsOf(classroomID uint) []model.Student {
	var out []model.Student
	for _, s := range m.students {
		if s.ClassroomID == classroomID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// deleteStudentData expects m.mu to be held.
func (m *memStore) deleteStudentData(studentID uint) repository.ClearStats {
	var stats repository.ClearStats
	sessionIDs := map[uint]bool{}
	for id, s := range m.sessions {
		if s.StudentID == studentID {
			sessionIDs[id] = true
			delete(m.sessions, id)
			stats.Sessions++
		}
	}
	kept := m.results[:0]
	for _, r := range m.results {
		if sessionIDs[r.SessionID] {
			stats.Results++
			continue
		}
		kept = append(kept, r)
	}
	m.results = kept
	return stats
}

type fakeStudentRepo struct{ m *memStore }

func (r fakeStudentRepo) Create(s *model.Student) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s.ID = r.m.id()
	s.CreatedAt = r.m.tick()
	stored := *s
	stored.Classroom = nil
	r.m.students[s.ID] = &stored
	return nil
}

func (r fakeStudentRepo) FindByIDForTeacher(id, teacherID uint) (*model.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c, ok := r.m.classrooms[s.ClassroomID]
	if !ok || c.TeacherID != teacherID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *s
	classroom := *c
	out.Classroom = &classroom
	return &out, nil
}

func (r fakeStudentRepo) FindAllByTeacher(teacherID uint, classroomID *uint) ([]model.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Student
	for _, s := range r.m.students {
		c := r.m.classrooms[s.ClassroomID]
		if c == nil || c.TeacherID != teacherID {
			continue
		}
		if classroomID != nil && s.ClassroomID != *classroomID {
			continue
		}
		copied := *s
		classroom := *c
		copied.Classroom = &classroom
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeStudentRepo) FindByClassroom(classroomID uint) ([]model.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.studentsOf(classroomID), nil
}

func (r fakeStudentRepo) Delete(id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.deleteStudentData(id)
	delete(r.m.students, id)
	return nil
}

type fakeCategoryRepo struct{ m *memStore }

func (r fakeCategoryRepo) Create(c *model.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	// Mirrors idx_category_name_teacher.
	for _, existing := range r.m.categories {
		if existing.TeacherID == c.TeacherID && existing.Name == c.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = r.m.id()
	c.CreatedAt = r.m.tick()
	stored := *c
	r.m.categories[c.ID] = &stored
	return nil
}

func (r fakeCategoryRepo) FindByIDForTeacher(id, teacherID uint) (*model.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.categories[id]
	if !ok || c.TeacherID != teacherID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	return &out, nil
}

func (r fakeCategoryRepo) ExistsByName(teacherID uint, name string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.categories {
		if c.TeacherID == teacherID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeCategoryRepo) FindAllByTeacher(teacherID uint) ([]model.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Category
	for _, c := range r.m.categories {
		if c.TeacherID == teacherID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeVocabularyRepo struct{ m *memStore }

func (r fakeVocabularyRepo) Create(v *model.Vocabulary) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	v.ID = r.m.id()
	v.CreatedAt = r.m.tick()
	stored := *v
	stored.Category = nil
	r.m.vocabularies[v.ID] = &stored
	return nil
}

func (r fakeVocabularyRepo) CreateBatch(vs []model.Vocabulary) error {
	for i := range vs {
		if err := r.Create(&vs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r fakeVocabularyRepo) FindByIDForTeacher(id, teacherID uint) (*model.Vocabulary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	v, ok := r.m.vocabularies[id]
	if !ok || v.TeacherID != teacherID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *v
	if c, ok := r.m.categories[v.CategoryID]; ok {
		category := *c
		out.Category = &category
	}
	return &out, nil
}

func (r fakeVocabularyRepo) FindPool(teacherID, categoryID uint) ([]model.Vocabulary, error) {
	cat := categoryID
	return r.FindAllByTeacher(teacherID, &cat)
}

func (r fakeVocabularyRepo) FindAllByTeacher(teacherID uint, categoryID *uint) ([]model.Vocabulary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Vocabulary
	for _, v := range r.m.vocabularies {
		if v.TeacherID != teacherID || (categoryID != nil && v.CategoryID != *categoryID) {
			continue
		}
		copied := *v
		if c, ok := r.m.categories[v.CategoryID]; ok {
			category := *c
			copied.Category = &category
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeVocabularyRepo) Delete(id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.vocabularies, id)
	kept := r.m.results[:0]
	for _, res := range r.m.results {
		if res.VocabularyID != id {
			kept = append(kept, res)
		}
	}
	r.m.results = kept
	return nil
}

type fakeSessionRepo struct{ m *memStore }

func (r fakeSessionRepo) RecordAnswer(studentID, categoryID, vocabularyID uint, isCorrect bool) (*model.TestSession, *model.Result, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.recordErr != nil {
		return nil, nil, r.m.recordErr
	}
	var session *model.TestSession
	for _, s := range r.m.sessions {
		if s.StudentID == studentID && s.CategoryID == categoryID {
			session = s
			break
		}
	}
	if session == nil {
		session = &model.TestSession{ID: r.m.id(), StudentID: studentID, CategoryID: categoryID, CreatedAt: r.m.tick()}
		r.m.sessions[session.ID] = session
	}
	result := model.Result{ID: r.m.id(), SessionID: session.ID, VocabularyID: vocabularyID, IsCorrect: isCorrect, CreatedAt: r.m.tick()}
	r.m.results = append(r.m.results, result)
	session.TotalQuestions++
	if isCorrect {
		session.CorrectAnswers++
	}
	out := *session
	return &out, &result, nil
}

func (r fakeSessionRepo) FindByStudentAndCategory(studentID, categoryID uint) (*model.TestSession, error) {
	if s := r.m.session(studentID, categoryID); s != nil {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeSessionRepo) FindByStudentsAndCategory(studentIDs []uint, categoryID uint) ([]model.TestSession, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	wanted := map[uint]bool{}
	for _, id := range studentIDs {
		wanted[id] = true
	}
	var out []model.TestSession
	for _, s := range r.m.sessions {
		if wanted[s.StudentID] && s.CategoryID == categoryID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r fakeSessionRepo) DeleteByStudent(studentID uint) (repository.ClearStats, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.deleteStudentData(studentID), nil
}

type fakeResultRepo struct{ m *memStore }

func (r fakeResultRepo) AnsweredVocabularyIDs(studentID, categoryID uint) ([]uint, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var ids []uint
	for _, res := range r.m.results {
		s := r.m.sessions[res.SessionID]
		if s != nil && s.StudentID == studentID && s.CategoryID == categoryID {
			ids = append(ids, res.VocabularyID)
		}
	}
	return ids, nil
}

func (r fakeResultRepo) FindByStudent(studentID uint, categoryID *uint) ([]model.Result, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []model.Result
	for _, res := range r.m.results {
		s := r.m.sessions[res.SessionID]
		if s == nil || s.StudentID != studentID || (categoryID != nil && s.CategoryID != *categoryID) {
			continue
		}
		copied := res
		if v, ok := r.m.vocabularies[res.VocabularyID]; ok {
			vocab := *v
			if c, ok := r.m.categories[v.CategoryID]; ok {
				category := *c
				vocab.Category = &category
			}
			copied.Vocabulary = &vocab
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
