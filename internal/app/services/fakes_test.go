package services

import (
	"context"
	"sync"

	"github.com/emres/studentportal/internal/app/models"
	"github.com/emres/studentportal/internal/pkg/apperrors"
)

type regKey struct {
	studentID int64
	courseID  int64
	semester  string
}

// fakeStore is an in-memory stand-in for the repositories. It reproduces
// the store-level guarantees the services rely on: the unique registration
// constraint, the capacity guard, and enroll/drop as atomic units.
type fakeStore struct {
	mu            sync.Mutex
	nextID        int64
	students      map[int64]*models.Student
	courses       map[int64]*models.Course
	registrations map[regKey]bool
	grades        map[int64][]models.GradeReport

	// failWith, when set, makes every store call fail.
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		students:      make(map[int64]*models.Student),
		courses:       make(map[int64]*models.Course),
		registrations: make(map[regKey]bool),
		grades:        make(map[int64][]models.GradeReport),
	}
}

func (f *fakeStore) addCourse(id int64, code string, capacity int) *models.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	course := &models.Course{ID: id, CourseCode: code, CourseName: code, Credits: 3, MaxCapacity: capacity}
	f.courses[id] = course
	return course
}

func (f *fakeStore) enrollmentOf(courseID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.courses[courseID].CurrentEnrollment
}

// AccountStore

func (f *fakeStore) Create(_ context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.students {
		if existing.Email == student.Email {
			return apperrors.ErrEmailExists
		}
		if existing.StudentNo == student.StudentNo {
			return apperrors.ErrStudentNoExists
		}
	}
	f.nextID++
	student.ID = f.nextID
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, student := range f.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, id int64, firstName, lastName, major string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	student, ok := f.students[id]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	student.FirstName = firstName
	student.LastName = lastName
	student.Major = major
	return nil
}

func (f *fakeStore) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, student := range f.students {
		if student.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) StudentNoExists(_ context.Context, studentNo string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, student := range f.students {
		if student.StudentNo == studentNo {
			return true, nil
		}
	}
	return false, nil
}

// EnrollmentStore

func (f *fakeStore) Exists(_ context.Context, studentID, courseID int64, semester string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	return f.registrations[regKey{studentID, courseID, semester}], nil
}

func (f *fakeStore) Enroll(_ context.Context, studentID, courseID int64, semester string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	key := regKey{studentID, courseID, semester}
	if f.registrations[key] {
		return apperrors.ErrAlreadyRegistered
	}
	course, ok := f.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if course.CurrentEnrollment >= course.MaxCapacity {
		return apperrors.ErrCourseFull
	}
	f.registrations[key] = true
	course.CurrentEnrollment++
	return nil
}

func (f *fakeStore) Drop(_ context.Context, studentID, courseID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	dropped := false
	for key := range f.registrations {
		if key.studentID == studentID && key.courseID == courseID {
			delete(f.registrations, key)
			dropped = true
		}
	}
	if dropped {
		if course, ok := f.courses[courseID]; ok && course.CurrentEnrollment > 0 {
			course.CurrentEnrollment--
		}
	}
	return dropped, nil
}

func (f *fakeStore) ListRegistrations(_ context.Context, studentID int64) ([]models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var registrations []models.Registration
	for key := range f.registrations {
		if key.studentID == studentID {
			registrations = append(registrations, models.Registration{
				StudentID: key.studentID,
				CourseID:  key.courseID,
				Semester:  key.semester,
			})
		}
	}
	return registrations, nil
}

// CourseStore

func (f *fakeStore) GetAll(_ context.Context) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var courses []models.Course
	for _, course := range f.courses {
		courses = append(courses, *course)
	}
	return courses, nil
}

func (f *fakeStore) GetByStudentID(_ context.Context, studentID int64) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var courses []models.Course
	for key := range f.registrations {
		if key.studentID == studentID {
			if course, ok := f.courses[key.courseID]; ok {
				courses = append(courses, *course)
			}
		}
	}
	return courses, nil
}

// GradeStore

func (f *fakeStore) ListByStudent(_ context.Context, studentID int64) ([]models.GradeReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.grades[studentID], nil
}

// fakeAnnouncements implements AnnouncementStore; it is separate because
// its GetAll signature clashes with the course catalog's.
type fakeAnnouncements struct {
	items    []models.Announcement
	failWith error
}

func (f *fakeAnnouncements) GetAll(_ context.Context) ([]models.Announcement, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.items, nil
}
