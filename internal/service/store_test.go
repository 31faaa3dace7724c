package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/internal/repository"
)

// memStore is an in-memory stand-in for every repository the services use.
type memStore struct {
	nextID         int64
	classes        map[int64]models.Class
	students       map[int64]models.Student
	accommodations map[int64]models.Accommodation
	enrollments    map[[2]int64]models.Enrollment
	periods        map[int64]models.SixWeekPeriod
	logs           map[logKey]bool
	toggles        int
}

type logKey struct {
	classID, accID int64
	date           string
}

func newMemStore() *memStore {
	return &memStore{
		classes:        map[int64]models.Class{},
		students:       map[int64]models.Student{},
		accommodations: map[int64]models.Accommodation{},
		enrollments:    map[[2]int64]models.Enrollment{},
		periods:        map[int64]models.SixWeekPeriod{},
		logs:           map[logKey]bool{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

type memClasses struct{ *memStore }

func (r memClasses) List(ctx context.Context) ([]models.Class, error) {
	out := []models.Class{}
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memClasses) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r memClasses) Create(ctx context.Context, class *models.Class) error {
	class.ID = r.id()
	r.classes[class.ID] = *class
	return nil
}

func (r memClasses) Update(ctx context.Context, class *models.Class) (bool, error) {
	if _, ok := r.classes[class.ID]; !ok {
		return false, nil
	}
	r.classes[class.ID] = *class
	return true, nil
}

func (r memClasses) Delete(ctx context.Context, id int64) error {
	delete(r.classes, id)
	return nil
}

type memStudents struct{ *memStore }

func (r memStudents) sorted(keep func(models.Student) bool) []models.Student {
	out := []models.Student{}
	for _, s := range r.students {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r memStudents) List(ctx context.Context) ([]models.Student, error) {
	return r.sorted(func(models.Student) bool { return true }), nil
}

func (r memStudents) ListByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	return r.sorted(func(s models.Student) bool {
		_, ok := r.enrollments[[2]int64{classID, s.ID}]
		return ok
	}), nil
}

func (r memStudents) ListNotInClass(ctx context.Context, classID int64) ([]models.Student, error) {
	return r.sorted(func(s models.Student) bool {
		_, ok := r.enrollments[[2]int64{classID, s.ID}]
		return !ok
	}), nil
}

func (r memStudents) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (r memStudents) Create(ctx context.Context, student *models.Student) error {
	for _, s := range r.students {
		if s.StudentID == student.StudentID {
			return repository.ErrDuplicate
		}
	}
	student.ID = r.id()
	r.students[student.ID] = *student
	return nil
}

func (r memStudents) Update(ctx context.Context, student *models.Student) (bool, error) {
	if _, ok := r.students[student.ID]; !ok {
		return false, nil
	}
	for _, s := range r.students {
		if s.ID != student.ID && s.StudentID == student.StudentID {
			return false, repository.ErrDuplicate
		}
	}
	r.students[student.ID] = *student
	return true, nil
}

func (r memStudents) Delete(ctx context.Context, id int64) error {
	delete(r.students, id)
	return nil
}

type memAccommodations struct{ *memStore }

func (r memAccommodations) ListByStudent(ctx context.Context, studentID int64) ([]models.Accommodation, error) {
	grouped, _ := r.ListByStudents(ctx, []int64{studentID})
	if grouped[studentID] == nil {
		return []models.Accommodation{}, nil
	}
	return grouped[studentID], nil
}

func (r memAccommodations) ListByStudents(ctx context.Context, ids []int64) (map[int64][]models.Accommodation, error) {
	wanted := map[int64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := map[int64][]models.Accommodation{}
	for _, a := range r.accommodations {
		if wanted[a.StudentID] {
			out[a.StudentID] = append(out[a.StudentID], a)
		}
	}
	for id := range out {
		list := out[id]
		sort.Slice(list, func(i, j int) bool {
			if list[i].Category != list[j].Category {
				return list[i].Category < list[j].Category
			}
			if list[i].Description != list[j].Description {
				return list[i].Description < list[j].Description
			}
			return list[i].ID < list[j].ID
		})
	}
	return out, nil
}

func (r memAccommodations) FindByID(ctx context.Context, id int64) (*models.Accommodation, error) {
	a, ok := r.accommodations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (r memAccommodations) Create(ctx context.Context, acc *models.Accommodation) error {
	acc.ID = r.id()
	r.accommodations[acc.ID] = *acc
	return nil
}

func (r memAccommodations) Update(ctx context.Context, acc *models.Accommodation) (bool, error) {
	if _, ok := r.accommodations[acc.ID]; !ok {
		return false, nil
	}
	r.accommodations[acc.ID] = *acc
	return true, nil
}

func (r memAccommodations) Delete(ctx context.Context, id int64) error {
	delete(r.accommodations, id)
	return nil
}

type memEnrollments struct{ *memStore }

func (r memEnrollments) Exists(ctx context.Context, classID, studentID int64) (bool, error) {
	_, ok := r.enrollments[[2]int64{classID, studentID}]
	return ok, nil
}

func (r memEnrollments) Create(ctx context.Context, e *models.Enrollment) error {
	key := [2]int64{e.ClassID, e.StudentID}
	if _, ok := r.enrollments[key]; ok {
		return repository.ErrDuplicate
	}
	e.ID = r.id()
	r.enrollments[key] = *e
	return nil
}

func (r memEnrollments) Delete(ctx context.Context, classID, studentID int64) error {
	delete(r.enrollments, [2]int64{classID, studentID})
	return nil
}

type memPeriods struct{ *memStore }

func (r memPeriods) List(ctx context.Context, filter models.PeriodFilter) ([]models.SixWeekPeriod, error) {
	out := []models.SixWeekPeriod{}
	for _, p := range r.periods {
		if filter.Year == "" || p.Year == filter.Year {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

func (r memPeriods) FindByID(ctx context.Context, id int64) (*models.SixWeekPeriod, error) {
	p, ok := r.periods[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (r memPeriods) Create(ctx context.Context, p *models.SixWeekPeriod) error {
	p.ID = r.id()
	r.periods[p.ID] = *p
	return nil
}

func (r memPeriods) Update(ctx context.Context, p *models.SixWeekPeriod) (bool, error) {
	if _, ok := r.periods[p.ID]; !ok {
		return false, nil
	}
	r.periods[p.ID] = *p
	return true, nil
}

func (r memPeriods) Delete(ctx context.Context, id int64) error {
	delete(r.periods, id)
	return nil
}

type memLogs struct{ *memStore }

func (r memLogs) Toggle(ctx context.Context, classID, accID int64, date string) (bool, error) {
	r.toggles++
	key := logKey{classID, accID, date}
	provided, ok := r.logs[key]
	if !ok {
		r.logs[key] = true
		return true, nil
	}
	r.logs[key] = !provided
	return !provided, nil
}

func (r memLogs) ListByClassAndRange(ctx context.Context, classID int64, start, end string) ([]models.ServiceLog, error) {
	out := []models.ServiceLog{}
	for k, v := range r.logs {
		if k.classID == classID && k.date >= start && k.date <= end {
			out = append(out, models.ServiceLog{ClassID: k.classID, AccommodationID: k.accID, ServiceDate: k.date, Provided: v})
		}
	}
	return out, nil
}

// fixture wires every service over one memStore.
type fixture struct {
	store          *memStore
	classes        *ClassService
	students       *StudentService
	accommodations *AccommodationService
	enrollments    *EnrollmentService
	periods        *PeriodService
	tracking       *TrackingService
}

func newFixture() *fixture {
	st := newMemStore()
	f := &fixture{store: st}
	f.classes = NewClassService(memClasses{st}, memStudents{st}, memAccommodations{st}, nil, nil)
	f.students = NewStudentService(memStudents{st}, nil, nil)
	f.accommodations = NewAccommodationService(memAccommodations{st}, memStudents{st}, nil, nil)
	f.enrollments = NewEnrollmentService(memEnrollments{st}, memClasses{st}, memStudents{st}, nil)
	f.periods = NewPeriodService(memPeriods{st}, nil, nil)
	f.tracking = NewTrackingService(memClasses{st}, memStudents{st}, memAccommodations{st}, memPeriods{st}, memLogs{st}, nil, nil)
	return f
}
