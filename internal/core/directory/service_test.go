package directory

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/hrms-lite/internal/core/event"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeEmployeeRepo struct {
	employees map[string]*Employee
	order     []string
	listCalls int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *Employee) (*Employee, error) {
	for _, existing := range r.employees {
		if existing.EmployeeID == e.EmployeeID {
			return nil, ErrEmployeeIDAlreadyExists
		}
		if existing.Email == e.Email {
			return nil, ErrEmailAlreadyExists
		}
	}
	clone := *e
	r.employees[e.EmployeeID] = &clone
	r.order = append(r.order, e.EmployeeID)
	result := clone
	return &result, nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, employeeID string) error {
	if _, ok := r.employees[employeeID]; !ok {
		return ErrEmployeeNotFound
	}
	delete(r.employees, employeeID)
	for idx, id := range r.order {
		if id == employeeID {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeEmployeeRepo) FindByEmployeeID(_ context.Context, employeeID string) (*Employee, error) {
	emp, ok := r.employees[employeeID]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	clone := *emp
	return &clone, nil
}

func (r *fakeEmployeeRepo) FindByEmail(_ context.Context, email string) (*Employee, error) {
	for _, emp := range r.employees {
		if emp.Email == email {
			clone := *emp
			return &clone, nil
		}
	}
	return nil, ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(_ context.Context) iter.Seq2[*Employee, error] {
	return func(yield func(*Employee, error) bool) {
		r.listCalls++
		for _, id := range r.order {
			clone := *r.employees[id]
			if !yield(&clone, nil) {
				return
			}
		}
	}
}

func (r *fakeEmployeeRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.employees))
	r.employees = make(map[string]*Employee)
	r.order = nil
	return n, nil
}

type recordingPublisher struct {
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.events = append(p.events, e)
	return nil
}

func TestService_AddEmployee_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	pub := &recordingPublisher{}
	svc := NewService(repo, &stubClock{now: now}, nil, pub)

	created, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: " E001 ",
		FullName:   "  Asha Rao ",
		Email:      " Asha.Rao@example.com ",
		Department: " Engineering ",
	})
	if err != nil {
		t.Fatalf("AddEmployee returned error: %v", err)
	}

	if created.EmployeeID != "E001" || created.FullName != "Asha Rao" || created.Department != "Engineering" {
		t.Fatalf("expected trimmed fields, got %+v", created)
	}
	if created.Email != "Asha.Rao@example.com" {
		t.Fatalf("expected email case to be preserved, got %s", created.Email)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at from clock, got %v", created.CreatedAt)
	}
	if len(pub.events) != 1 || pub.events[0].Type != event.TypeEmployeeAdded || pub.events[0].Key != "E001" {
		t.Fatalf("expected employee.added event, got %+v", pub.events)
	}
}

func TestService_AddEmployee_DuplicateEmployeeID(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, nil, nil)

	if _, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: "E001", FullName: "Asha", Email: "asha@example.com", Department: "Eng",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: "E001", FullName: "Other", Email: "other@example.com", Department: "Ops",
	})
	if !errors.Is(err, ErrEmployeeIDAlreadyExists) {
		t.Fatalf("expected ErrEmployeeIDAlreadyExists, got %v", err)
	}
	if !strings.Contains(err.Error(), `employee_id="E001"`) {
		t.Fatalf("expected offending key in error, got %v", err)
	}
	if len(repo.employees) != 1 || repo.employees["E001"].FullName != "Asha" {
		t.Fatalf("expected original employee to remain untouched, got %+v", repo.employees)
	}
}

func TestService_AddEmployee_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, nil, nil)

	if _, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: "E001", FullName: "Asha", Email: "asha@example.com", Department: "Eng",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: "E002", FullName: "Other", Email: "asha@example.com", Department: "Ops",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if len(repo.employees) != 1 {
		t.Fatalf("expected exactly one stored employee, got %d", len(repo.employees))
	}
}

func TestService_AddEmployee_EmailMatchIsCaseSensitive(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, nil, nil)

	if _, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: "E001", FullName: "Asha", Email: "asha@example.com", Department: "Eng",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: "E002", FullName: "Asha", Email: "ASHA@example.com", Department: "Eng",
	}); err != nil {
		t.Fatalf("expected differently cased email to be accepted, got %v", err)
	}
}

func TestService_AddEmployee_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo(), nil, nil, nil)

	cases := []struct {
		name string
		in   AddEmployeeInput
		want error
	}{
		{"missing id", AddEmployeeInput{FullName: "A", Email: "a@example.com", Department: "D"}, ErrInvalidEmployeeID},
		{"missing name", AddEmployeeInput{EmployeeID: "E1", Email: "a@example.com", Department: "D"}, ErrInvalidFullName},
		{"bad email", AddEmployeeInput{EmployeeID: "E1", FullName: "A", Email: "not-an-email", Department: "D"}, ErrInvalidEmail},
		{"display name email", AddEmployeeInput{EmployeeID: "E1", FullName: "A", Email: "A <a@example.com>", Department: "D"}, ErrInvalidEmail},
		{"missing department", AddEmployeeInput{EmployeeID: "E1", FullName: "A", Email: "a@example.com"}, ErrInvalidDepartment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := svc.AddEmployee(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestService_ListEmployees_RestartsOnEachRange(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, nil, nil)

	for _, id := range []string{"E001", "E002"} {
		if _, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
			EmployeeID: id, FullName: "Seed", Email: id + "@example.com", Department: "Eng",
		}); err != nil {
			t.Fatalf("unexpected seed error: %v", err)
		}
	}

	seq := svc.ListEmployees(context.Background())

	first, err := Collect(seq)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(first) != 2 || first[0].EmployeeID != "E001" || first[1].EmployeeID != "E002" {
		t.Fatalf("expected insertion order, got %+v", first)
	}

	if _, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: "E003", FullName: "Late", Email: "late@example.com", Department: "Ops",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := Collect(seq)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(second) != 3 {
		t.Fatalf("expected re-query to see 3 employees, got %d", len(second))
	}
	if repo.listCalls != 2 {
		t.Fatalf("expected two list queries, got %d", repo.listCalls)
	}
}

func TestService_RemoveEmployee(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	pub := &recordingPublisher{}
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, nil, pub)

	if _, err := svc.AddEmployee(context.Background(), AddEmployeeInput{
		EmployeeID: "E001", FullName: "Asha", Email: "asha@example.com", Department: "Eng",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.RemoveEmployee(context.Background(), RemoveEmployeeInput{EmployeeID: "E001"}); err != nil {
		t.Fatalf("RemoveEmployee returned error: %v", err)
	}
	if len(repo.employees) != 0 {
		t.Fatalf("expected employee to be removed")
	}
	if pub.events[len(pub.events)-1].Type != event.TypeEmployeeRemoved {
		t.Fatalf("expected employee.removed event, got %+v", pub.events)
	}

	err := svc.RemoveEmployee(context.Background(), RemoveEmployeeInput{EmployeeID: "E001"})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestService_GetEmployee_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo(), nil, nil, nil)

	if _, err := svc.GetEmployee(context.Background(), GetEmployeeInput{EmployeeID: "missing"}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if _, err := svc.GetEmployee(context.Background(), GetEmployeeInput{EmployeeID: " "}); !errors.Is(err, ErrInvalidEmployeeID) {
		t.Fatalf("expected ErrInvalidEmployeeID, got %v", err)
	}
}
