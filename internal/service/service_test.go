package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/dto"
	"github.com/employee-directory-api/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mockEmployeeRepo struct {
	employees map[string]*domain.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees: make(map[string]*domain.Employee),
	}
}

func (m *mockEmployeeRepo) Create(ctx context.Context, emp *domain.Employee) error {
	if emp.EmployeeID == "" {
		emp.EmployeeID = uuid.NewString()
	}
	stored := *emp
	stored.DirectReports = nil
	m.employees[stored.EmployeeID] = &stored
	m.linkDirectReports(emp)
	return nil
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id string, loadDirectReports bool) (*domain.Employee, error) {
	stored, ok := m.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}

	emp := *stored
	if loadDirectReports {
		for _, other := range m.employees {
			if other.ManagerID != nil && *other.ManagerID == id {
				emp.DirectReports = append(emp.DirectReports, *other)
			}
		}
	}
	return &emp, nil
}

func (m *mockEmployeeRepo) Replace(ctx context.Context, original, replacement *domain.Employee) error {
	for _, other := range m.employees {
		if other.ManagerID != nil && *other.ManagerID == original.EmployeeID {
			other.ManagerID = nil
		}
	}
	delete(m.employees, original.EmployeeID)

	if replacement == nil {
		return nil
	}

	replacement.EmployeeID = original.EmployeeID
	stored := *replacement
	stored.DirectReports = nil
	m.employees[stored.EmployeeID] = &stored
	m.linkDirectReports(replacement)
	return nil
}

func (m *mockEmployeeRepo) linkDirectReports(emp *domain.Employee) {
	for _, report := range emp.DirectReports {
		if child, ok := m.employees[report.EmployeeID]; ok {
			managerID := emp.EmployeeID
			child.ManagerID = &managerID
		}
	}
}

// addEmployee кладёт запись напрямую в хранилище мока
func (m *mockEmployeeRepo) addEmployee(id string, managerID *string) {
	m.employees[id] = &domain.Employee{
		EmployeeID: id,
		FirstName:  "First-" + id,
		LastName:   "Last-" + id,
		ManagerID:  managerID,
	}
}

type mockCompensationRepo struct {
	compensations map[string]*domain.Compensation
}

func newMockCompensationRepo() *mockCompensationRepo {
	return &mockCompensationRepo{
		compensations: make(map[string]*domain.Compensation),
	}
}

func (m *mockCompensationRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Compensation, error) {
	if comp, ok := m.compensations[employeeID]; ok {
		return comp, nil
	}
	return nil, domain.ErrCompensationNotFound
}

func (m *mockCompensationRepo) Create(ctx context.Context, comp *domain.Compensation) error {
	if _, ok := m.compensations[comp.EmployeeID]; ok {
		return domain.ErrCompensationExists
	}
	m.compensations[comp.EmployeeID] = comp
	return nil
}

func newReportingService(repo *mockEmployeeRepo) service.ReportingService {
	return service.NewReportingService(repo)
}

func TestCountTotalReports_Leaf(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.addEmployee("leaf", nil)

	count, err := newReportingService(repo).CountTotalReports(context.Background(), "leaf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}
}

func TestCountTotalReports_Chain(t *testing.T) {
	repo := newMockEmployeeRepo()
	a, b := "a", "b"
	repo.addEmployee("a", nil)
	repo.addEmployee("b", &a)
	repo.addEmployee("c", &b)

	svc := newReportingService(repo)

	tests := []struct {
		id       string
		expected int
	}{
		{"a", 2},
		{"b", 1},
		{"c", 0},
	}

	for _, tt := range tests {
		count, err := svc.CountTotalReports(context.Background(), tt.id)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.id, err)
		}
		if count != tt.expected {
			t.Errorf("expected %d for %q, got %d", tt.expected, tt.id, count)
		}
	}
}

func TestCountTotalReports_BalancedTree(t *testing.T) {
	repo := newMockEmployeeRepo()
	root := "root"
	repo.addEmployee(root, nil)
	for i := 0; i < 5; i++ {
		repo.addEmployee(fmt.Sprintf("leaf-%d", i), &root)
	}

	count, err := newReportingService(repo).CountTotalReports(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5, got %d", count)
	}
}

func TestCountTotalReports_EmptyID(t *testing.T) {
	repo := newMockEmployeeRepo()

	count, err := newReportingService(repo).CountTotalReports(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}
}

func TestCountTotalReports_UnknownID(t *testing.T) {
	repo := newMockEmployeeRepo()

	count, err := newReportingService(repo).CountTotalReports(context.Background(), "nonexistent-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}
}

func TestCountTotalReports_TwoLevels(t *testing.T) {
	// "100" руководит "101" и "102", "101" руководит "103" и "104"
	repo := newMockEmployeeRepo()
	id100, id101 := "100", "101"
	repo.addEmployee("100", nil)
	repo.addEmployee("101", &id100)
	repo.addEmployee("102", &id100)
	repo.addEmployee("103", &id101)
	repo.addEmployee("104", &id101)

	count, err := newReportingService(repo).CountTotalReports(context.Background(), "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4, got %d", count)
	}
}

func TestCountTotalReports_Cycle(t *testing.T) {
	repo := newMockEmployeeRepo()
	a, b := "a", "b"
	repo.addEmployee("a", &b)
	repo.addEmployee("b", &a)

	_, err := newReportingService(repo).CountTotalReports(context.Background(), "a")
	if !errors.Is(err, domain.ErrReportingCycle) {
		t.Errorf("expected ErrReportingCycle, got %v", err)
	}
}

func TestCountTotalReportsOf_NilEmployee(t *testing.T) {
	repo := newMockEmployeeRepo()

	_, err := newReportingService(repo).CountTotalReportsOf(context.Background(), nil)
	if !errors.Is(err, domain.ErrInvalidEmployee) {
		t.Errorf("expected ErrInvalidEmployee, got %v", err)
	}
}

func TestGetReportingStructure_NotFound(t *testing.T) {
	repo := newMockEmployeeRepo()

	_, err := newReportingService(repo).GetReportingStructure(context.Background(), "nonexistent-id")
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func newEmployeeService(repo *mockEmployeeRepo) service.EmployeeService {
	return service.NewEmployeeService(repo, service.NewKeyedMutex())
}

func TestEmployeeCreate_AssignsID(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(repo)

	emp, err := svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		FirstName: "John",
		LastName:  "Lennon",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.EmployeeID == "" {
		t.Error("expected store-assigned employee id, got empty string")
	}
}

func TestEmployeeGetByID_EmptyID(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(repo)

	_, err := svc.GetByID(context.Background(), "")
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeReplace_SameRecord(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateEmployeeRequest{
		EmployeeID: "emp-1",
		FirstName:  "Ringo",
		LastName:   "Starr",
		Position:   "Developer V",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replaced, err := svc.Replace(ctx, created.EmployeeID, &dto.ReplaceEmployeeRequest{
		FirstName: "Ringo",
		LastName:  "Starr",
		Position:  "Developer V",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if replaced.EmployeeID != "emp-1" {
		t.Errorf("expected id 'emp-1', got %q", replaced.EmployeeID)
	}

	fetched, err := svc.GetByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.FirstName != "Ringo" || fetched.LastName != "Starr" || fetched.Position != "Developer V" {
		t.Errorf("expected unchanged fields, got %+v", fetched)
	}
}

func TestEmployeeReplace_PreservesIdentifier(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateEmployeeRequest{
		EmployeeID: "emp-1",
		FirstName:  "Pete",
		LastName:   "Best",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Идентификатор в теле замены отбрасывается
	replaced, err := svc.Replace(ctx, "emp-1", &dto.ReplaceEmployeeRequest{
		EmployeeID: "some-other-id",
		FirstName:  "Ringo",
		LastName:   "Starr",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replaced.EmployeeID != "emp-1" {
		t.Errorf("expected id 'emp-1', got %q", replaced.EmployeeID)
	}

	fetched, err := svc.GetByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.FirstName != "Ringo" {
		t.Errorf("expected replacement fields under original id, got %+v", fetched)
	}

	if _, err := svc.GetByID(ctx, "some-other-id"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound for discarded id, got %v", err)
	}
}

func TestEmployeeReplace_NilReplacementDeletes(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateEmployeeRequest{
		EmployeeID: "emp-1",
		FirstName:  "Stuart",
		LastName:   "Sutcliffe",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replaced, err := svc.Replace(ctx, "emp-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replaced != nil {
		t.Errorf("expected nil result, got %+v", replaced)
	}

	if _, err := svc.GetByID(ctx, "emp-1"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound after delete, got %v", err)
	}
}

func TestEmployeeReplace_NotFound(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(repo)

	_, err := svc.Replace(context.Background(), "missing", &dto.ReplaceEmployeeRequest{
		FirstName: "George",
		LastName:  "Harrison",
	})
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func newCompensationService(compRepo *mockCompensationRepo, empRepo *mockEmployeeRepo) service.CompensationService {
	return service.NewCompensationService(compRepo, empRepo, service.NewKeyedMutex())
}

func TestCompensationCreate_Success(t *testing.T) {
	empRepo := newMockEmployeeRepo()
	compRepo := newMockCompensationRepo()
	empRepo.addEmployee("emp-1", nil)

	svc := newCompensationService(compRepo, empRepo)

	comp, err := svc.Create(context.Background(), &dto.CreateCompensationRequest{
		EmployeeID:    "emp-1",
		Salary:        decimal.NewFromInt(95000),
		EffectiveDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !comp.Salary.Equal(decimal.NewFromInt(95000)) {
		t.Errorf("expected salary 95000, got %s", comp.Salary)
	}
	if comp.EffectiveDate.Format("2006-01-02") != "2025-06-01" {
		t.Errorf("expected effective date 2025-06-01, got %s", comp.EffectiveDate)
	}
}

func TestCompensationCreate_EmployeeNotFound(t *testing.T) {
	empRepo := newMockEmployeeRepo()
	compRepo := newMockCompensationRepo()

	svc := newCompensationService(compRepo, empRepo)

	_, err := svc.Create(context.Background(), &dto.CreateCompensationRequest{
		EmployeeID:    "missing",
		Salary:        decimal.NewFromInt(95000),
		EffectiveDate: "2025-06-01",
	})
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}

	// Осиротевшее вознаграждение не должно сохраняться
	if _, ok := compRepo.compensations["missing"]; ok {
		t.Error("expected no compensation persisted for missing employee")
	}
}

func TestCompensationCreate_Conflict(t *testing.T) {
	empRepo := newMockEmployeeRepo()
	compRepo := newMockCompensationRepo()
	empRepo.addEmployee("emp-1", nil)

	svc := newCompensationService(compRepo, empRepo)
	ctx := context.Background()

	req := &dto.CreateCompensationRequest{
		EmployeeID:    "emp-1",
		Salary:        decimal.NewFromInt(95000),
		EffectiveDate: "2025-06-01",
	}

	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := &dto.CreateCompensationRequest{
		EmployeeID:    "emp-1",
		Salary:        decimal.NewFromInt(120000),
		EffectiveDate: "2026-01-01",
	}
	if _, err := svc.Create(ctx, second); !errors.Is(err, domain.ErrCompensationExists) {
		t.Errorf("expected ErrCompensationExists, got %v", err)
	}

	// Первая запись не должна быть перетёрта
	comp, err := svc.GetByEmployeeID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !comp.Salary.Equal(decimal.NewFromInt(95000)) {
		t.Errorf("expected original salary 95000, got %s", comp.Salary)
	}
}

func TestCompensationCreate_InvalidDate(t *testing.T) {
	empRepo := newMockEmployeeRepo()
	compRepo := newMockCompensationRepo()
	empRepo.addEmployee("emp-1", nil)

	svc := newCompensationService(compRepo, empRepo)

	_, err := svc.Create(context.Background(), &dto.CreateCompensationRequest{
		EmployeeID:    "emp-1",
		Salary:        decimal.NewFromInt(95000),
		EffectiveDate: "06/01/2025",
	})
	if !errors.Is(err, domain.ErrInvalidEffectiveDate) {
		t.Errorf("expected ErrInvalidEffectiveDate, got %v", err)
	}
}

func TestHasCompensation(t *testing.T) {
	empRepo := newMockEmployeeRepo()
	compRepo := newMockCompensationRepo()
	empRepo.addEmployee("emp-1", nil)

	svc := newCompensationService(compRepo, empRepo)
	ctx := context.Background()

	has, err := svc.HasCompensation(ctx, "emp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has {
		t.Error("expected no compensation before create")
	}

	if _, err := svc.Create(ctx, &dto.CreateCompensationRequest{
		EmployeeID:    "emp-1",
		Salary:        decimal.NewFromInt(95000),
		EffectiveDate: "2025-06-01",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	has, err = svc.HasCompensation(ctx, "emp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has {
		t.Error("expected compensation after create")
	}
}

func TestCompensationGetByEmployeeID_EmptyID(t *testing.T) {
	svc := newCompensationService(newMockCompensationRepo(), newMockEmployeeRepo())

	_, err := svc.GetByEmployeeID(context.Background(), "")
	if !errors.Is(err, domain.ErrCompensationNotFound) {
		t.Errorf("expected ErrCompensationNotFound, got %v", err)
	}
}
