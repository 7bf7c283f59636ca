package service

import (
	"context"
	"strings"

	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/dto"
	"github.com/employee-directory-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Replace(ctx context.Context, id string, req *dto.ReplaceEmployeeRequest) (*domain.Employee, error)
}

type employeeService struct {
	empRepo repository.EmployeeRepository
	locks   *KeyedMutex
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository, locks *KeyedMutex) EmployeeService {
	return &employeeService{
		empRepo: empRepo,
		locks:   locks,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	emp := &domain.Employee{
		EmployeeID:    strings.TrimSpace(req.EmployeeID),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Position:      strings.TrimSpace(req.Position),
		Department:    strings.TrimSpace(req.Department),
		DirectReports: reportRefs(req.DirectReports),
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	// Перечитываем с загруженными подчинёнными для ответа
	return s.empRepo.GetByID(ctx, emp.EmployeeID, true)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	// Пустой идентификатор неотличим для вызывающего от отсутствующего
	if id == "" {
		return nil, domain.ErrEmployeeNotFound
	}

	return s.empRepo.GetByID(ctx, id, true)
}

// Replace заменяет запись сотрудника целиком, сохраняя её идентификатор.
// Переданный в req идентификатор отбрасывается. При req == nil итогом
// становится удаление исходной записи без замены.
func (s *employeeService) Replace(ctx context.Context, id string, req *dto.ReplaceEmployeeRequest) (*domain.Employee, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	original, err := s.empRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if req == nil {
		return nil, s.empRepo.Replace(ctx, original, nil)
	}

	replacement := &domain.Employee{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Position:      strings.TrimSpace(req.Position),
		Department:    strings.TrimSpace(req.Department),
		DirectReports: reportRefs(req.DirectReports),
	}

	if err := s.empRepo.Replace(ctx, original, replacement); err != nil {
		return nil, err
	}

	return s.empRepo.GetByID(ctx, original.EmployeeID, true)
}

// reportRefs превращает список идентификаторов в ссылки на сотрудников
func reportRefs(ids []string) []domain.Employee {
	if len(ids) == 0 {
		return nil
	}

	refs := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, domain.Employee{EmployeeID: id})
	}
	return refs
}
