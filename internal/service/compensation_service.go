package service

import (
	"context"
	"errors"
	"time"

	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/dto"
	"github.com/employee-directory-api/internal/repository"
)

// CompensationService определяет интерфейс бизнес-логики для вознаграждений
type CompensationService interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Compensation, error)
	HasCompensation(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, req *dto.CreateCompensationRequest) (*domain.Compensation, error)
}

type compensationService struct {
	compRepo repository.CompensationRepository
	empRepo  repository.EmployeeRepository
	locks    *KeyedMutex
}

// NewCompensationService создаёт новый экземпляр сервиса
func NewCompensationService(
	compRepo repository.CompensationRepository,
	empRepo repository.EmployeeRepository,
	locks *KeyedMutex,
) CompensationService {
	return &compensationService{
		compRepo: compRepo,
		empRepo:  empRepo,
		locks:    locks,
	}
}

func (s *compensationService) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Compensation, error) {
	if employeeID == "" {
		return nil, domain.ErrCompensationNotFound
	}

	return s.compRepo.GetByEmployeeID(ctx, employeeID)
}

func (s *compensationService) HasCompensation(ctx context.Context, employeeID string) (bool, error) {
	_, err := s.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrCompensationNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create создаёт вознаграждение для сотрудника. Сотрудник обязан существовать,
// и не более одного вознаграждения допускается на сотрудника. Проверка и
// вставка выполняются под блокировкой идентификатора, а само хранилище
// дополнительно отвергает вставку по занятому ключу.
func (s *compensationService) Create(ctx context.Context, req *dto.CreateCompensationRequest) (*domain.Compensation, error) {
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return nil, domain.ErrInvalidEffectiveDate
	}

	unlock := s.locks.Lock(req.EmployeeID)
	defer unlock()

	// Вознаграждение без сотрудника недопустимо
	if _, err := s.empRepo.GetByID(ctx, req.EmployeeID, false); err != nil {
		return nil, err
	}

	comp := &domain.Compensation{
		EmployeeID:    req.EmployeeID,
		Salary:        req.Salary,
		EffectiveDate: effectiveDate,
	}

	if err := s.compRepo.Create(ctx, comp); err != nil {
		return nil, err
	}

	return comp, nil
}
