package service

import (
	"context"
	"errors"

	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/repository"
)

// ReportingService вычисляет структуру подчинённости сотрудника
type ReportingService interface {
	CountTotalReports(ctx context.Context, id string) (int, error)
	CountTotalReportsOf(ctx context.Context, emp *domain.Employee) (int, error)
	GetReportingStructure(ctx context.Context, id string) (*domain.ReportingStructure, error)
}

type reportingService struct {
	empRepo repository.EmployeeRepository
}

// NewReportingService создаёт новый экземпляр сервиса
func NewReportingService(empRepo repository.EmployeeRepository) ReportingService {
	return &reportingService{empRepo: empRepo}
}

// CountTotalReports возвращает общее число подчинённых сотрудника по всем
// уровням: каждый достижимый по рёбрам "прямой подчинённый" сотрудник
// учитывается один раз. Для пустого или неизвестного идентификатора
// возвращается 0 без ошибки - намеренно мягкое поведение.
func (s *reportingService) CountTotalReports(ctx context.Context, id string) (int, error) {
	if id == "" {
		return 0, nil
	}

	emp, err := s.empRepo.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return 0, nil
		}
		return 0, err
	}

	visited := make(map[string]bool)
	return s.countReports(ctx, emp, visited)
}

// CountTotalReportsOf считает подчинённых переданного сотрудника.
// Отсутствующий сотрудник здесь - ошибка вызывающего, а не мягкий ноль.
func (s *reportingService) CountTotalReportsOf(ctx context.Context, emp *domain.Employee) (int, error) {
	if emp == nil {
		return 0, domain.ErrInvalidEmployee
	}

	return s.CountTotalReports(ctx, emp.EmployeeID)
}

// GetReportingStructure возвращает сотрудника вместе с вычисленным числом
// подчинённых. Результат не кешируется между запросами.
func (s *reportingService) GetReportingStructure(ctx context.Context, id string) (*domain.ReportingStructure, error) {
	if id == "" {
		return nil, domain.ErrEmployeeNotFound
	}

	emp, err := s.empRepo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool)
	count, err := s.countReports(ctx, emp, visited)
	if err != nil {
		return nil, err
	}

	return &domain.ReportingStructure{
		Employee:        emp,
		NumberOfReports: count,
	}, nil
}

// countReports рекурсивно обходит дерево подчинённых в глубину и возвращает
// число узлов строго ниже emp. Каждый посещаемый узел выбирается из хранилища
// с загруженными подчинёнными - по одному обращению на узел. Повторное
// посещение идентификатора означает цикл в данных и завершается ошибкой
// вместо бесконечного обхода.
func (s *reportingService) countReports(ctx context.Context, emp *domain.Employee, visited map[string]bool) (int, error) {
	if visited[emp.EmployeeID] {
		return 0, domain.ErrReportingCycle
	}
	visited[emp.EmployeeID] = true

	total := len(emp.DirectReports)

	for _, report := range emp.DirectReports {
		child, err := s.empRepo.GetByID(ctx, report.EmployeeID, true)
		if err != nil {
			return 0, err
		}

		sub, err := s.countReports(ctx, child, visited)
		if err != nil {
			return 0, err
		}
		total += sub
	}

	return total, nil
}
