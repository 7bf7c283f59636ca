package repository

import (
	"context"
	"errors"

	"github.com/employee-directory-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string, loadDirectReports bool) (*domain.Employee, error)
	Replace(ctx context.Context, original, replacement *domain.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	// Хранилище назначает идентификатор, если он не передан
	if emp.EmployeeID == "" {
		emp.EmployeeID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("DirectReports").Create(emp).Error; err != nil {
			return err
		}
		return linkDirectReports(tx, emp)
	})
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, loadDirectReports bool) (*domain.Employee, error) {
	query := r.db.WithContext(ctx)

	// Загрузка подчинённых - явный параметр выборки, а не побочный
	// эффект кеширования
	if loadDirectReports {
		query = query.Preload("DirectReports", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}

	var emp domain.Employee
	err := query.First(&emp, "employee_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Replace удаляет original и добавляет replacement под тем же идентификатором
// в одной транзакции: хранилище не допускает двух живых записей под одним
// ключом, а разрыв между удалением и вставкой открывал бы окно гонки.
// При replacement == nil запись просто удаляется.
func (r *employeeRepository) Replace(ctx context.Context, original, replacement *domain.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Отвязываем прежних подчинённых
		if err := tx.Model(&domain.Employee{}).
			Where("manager_id = ?", original.EmployeeID).
			Update("manager_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Delete(&domain.Employee{}, "employee_id = ?", original.EmployeeID).Error; err != nil {
			return err
		}

		if replacement == nil {
			return nil
		}

		// Идентификатор замены всегда наследуется от исходной записи
		replacement.EmployeeID = original.EmployeeID

		if err := tx.Omit("DirectReports").Create(replacement).Error; err != nil {
			return err
		}
		return linkDirectReports(tx, replacement)
	})
}

// linkDirectReports проставляет manager_id сотрудникам, перечисленным
// в DirectReports. Ссылки на несуществующие идентификаторы игнорируются.
func linkDirectReports(tx *gorm.DB, emp *domain.Employee) error {
	if len(emp.DirectReports) == 0 {
		return nil
	}

	ids := make([]string, 0, len(emp.DirectReports))
	for _, report := range emp.DirectReports {
		ids = append(ids, report.EmployeeID)
	}

	return tx.Model(&domain.Employee{}).
		Where("employee_id IN ?", ids).
		Update("manager_id", emp.EmployeeID).Error
}
