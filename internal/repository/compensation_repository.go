package repository

import (
	"context"
	"errors"

	"github.com/employee-directory-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompensationRepository определяет интерфейс для работы с вознаграждениями
type CompensationRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Compensation, error)
	Create(ctx context.Context, comp *domain.Compensation) error
}

type compensationRepository struct {
	db *gorm.DB
}

// NewCompensationRepository создаёт новый экземпляр репозитория
func NewCompensationRepository(db *gorm.DB) CompensationRepository {
	return &compensationRepository{db: db}
}

func (r *compensationRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Compensation, error) {
	var comp domain.Compensation
	err := r.db.WithContext(ctx).First(&comp, "employee_id = ?", employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompensationNotFound
		}
		return nil, err
	}
	return &comp, nil
}

// Create выполняет условную вставку: при занятом ключе запись не перетирается,
// а вызывающему возвращается ErrCompensationExists. Инвариант "не более одного
// вознаграждения на сотрудника" держится на самом хранилище, а не только на
// предварительной проверке.
func (r *compensationRepository) Create(ctx context.Context, comp *domain.Compensation) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(comp)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCompensationExists
	}
	return nil
}
