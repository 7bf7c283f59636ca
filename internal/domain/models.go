package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee представляет сотрудника организации
type Employee struct {
	EmployeeID string    `json:"employee_id" gorm:"primaryKey;type:varchar(64)"`
	FirstName  string    `json:"first_name" gorm:"type:varchar(200);not null"`
	LastName   string    `json:"last_name" gorm:"type:varchar(200);not null"`
	Position   string    `json:"position" gorm:"type:varchar(200)"`
	Department string    `json:"department" gorm:"type:varchar(200)"`
	ManagerID  *string   `json:"manager_id" gorm:"type:varchar(64);index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Обратная связь: сотрудники, у которых manager_id указывает на данного сотрудника
	DirectReports []Employee `json:"direct_reports,omitempty" gorm:"foreignKey:ManagerID;references:EmployeeID"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Compensation представляет запись о вознаграждении сотрудника.
// Первичный ключ совпадает с идентификатором сотрудника: связь один-к-одному
// обеспечивается структурой ключей, а не только проверкой в приложении.
type Compensation struct {
	EmployeeID    string          `json:"employee_id" gorm:"primaryKey;type:varchar(64)"`
	Salary        decimal.Decimal `json:"salary" gorm:"type:numeric(14,2)"`
	EffectiveDate time.Time       `json:"effective_date" gorm:"type:date"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Compensation) TableName() string {
	return "compensations"
}

// ReportingStructure - производная структура подчинённости: сотрудник и общее
// число его подчинённых по всем уровням. Вычисляется по запросу, не хранится.
type ReportingStructure struct {
	Employee        *Employee
	NumberOfReports int
}
