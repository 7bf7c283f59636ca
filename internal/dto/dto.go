package dto

import (
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest - запрос на создание сотрудника.
// Идентификатор можно передать явно, иначе его назначит хранилище.
type CreateEmployeeRequest struct {
	EmployeeID    string   `json:"employeeId" validate:"omitempty,max=64"`
	FirstName     string   `json:"firstName" validate:"required,min=1,max=200"`
	LastName      string   `json:"lastName" validate:"required,min=1,max=200"`
	Position      string   `json:"position" validate:"max=200"`
	Department    string   `json:"department" validate:"max=200"`
	DirectReports []string `json:"directReports" validate:"omitempty,dive,required,max=64"`
}

// ReplaceEmployeeRequest - запрос на полную замену сотрудника.
// Переданный в теле employeeId игнорируется: замена всегда сохраняет
// идентификатор из пути запроса.
type ReplaceEmployeeRequest struct {
	EmployeeID    string   `json:"employeeId" validate:"omitempty,max=64"`
	FirstName     string   `json:"firstName" validate:"required,min=1,max=200"`
	LastName      string   `json:"lastName" validate:"required,min=1,max=200"`
	Position      string   `json:"position" validate:"max=200"`
	Department    string   `json:"department" validate:"max=200"`
	DirectReports []string `json:"directReports" validate:"omitempty,dive,required,max=64"`
}

// CreateCompensationRequest - запрос на создание вознаграждения
type CreateCompensationRequest struct {
	EmployeeID    string          `json:"employeeId" validate:"required,max=64"`
	Salary        decimal.Decimal `json:"salary"`
	EffectiveDate string          `json:"effectiveDate" validate:"required,datetime=2006-01-02"`
}

// EmployeeResponse - ответ с данными сотрудника.
// Прямые подчинённые сведены к списку идентификаторов.
type EmployeeResponse struct {
	EmployeeID    string   `json:"employeeId"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Position      string   `json:"position,omitempty"`
	Department    string   `json:"department,omitempty"`
	DirectReports []string `json:"directReports"`
}

// ReportingStructureResponse - сотрудник и общее число его подчинённых
type ReportingStructureResponse struct {
	Employee        EmployeeResponse `json:"employee"`
	NumberOfReports int              `json:"numberOfReports"`
}

// CompensationResponse - ответ с данными вознаграждения
type CompensationResponse struct {
	EmployeeID    string          `json:"employeeId"`
	Salary        decimal.Decimal `json:"salary"`
	EffectiveDate string          `json:"effectiveDate"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
