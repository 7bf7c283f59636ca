package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/dto"
	"github.com/employee-directory-api/internal/service"
	"github.com/go-playground/validator/v10"
)

type EmployeeHandler struct {
	empService       service.EmployeeService
	reportingService service.ReportingService
	compService      service.CompensationService
	validator        *validator.Validate
	logger           *slog.Logger
}

func NewEmployeeHandler(
	empService service.EmployeeService,
	reportingService service.ReportingService,
	compService service.CompensationService,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		empService:       empService,
		reportingService: reportingService,
		compService:      compService,
		validator:        validator.New(),
		logger:           logger,
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/employee/"+emp.EmployeeID)
	h.respondJSON(w, http.StatusCreated, h.toEmployeeResponse(emp))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := h.extractID(r)

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id := h.extractID(r)

	var req dto.ReplaceEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	emp, err := h.empService.Replace(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toEmployeeResponse(emp))
}

func (h *EmployeeHandler) GetReportingStructure(w http.ResponseWriter, r *http.Request) {
	id := h.extractID(r)

	structure, err := h.reportingService.GetReportingStructure(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ReportingStructureResponse{
		Employee:        h.toEmployeeResponse(structure.Employee),
		NumberOfReports: structure.NumberOfReports,
	})
}

func (h *EmployeeHandler) GetCompensation(w http.ResponseWriter, r *http.Request) {
	employeeID := h.extractID(r)

	comp, err := h.compService.GetByEmployeeID(r.Context(), employeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toCompensationResponse(comp))
}

func (h *EmployeeHandler) CreateCompensation(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompensationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	comp, err := h.compService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/employee/"+comp.EmployeeID+"/compensation")
	h.respondJSON(w, http.StatusCreated, h.toCompensationResponse(comp))
}

func (h *EmployeeHandler) extractID(r *http.Request) string {
	path := strings.TrimPrefix(r.URL.Path, "/employee/")
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func (h *EmployeeHandler) toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	// Прямые подчинённые сводятся к списку идентификаторов
	reportIDs := make([]string, 0, len(emp.DirectReports))
	for _, report := range emp.DirectReports {
		reportIDs = append(reportIDs, report.EmployeeID)
	}

	return dto.EmployeeResponse{
		EmployeeID:    emp.EmployeeID,
		FirstName:     emp.FirstName,
		LastName:      emp.LastName,
		Position:      emp.Position,
		Department:    emp.Department,
		DirectReports: reportIDs,
	}
}

func (h *EmployeeHandler) toCompensationResponse(comp *domain.Compensation) dto.CompensationResponse {
	return dto.CompensationResponse{
		EmployeeID:    comp.EmployeeID,
		Salary:        comp.Salary,
		EffectiveDate: comp.EffectiveDate.Format("2006-01-02"),
	}
}

func (h *EmployeeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrCompensationNotFound):
		h.respondError(w, http.StatusNotFound, "compensation not found", "")
	case errors.Is(err, domain.ErrCompensationExists):
		h.respondError(w, http.StatusConflict, "employee already has compensation", "")
	case errors.Is(err, domain.ErrReportingCycle):
		h.respondError(w, http.StatusConflict, "reporting structure contains a cycle", "")
	case errors.Is(err, domain.ErrInvalidEmployee):
		h.respondError(w, http.StatusBadRequest, "employee is required", "")
	case errors.Is(err, domain.ErrInvalidEffectiveDate):
		h.respondError(w, http.StatusBadRequest, "effective date must be in YYYY-MM-DD format", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *EmployeeHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
