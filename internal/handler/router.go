package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/employee-directory-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	empHandler *EmployeeHandler
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:        http.NewServeMux(),
		logger:     logger,
		empHandler: empHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Регистрируем обработчики
	r.mux.HandleFunc("/employee", r.employeeRouter)
	r.mux.HandleFunc("/employee/", r.employeeRouter)
	r.mux.HandleFunc("/compensation", r.compensationRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// employeeRouter обрабатывает все запросы к /employee
func (r *Router) employeeRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/employee")
	path = strings.Trim(path, "/")

	// POST /employee - создание сотрудника
	if path == "" {
		if req.Method == http.MethodPost {
			r.empHandler.Create(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	// Разбираем путь: {id}, {id}/numberOfReports или {id}/compensation
	parts := strings.Split(path, "/")

	if len(parts) == 1 {
		// /employee/{id}
		switch req.Method {
		case http.MethodGet:
			r.empHandler.GetByID(w, req)
		case http.MethodPut:
			r.empHandler.Replace(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "numberOfReports" {
		// /employee/{id}/numberOfReports
		if req.Method == http.MethodGet {
			r.empHandler.GetReportingStructure(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	if len(parts) == 2 && parts[1] == "compensation" {
		// /employee/{employeeId}/compensation
		if req.Method == http.MethodGet {
			r.empHandler.GetCompensation(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// compensationRouter обрабатывает запросы к /compensation
func (r *Router) compensationRouter(w http.ResponseWriter, req *http.Request) {
	// POST /compensation - создание вознаграждения
	if req.Method == http.MethodPost {
		r.empHandler.CreateCompensation(w, req)
		return
	}
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}
