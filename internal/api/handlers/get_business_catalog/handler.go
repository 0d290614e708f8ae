package get_business_catalog

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers"
)

const msgInvalidBusinessID = "некорректный ID бизнеса"

type Handler struct {
	catalog CatalogRepository
	logger  Logger
}

func NewHandler(catalog CatalogRepository, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleServices GET /api/v1/businesses/{businessId}/services
// Возвращает список услуг бизнеса для выбора при бронировании
func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	businessID, ok := h.parseBusinessID(w, r, "services")
	if !ok {
		return
	}

	services, err := h.catalog.ListServicesByBusiness(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/services - Failed to list services: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/services - Services retrieved successfully: business_id=%d, count=%d",
		businessID, len(services))
	handlers.RespondJSON(w, http.StatusOK, FromDomainServices(services))
}

// HandleEmployees GET /api/v1/businesses/{businessId}/employees
// Возвращает список сотрудников бизнеса для выбора при бронировании
func (h *Handler) HandleEmployees(w http.ResponseWriter, r *http.Request) {
	businessID, ok := h.parseBusinessID(w, r, "employees")
	if !ok {
		return
	}

	employees, err := h.catalog.ListEmployeesByBusiness(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/employees - Failed to list employees: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/employees - Employees retrieved successfully: business_id=%d, count=%d",
		businessID, len(employees))
	handlers.RespondJSON(w, http.StatusOK, FromDomainEmployees(employees))
}

func (h *Handler) parseBusinessID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	businessID, err := strconv.ParseInt(mux.Vars(r)["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/%s - Invalid business ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return 0, false
	}
	return businessID, true
}
