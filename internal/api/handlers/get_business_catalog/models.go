package get_business_catalog

import "github.com/lerthy/Appointlify-Amazon-sub002/internal/domain"

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Description     *string `json:"description,omitempty"`
}

// ServiceListResponse HTTP response model для списка услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// EmployeeResponse HTTP response model
type EmployeeResponse struct {
	ID         int64   `json:"id"`
	BusinessID int64   `json:"businessId"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

// EmployeeListResponse HTTP response model для списка сотрудников
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// FromDomainServices конвертирует domain модели в DTO
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              svc.ID,
			BusinessID:      svc.BusinessID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Description:     svc.Description,
		})
	}
	return resp
}

// FromDomainEmployees конвертирует domain модели в DTO
func FromDomainEmployees(employees []*domain.Employee) *EmployeeListResponse {
	resp := &EmployeeListResponse{
		Employees: make([]EmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, EmployeeResponse{
			ID:         emp.ID,
			BusinessID: emp.BusinessID,
			Name:       emp.Name,
			Role:       emp.Role,
			Email:      emp.Email,
			Phone:      emp.Phone,
		})
	}
	return resp
}
