package public_business_info

import (
	"context"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// BusinessRepository resolves the business from its slug
type BusinessRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
}

// ServiceRepository lists the bookable services
type ServiceRepository interface {
	ListActiveByBusiness(ctx context.Context, businessID int64) ([]*domain.Service, error)
}

// EmployeeRepository lists the bookable employees
type EmployeeRepository interface {
	ListByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Employee, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
