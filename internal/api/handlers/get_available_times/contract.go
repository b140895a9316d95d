package get_available_times

import (
	"context"

	"github.com/devsign-cl/appointment-service/internal/domain"
	getAvailableTimes "github.com/devsign-cl/appointment-service/internal/usecase/get_available_times"
)

type GetAvailableTimesUseCase interface {
	Execute(ctx context.Context, req *getAvailableTimes.Request) (*getAvailableTimes.Response, error)
}

// BusinessRepository resolves the business from its slug
type BusinessRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
