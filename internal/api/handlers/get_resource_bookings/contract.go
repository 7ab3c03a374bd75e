package get_resource_bookings

import (
	"context"

	"github.com/mosparks/PKS-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetResourceBookings(ctx context.Context, req *models.GetResourceBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
