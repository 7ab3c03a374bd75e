package get_availability

import (
	"context"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/infra/storage/ledger"
	"github.com/mosparks/PKS-BookingService/internal/integrations/catalog"
)

// LedgerRepository интерфейс реестра занятости слотов
type LedgerRepository interface {
	GetForDate(ctx context.Context, resourceID int64, date time.Time) ([]ledger.Entry, error)
}

// CatalogClient интерфейс клиента каталога ресурсов
type CatalogClient interface {
	GetResource(ctx context.Context, resourceID int64) (*catalog.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
