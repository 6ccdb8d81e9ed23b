package forecast

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/models"
	"github.com/Deeksha-0406/LAMP/store"
)

// MaintenanceReport flags a laptop whose service interval has lapsed.
type MaintenanceReport struct {
	LaptopID         string `json:"laptopId"`
	SerialNumber     string `json:"serialNumber"`
	Model            string `json:"model"`
	DaysSinceService int    `json:"daysSinceService"`
}

// MaintenanceChecker lists laptops due for service based on how long they
// have gone since their last recorded service date.
type MaintenanceChecker struct {
	laptops       store.Collection
	thresholdDays int
	logger        *zap.Logger
}

func NewMaintenanceChecker(laptops store.Collection, thresholdDays int, logger *zap.Logger) *MaintenanceChecker {
	return &MaintenanceChecker{laptops: laptops, thresholdDays: thresholdDays, logger: logger}
}

// Due returns every laptop serviced more than the threshold ago. Laptops
// with no recorded service date are a data-quality event, logged and
// skipped rather than guessed at.
func (m *MaintenanceChecker) Due(ctx context.Context, now time.Time) ([]MaintenanceReport, error) {
	var laptops []models.Laptop
	if err := m.laptops.Find(ctx, bson.M{}, &laptops); err != nil {
		return nil, err
	}

	reports := []MaintenanceReport{}
	for _, laptop := range laptops {
		if laptop.LastServiced.IsZero() {
			m.logger.Warn("data quality: laptop has no service date",
				zap.String("laptopId", laptop.ID.Hex()),
				zap.String("serialNumber", laptop.SerialNumber))
			continue
		}
		days := int(now.Sub(laptop.LastServiced).Hours() / 24)
		if days > m.thresholdDays {
			reports = append(reports, MaintenanceReport{
				LaptopID:         laptop.ID.Hex(),
				SerialNumber:     laptop.SerialNumber,
				Model:            laptop.Model,
				DaysSinceService: days,
			})
		}
	}
	return reports, nil
}
