package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/models"
	"github.com/Deeksha-0406/LAMP/store"
)

func TestMaintenanceDue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	laptops := store.NewMemory()
	overdue := models.Laptop{
		ID:           primitive.NewObjectID(),
		SerialNumber: "SN-OLD",
		Model:        "Latitude 5420",
		Status:       "Available",
		LastServiced: now.AddDate(0, 0, -200),
	}
	fresh := models.Laptop{
		ID:           primitive.NewObjectID(),
		SerialNumber: "SN-NEW",
		Model:        "Latitude 5430",
		Status:       "Assigned",
		LastServiced: now.AddDate(0, 0, -30),
	}
	unserviced := models.Laptop{
		ID:           primitive.NewObjectID(),
		SerialNumber: "SN-NODATE",
		Model:        "Latitude 5440",
		Status:       "Available",
	}
	for _, laptop := range []models.Laptop{overdue, fresh, unserviced} {
		require.NoError(t, laptops.InsertOne(ctx, laptop))
	}

	checker := NewMaintenanceChecker(laptops, 180, zap.NewNop())
	reports, err := checker.Due(ctx, now)
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, overdue.ID.Hex(), reports[0].LaptopID)
	assert.Equal(t, 200, reports[0].DaysSinceService)
}

func TestMaintenanceDueEmptyPool(t *testing.T) {
	checker := NewMaintenanceChecker(store.NewMemory(), 180, zap.NewNop())
	reports, err := checker.Due(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, reports)
}
