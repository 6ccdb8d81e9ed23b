package websocket

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// AllocationUpdate represents a real-time allocation event
type AllocationUpdate struct {
	Type       string    `json:"type"` // ASSET_ASSIGNED, ASSET_RESERVED, ASSET_RETURNED
	AssetID    string    `json:"assetId"`
	EmployeeID string    `json:"employeeId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// BroadcastAllocationUpdate sends an update to all connected clients
func (h *Hub) BroadcastAllocationUpdate(update AllocationUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		h.logger.Error("failed to marshal allocation update", zap.Error(err))
		return
	}
	h.broadcast(data)
}

// AssetAssigned broadcasts a laptop handed out
func (h *Hub) AssetAssigned(assetID, employeeID string) {
	h.BroadcastAllocationUpdate(AllocationUpdate{
		Type:       "ASSET_ASSIGNED",
		AssetID:    assetID,
		EmployeeID: employeeID,
		Timestamp:  time.Now(),
	})
}

// AssetReserved broadcasts a new hold on a laptop
func (h *Hub) AssetReserved(assetID, employeeID string) {
	h.BroadcastAllocationUpdate(AllocationUpdate{
		Type:       "ASSET_RESERVED",
		AssetID:    assetID,
		EmployeeID: employeeID,
		Timestamp:  time.Now(),
	})
}

// AssetReturned broadcasts a laptop going back to the pool
func (h *Hub) AssetReturned(assetID, employeeID string) {
	h.BroadcastAllocationUpdate(AllocationUpdate{
		Type:       "ASSET_RETURNED",
		AssetID:    assetID,
		EmployeeID: employeeID,
		Timestamp:  time.Now(),
	})
}
