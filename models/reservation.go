// models/reservation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReservationReserved  = "Reserved"
	ReservationActive    = "Active"
	ReservationCancelled = "Cancelled"
)

// Reservation is a hold on a laptop that precedes assignment. At most one
// reservation with status Reserved references a laptop at a time; the laptop
// status transition enforces this.
type Reservation struct {
	ID           string             `bson:"_id" json:"id"`
	EmployeeID   primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	LaptopID     primitive.ObjectID `bson:"laptopId" json:"laptopId"`
	ReservedDate time.Time          `bson:"reservedDate" json:"reservedDate"`
	Status       string             `bson:"status" json:"status"` // Reserved, Active, Cancelled
}
