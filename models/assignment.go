// models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssignmentActive   = "Active"
	AssignmentReturned = "Returned"
)

// Assignment documents a laptop handed to an employee. EmployeeID is a
// pointer because a request need not originate from a known employee.
type Assignment struct {
	ID           string              `bson:"_id" json:"id"`
	EmployeeID   *primitive.ObjectID `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	LaptopID     primitive.ObjectID  `bson:"laptopId" json:"laptopId"`
	AssignedDate time.Time           `bson:"assignedDate" json:"assignedDate"`
	ReturnedDate *time.Time          `bson:"returnedDate,omitempty" json:"returnedDate,omitempty"`
	Status       string              `bson:"status" json:"status"` // Active, Returned
}
