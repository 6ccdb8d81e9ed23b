// models/laptop.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Specifications is the hardware profile of a laptop. The same fields appear
// in requirement profiles submitted by the request layer.
type Specifications struct {
	CPU      string `bson:"cpu" json:"cpu"`
	RAM      string `bson:"ram" json:"ram"`
	Storage  string `bson:"storage" json:"storage"`
	Graphics string `bson:"graphics" json:"graphics"`
}

type Laptop struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SerialNumber   string             `bson:"serialNumber" json:"serialNumber"`
	Model          string             `bson:"model" json:"model"`
	Brand          string             `bson:"brand" json:"brand"`
	Specifications Specifications     `bson:"specifications" json:"specifications"`
	Status         string             `bson:"status" json:"status"` // Available, Reserved, Assigned
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	LastServiced   time.Time          `bson:"lastServiced,omitempty" json:"lastServiced,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
