// models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email,omitempty" json:"email,omitempty"`
	Role            string             `bson:"role" json:"role"`
	ExperienceLevel string             `bson:"experienceLevel" json:"experienceLevel"`
	Age             int                `bson:"age,omitempty" json:"age,omitempty"`
	DateJoined      time.Time          `bson:"dateJoined" json:"dateJoined"`
}
