// config/config.go
package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Conf holds our configuration taken from the environment.
type Conf struct {
	Port                        string `envconfig:"PORT" default:"8080"`
	MongoURI                    string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	DatabaseName                string `envconfig:"DB_NAME" default:"lamp"`
	ModelPath                   string `envconfig:"MODEL_PATH" default:"laptop_recommendation_model.json"`
	MaxCandidateRetries         int    `envconfig:"MAX_CANDIDATE_RETRIES" default:"3"`
	MaintenanceThresholdDays    int    `envconfig:"MAINTENANCE_THRESHOLD_DAYS" default:"180"`
	SingleAssignmentPerEmployee bool   `envconfig:"SINGLE_ASSIGNMENT_PER_EMPLOYEE" default:"false"`
}

func Load() (*Conf, error) {
	var c Conf
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}
	return &c, nil
}
