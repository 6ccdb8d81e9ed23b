package predictor

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/Deeksha-0406/LAMP/feature"
)

// Artifact is the trained-model file written by the offline training job.
// It bundles the classifier with the encoder vocabularies fitted on the
// same corpus, so encoding stays stable between training and inference.
type Artifact struct {
	Vocabularies map[string]feature.Vocabulary `json:"vocabularies"`
	Classes      []string                      `json:"classes"`
	Centroids    [][]float64                   `json:"centroids"`
}

// LoadArtifact reads and validates a model artifact. Any failure here is a
// startup failure.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrModelUnavailable, "failed to read model artifact %s: %v", path, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, errors.Wrapf(ErrModelUnavailable, "failed to parse model artifact: %v", err)
	}

	if len(artifact.Centroids) == 0 || len(artifact.Classes) == 0 {
		return nil, errors.Wrap(ErrModelUnavailable, "artifact carries no trained classes")
	}
	if len(artifact.Centroids) != len(artifact.Classes) {
		return nil, errors.Wrapf(ErrModelUnavailable,
			"artifact has %d centroids for %d classes", len(artifact.Centroids), len(artifact.Classes))
	}
	return &artifact, nil
}

// CentroidModel classifies a feature vector to the class whose trained
// centroid is nearest by squared euclidean distance.
type CentroidModel struct {
	centroids [][]float64
}

func NewCentroidModel(centroids [][]float64) (*CentroidModel, error) {
	if len(centroids) == 0 {
		return nil, errors.Wrap(ErrModelUnavailable, "no centroids")
	}
	return &CentroidModel{centroids: centroids}, nil
}

func (m *CentroidModel) Predict(vector []float64) (int, error) {
	best := -1
	var bestDist float64

	for class, centroid := range m.centroids {
		if len(centroid) != len(vector) {
			continue
		}
		dist := 0.0
		for i := range vector {
			d := vector[i] - centroid[i]
			dist += d * d
		}
		if best == -1 || dist < bestDist {
			best = class
			bestDist = dist
		}
	}

	if best == -1 {
		return 0, ErrNoCandidate
	}
	return best, nil
}
