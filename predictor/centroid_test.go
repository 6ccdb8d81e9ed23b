package predictor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentroidModelPredict(t *testing.T) {
	model, err := NewCentroidModel([][]float64{
		{0, 0, 0},
		{10, 10, 10},
		{100, 0, 50},
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		vector []float64
		want   int
	}{
		{"near origin", []float64{1, 0, 1}, 0},
		{"near middle", []float64{9, 11, 10}, 1},
		{"near far", []float64{95, 2, 48}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			class, err := model.Predict(tc.vector)
			require.NoError(t, err)
			assert.Equal(t, tc.want, class)
		})
	}
}

func TestCentroidModelIsDeterministic(t *testing.T) {
	model, err := NewCentroidModel([][]float64{{0, 0}, {5, 5}})
	require.NoError(t, err)

	first, err := model.Predict([]float64{2, 2})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		class, err := model.Predict([]float64{2, 2})
		require.NoError(t, err)
		assert.Equal(t, first, class)
	}
}

func TestCentroidModelNoUsableClass(t *testing.T) {
	model, err := NewCentroidModel([][]float64{{0, 0}})
	require.NoError(t, err)

	// Dimension mismatch leaves no centroid to score against.
	_, err = model.Predict([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestNewCentroidModelEmpty(t *testing.T) {
	_, err := NewCentroidModel(nil)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestLoadArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"vocabularies": {"role": {"Engineer": 0}},
		"classes": ["65f0a1b2c3d4e5f6a7b8c9d0"],
		"centroids": [[0, 1, 2, 3, 4, 5, 6]]
	}`), 0o600))

	artifact, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Len(t, artifact.Classes, 1)
	assert.Len(t, artifact.Centroids, 1)
	assert.Equal(t, 0, artifact.Vocabularies["role"]["Engineer"])
}

func TestLoadArtifactFailures(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadArtifact(filepath.Join(dir, "absent.json"))
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))
		_, err := LoadArtifact(path)
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("no classes", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"classes": [], "centroids": []}`), 0o600))
		_, err := LoadArtifact(path)
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("class centroid mismatch", func(t *testing.T) {
		path := filepath.Join(dir, "mismatch.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"classes": ["a", "b"], "centroids": [[0]]}`), 0o600))
		_, err := LoadArtifact(path)
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})
}
