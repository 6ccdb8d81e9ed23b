package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		Vocabularies: map[string]Vocabulary{
			"role":            {"Engineer": 0, "Designer": 1, "Manager": 2},
			"experienceLevel": {"Junior": 0, "Mid": 1, "Senior": 2},
			"cpu":             {"i5": 0, "i7": 1, "M3": 2},
			"graphics":        {"Integrated": 0, "RTX 4060": 1},
		},
		Classes: []string{"65f0a1b2c3d4e5f6a7b8c9d0", "65f0a1b2c3d4e5f6a7b8c9d1"},
	}
}

func TestEncodeFieldOrder(t *testing.T) {
	codec := NewCodec(testConfig(), zap.NewNop())

	vector := codec.Encode(Attributes{
		Role:            "Designer",
		ExperienceLevel: "Senior",
		Age:             "31",
		CPU:             "i7",
		RAM:             "16",
		Storage:         "512",
		Graphics:        "RTX 4060",
	})

	require.Len(t, vector, VectorLen)
	assert.Equal(t, []float64{1, 2, 31, 1, 16, 512, 1}, vector)
}

func TestEncodeUnseenCategoryUsesSentinel(t *testing.T) {
	codec := NewCodec(testConfig(), zap.NewNop())

	vector := codec.Encode(Attributes{
		Role:            "Chef", // never seen at training time
		ExperienceLevel: "Mid",
		Age:             "40",
		CPU:             "i5",
		RAM:             "8",
		Storage:         "256",
		Graphics:        "Integrated",
	})

	assert.Equal(t, float64(UnknownCategory), vector[0])
	// The rest of the vector is unaffected.
	assert.Equal(t, float64(1), vector[1])
}

func TestEncodeCoercesBadNumerics(t *testing.T) {
	codec := NewCodec(testConfig(), zap.NewNop())

	tests := []struct {
		name string
		age  string
		ram  string
	}{
		{"empty", "", ""},
		{"non numeric", "unknown", "sixteen"},
		{"garbage", "??", "16GB-ish"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vector := codec.Encode(Attributes{
				Role:            "Engineer",
				ExperienceLevel: "Junior",
				Age:             tc.age,
				CPU:             "i5",
				RAM:             tc.ram,
				Storage:         "512",
				Graphics:        "Integrated",
			})
			assert.Zero(t, vector[2], "age defaults to zero")
			assert.Zero(t, vector[4], "ram defaults to zero")
		})
	}
}

func TestDecode(t *testing.T) {
	codec := NewCodec(testConfig(), zap.NewNop())

	id, err := codec.Decode(1)
	require.NoError(t, err)
	assert.Equal(t, "65f0a1b2c3d4e5f6a7b8c9d1", id)

	_, err = codec.Decode(7)
	assert.ErrorIs(t, err, ErrUnknownPrediction)
	_, err = codec.Decode(-1)
	assert.ErrorIs(t, err, ErrUnknownPrediction)
}
