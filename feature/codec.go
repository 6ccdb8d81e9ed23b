// Package feature converts raw requirement attributes into the fixed
// numeric vector the predictor was trained on, and maps prediction classes
// back to laptop identifiers. Vocabularies are fitted at training time and
// injected as immutable configuration, so encoding is deterministic.
package feature

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UnknownCategory is the sentinel for a categorical value the training
// corpus never saw. Online traffic will contain such values; they encode
// softly instead of failing the request.
const UnknownCategory = -1

// ErrUnknownPrediction means the predictor produced a class that was never
// registered in the class mapping.
var ErrUnknownPrediction = errors.New("unknown prediction class")

// Vocabulary maps a categorical value to the small integer it was encoded
// as during training.
type Vocabulary map[string]int

// Config carries everything fitted at training time: one vocabulary per
// categorical field and the ordered class list mapping prediction output
// back to laptop identifiers.
type Config struct {
	Vocabularies map[string]Vocabulary
	Classes      []string
}

// Attributes are the raw requirement fields as they arrive from the request
// layer. Numeric fields stay strings here; coercion happens in Encode with
// an explicit could-not-parse branch.
type Attributes struct {
	Role            string `json:"role"`
	ExperienceLevel string `json:"experienceLevel"`
	Age             string `json:"age"`
	CPU             string `json:"cpu"`
	RAM             string `json:"ram"`
	Storage         string `json:"storage"`
	Graphics        string `json:"graphics"`
}

type Codec struct {
	cfg    Config
	logger *zap.Logger
}

func NewCodec(cfg Config, logger *zap.Logger) *Codec {
	return &Codec{cfg: cfg, logger: logger}
}

// VectorLen is the fixed width of encoded vectors.
const VectorLen = 7

// Encode produces the feature vector in training field order: role,
// experienceLevel, age, cpu, ram, storage, graphics. Unseen categories and
// unparsable numerics degrade to defined defaults and are logged as
// data-quality events; Encode never fails.
func (c *Codec) Encode(attrs Attributes) []float64 {
	return []float64{
		c.encodeCategory("role", attrs.Role),
		c.encodeCategory("experienceLevel", attrs.ExperienceLevel),
		c.encodeNumeric("age", attrs.Age),
		c.encodeCategory("cpu", attrs.CPU),
		c.encodeNumeric("ram", attrs.RAM),
		c.encodeNumeric("storage", attrs.Storage),
		c.encodeCategory("graphics", attrs.Graphics),
	}
}

// Decode maps a prediction class back to the laptop identifier registered
// for it at training time.
func (c *Codec) Decode(class int) (string, error) {
	if class < 0 || class >= len(c.cfg.Classes) {
		return "", ErrUnknownPrediction
	}
	return c.cfg.Classes[class], nil
}

func (c *Codec) encodeCategory(field, value string) float64 {
	vocab, ok := c.cfg.Vocabularies[field]
	if !ok {
		c.logger.Warn("data quality: no vocabulary for field",
			zap.String("field", field))
		return UnknownCategory
	}
	code, ok := vocab[value]
	if !ok {
		c.logger.Warn("data quality: unseen category",
			zap.String("field", field),
			zap.String("value", value))
		return UnknownCategory
	}
	return float64(code)
}

func (c *Codec) encodeNumeric(field, value string) float64 {
	if value == "" {
		c.logger.Warn("data quality: missing numeric value",
			zap.String("field", field))
		return 0
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		c.logger.Warn("data quality: could not parse numeric value",
			zap.String("field", field),
			zap.String("value", value))
		return 0
	}
	return n
}
