package predictor

import (
	"sort"

	apperrors "greenverify/internal/common/errors"
	"greenverify/internal/common/logger"
	"greenverify/internal/model"
	"greenverify/internal/models"
)

// Pipeline encodes, scales and classifies normalized records against one
// loaded artifact bundle. Artifacts are immutable, so a Pipeline is safe for
// concurrent use.
type Pipeline struct {
	arts   *model.Artifacts
	logger logger.Logger
}

func NewPipeline(arts *model.Artifacts, log logger.Logger) *Pipeline {
	return &Pipeline{
		arts:   arts,
		logger: log.WithFields(map[string]interface{}{"component": "predictor"}),
	}
}

// Schema exposes the feature schema of the loaded bundle.
func (p *Pipeline) Schema() *model.Schema {
	return p.arts.Schema
}

// CategoricalOptions returns the known labels per categorical field, used to
// populate form dropdowns.
func (p *Pipeline) CategoricalOptions() map[string][]string {
	out := make(map[string][]string, len(p.arts.LabelEncoders))
	for name, enc := range p.arts.LabelEncoders {
		out[name] = enc.Classes
	}
	return out
}

// Predict encodes the record into a feature vector and returns the star
// rating, its confidence and the full per-class probability list ordered by
// class index.
func (p *Pipeline) Predict(rec *Record) (*models.Prediction, error) {
	vector, err := p.encode(rec)
	if err != nil {
		return nil, apperrors.NewPredictionError(err)
	}

	probs, err := p.arts.Booster.PredictProba(vector)
	if err != nil {
		return nil, apperrors.NewPredictionError(err)
	}
	predictedIdx := model.Argmax(probs)

	rating := p.arts.ReverseMapping[predictedIdx]

	probabilities := make([]models.ProbabilityEntry, 0, len(probs))
	for idx, prob := range probs {
		probabilities = append(probabilities, models.ProbabilityEntry{
			Label:       p.arts.ReverseMapping[idx],
			Probability: prob,
		})
	}
	sort.SliceStable(probabilities, func(i, j int) bool {
		return probabilities[i].Label < probabilities[j].Label
	})

	p.logger.Debug("prediction computed", map[string]interface{}{
		"rating":     rating,
		"confidence": probs[predictedIdx],
	})

	return &models.Prediction{
		Rating:        rating,
		Confidence:    probs[predictedIdx],
		Probabilities: probabilities,
	}, nil
}

// encode applies label encoders to categorical fields and the fitted scaler
// to the numeric subset, producing the classifier input vector in schema
// order. Unseen categories encode to the fallback code 0.
func (p *Pipeline) encode(rec *Record) ([]float64, error) {
	vector := make([]float64, len(rec.Fields))

	numeric := make([]float64, 0, len(rec.Fields))
	numericIdx := make([]int, 0, len(rec.Fields))

	for i, f := range rec.Fields {
		if f.Categorical {
			vector[i] = p.arts.LabelEncoders[f.Name].Transform(f.Text)
			continue
		}
		numeric = append(numeric, f.Number)
		numericIdx = append(numericIdx, i)
	}

	scaled, err := p.arts.Scaler.Transform(numeric)
	if err != nil {
		return nil, err
	}
	for j, i := range numericIdx {
		vector[i] = scaled[j]
	}

	return vector, nil
}
