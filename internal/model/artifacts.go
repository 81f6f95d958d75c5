package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	apperrors "greenverify/internal/common/errors"
)

// Artifact file names inside the bundle directory. The five files are
// co-versioned: a bundle is only usable when all of them load and agree.
const (
	BoosterFile        = "gbt_model.json"
	LabelEncodersFile  = "label_encoders.json"
	FeatureNamesFile   = "feature_names.json"
	ScalerFile         = "scaler.json"
	ReverseMappingFile = "reverse_mapping.json"
)

// Artifacts is the fully loaded, immutable model bundle.
type Artifacts struct {
	Booster        *Booster
	Schema         *Schema
	LabelEncoders  map[string]*LabelEncoder
	Scaler         *Scaler
	ReverseMapping map[int]int
}

// Load reads the five artifacts from dir. It checks for every file first so a
// partially deployed bundle reports the missing piece, then parses and
// cross-checks consistency. Any failure returns a descriptive error; callers
// degrade to a model-unavailable state instead of crashing.
func Load(dir string) (*Artifacts, error) {
	required := []string{
		BoosterFile,
		LabelEncodersFile,
		FeatureNamesFile,
		ScalerFile,
		ReverseMappingFile,
	}
	for _, name := range required {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, apperrors.NewArtifactLoadError(path, fmt.Errorf("required file missing"))
		}
	}

	var booster Booster
	if err := readJSON(filepath.Join(dir, BoosterFile), &booster); err != nil {
		return nil, err
	}

	encoders := make(map[string]*LabelEncoder)
	if err := readJSON(filepath.Join(dir, LabelEncodersFile), &encoders); err != nil {
		return nil, err
	}

	var featureNames []string
	if err := readJSON(filepath.Join(dir, FeatureNamesFile), &featureNames); err != nil {
		return nil, err
	}

	var scaler Scaler
	if err := readJSON(filepath.Join(dir, ScalerFile), &scaler); err != nil {
		return nil, err
	}

	rawMapping := make(map[string]int)
	if err := readJSON(filepath.Join(dir, ReverseMappingFile), &rawMapping); err != nil {
		return nil, err
	}
	reverseMapping := make(map[int]int, len(rawMapping))
	for k, v := range rawMapping {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, apperrors.NewArtifactInconsistentError(
				fmt.Sprintf("reverse mapping key %q is not an integer", k))
		}
		reverseMapping[idx] = v
	}

	categoricalFields := make([]string, 0, len(encoders))
	for field := range encoders {
		categoricalFields = append(categoricalFields, field)
	}
	sort.Strings(categoricalFields)
	schema := NewSchema(featureNames, categoricalFields)

	arts := &Artifacts{
		Booster:        &booster,
		Schema:         schema,
		LabelEncoders:  encoders,
		Scaler:         &scaler,
		ReverseMapping: reverseMapping,
	}
	if err := arts.checkConsistency(); err != nil {
		return nil, err
	}
	return arts, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewArtifactLoadError(path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.NewArtifactLoadError(path, err)
	}
	return nil
}

func (a *Artifacts) checkConsistency() error {
	features := a.Schema.Features
	if len(features) == 0 {
		return apperrors.NewArtifactInconsistentError("feature name list is empty")
	}

	known := make(map[string]bool, len(features))
	for _, f := range features {
		known[f] = true
	}
	for field := range a.LabelEncoders {
		if !known[field] {
			return apperrors.NewArtifactInconsistentError(
				fmt.Sprintf("encoder field %q is not in the feature list", field))
		}
	}

	numericCount := len(a.Schema.NumericFeatures())
	if len(a.Scaler.Mean) != numericCount || len(a.Scaler.Scale) != numericCount {
		return apperrors.NewArtifactInconsistentError(
			fmt.Sprintf("scaler fitted for %d features, schema has %d numeric", len(a.Scaler.Mean), numericCount))
	}

	if err := a.Booster.Validate(len(features)); err != nil {
		return apperrors.NewArtifactInconsistentError(err.Error())
	}

	// Every class index the booster can emit must map to a rating.
	for idx := 0; idx < a.Booster.NumClasses; idx++ {
		if _, ok := a.ReverseMapping[idx]; !ok {
			return apperrors.NewArtifactInconsistentError(
				fmt.Sprintf("reverse mapping has no entry for class index %d", idx))
		}
	}

	return nil
}
