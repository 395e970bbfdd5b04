// Package prediction scores employee records with the attrition model, one at a time or
// as a CSV batch.
package prediction

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"

	"go.uber.org/zap"

	"github.com/alfandoo/Attrition-Predict/internal/features"
	"github.com/alfandoo/Attrition-Predict/internal/model"
	"github.com/alfandoo/Attrition-Predict/internal/types"
)

// Class labels the model was trained with.
const (
	ClassStay   = 0
	ClassResign = 1
)

// Service is the read-only prediction context shared by all requests.
type Service struct {
	clf     model.Classifier
	workers int
	maxRows int
	logger  *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithWorkers bounds how many CSV rows are scored concurrently.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMaxRows rejects CSV files with more than n data rows. Zero means unlimited.
func WithMaxRows(n int) Option {
	return func(s *Service) { s.maxRows = n }
}

// WithLogger sets the logger used for per-row diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService checks that clf matches the feature schema and returns the service.
func NewService(clf model.Classifier, opts ...Option) (*Service, error) {
	if clf == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if got, want := clf.NumFeatures(), features.Width(); got != want {
		return nil, fmt.Errorf("model was fitted on %d features, schema has %d", got, want)
	}
	if classes := clf.Classes(); !slices.Equal(classes, []int{ClassStay, ClassResign}) {
		return nil, fmt.Errorf("model classes must be [0 1], got %v", classes)
	}
	if named, ok := clf.(interface{ FeatureNames() []string }); ok {
		if names := named.FeatureNames(); len(names) > 0 && !slices.Equal(names, features.ColumnNames()) {
			return nil, fmt.Errorf("model feature order %v does not match schema %v", names, features.ColumnNames())
		}
	}

	s := &Service{
		clf:     clf,
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// score runs the classifier on an encoded vector.
func (s *Service) score(vec features.Vector) (int, types.Probability, error) {
	x := vec.Float64()
	proba, err := s.clf.PredictProba(x)
	if err != nil {
		return 0, types.Probability{}, &ModelError{Cause: err}
	}
	class, err := s.clf.Predict(x)
	if err != nil {
		return 0, types.Probability{}, &ModelError{Cause: err}
	}
	return class, types.Probability{
		Bertahan: percent(proba[ClassStay]),
		Resign:   percent(proba[ClassResign]),
	}, nil
}

// PredictRecord encodes and scores a single record. Encoding failures are returned as
// *features.EncodeError so callers can report the offending column.
func (s *Service) PredictRecord(ctx context.Context, rec features.Record) (*types.PredictResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec, err := features.Encode(rec)
	if err != nil {
		return nil, err
	}
	class, prob, err := s.score(vec)
	if err != nil {
		return nil, err
	}

	verdict := types.VerdictStay
	if class == ClassResign {
		verdict = types.VerdictResign
	}
	return &types.PredictResponse{
		Success:        true,
		EmployeeName:   features.NameFromPayload(rec),
		Prediction:     verdict,
		PredictedClass: class,
		Probability:    prob,
		Confidence:     types.FormatPercent(confidence(prob)),
	}, nil
}

// percent converts a probability to a percentage rounded to two decimals.
func percent(p float64) float64 {
	return math.Round(p*100*100) / 100
}

func confidence(p types.Probability) float64 {
	return math.Max(p.Bertahan, p.Resign)
}
