// Package model evaluates the trained attrition classifier.
package model

import "fmt"

// Classifier is a fitted binary or multi-class classifier over a single feature row.
type Classifier interface {
	// PredictProba returns one probability per class, aligned with Classes().
	PredictProba(x []float64) ([]float64, error)
	// Predict returns the class label with the highest probability.
	Predict(x []float64) (int, error)
	// NumFeatures is the row width the classifier was fitted on.
	NumFeatures() int
	// Classes returns the class labels in probability order.
	Classes() []int
}

// FeatureCountError indicates a row whose width does not match the fitted model.
type FeatureCountError struct {
	Got  int
	Want int
}

func (e *FeatureCountError) Error() string {
	return fmt.Sprintf("model expects %d features, got %d", e.Want, e.Got)
}
