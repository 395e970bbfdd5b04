// Package schemas holds the JSON Schema documents shipped with the service.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	ForestModel     = "forest_model.schema.json"
	PredictResponse = "predict_response.schema.json"
	BatchResponse   = "batch_response.schema.json"
)
