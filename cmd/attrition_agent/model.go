package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alfandoo/Attrition-Predict/internal/model"
	"github.com/alfandoo/Attrition-Predict/internal/prediction"
)

// loadService loads the configured model and wraps it in a prediction service.
func (a *app) loadService() (*prediction.Service, *model.Forest, error) {
	forest, err := model.LoadForest(a.cfg.ModelPath)
	if err != nil {
		return nil, nil, err
	}
	svc, err := prediction.NewService(forest,
		prediction.WithWorkers(a.cfg.BatchWorkers),
		prediction.WithMaxRows(a.cfg.MaxRows),
		prediction.WithLogger(a.logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("model %s is not compatible: %w", a.cfg.ModelPath, err)
	}
	a.logger.Debug("model loaded",
		zap.String("path", a.cfg.ModelPath),
		zap.Int("trees", forest.Trees()),
		zap.Int("nodes", forest.Nodes()),
	)
	return svc, forest, nil
}
