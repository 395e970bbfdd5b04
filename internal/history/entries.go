package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/alfandoo/Attrition-Predict/internal/types"
)

// FromPrediction builds the history entry for a single-record prediction.
func FromPrediction(resp *types.PredictResponse, now time.Time) types.HistoryEntry {
	id := uuid.New()
	return types.HistoryEntry{
		ID:             id,
		BatchID:        id,
		Source:         types.SourceAPI,
		EmployeeName:   resp.EmployeeName,
		PredictedClass: resp.PredictedClass,
		Bertahan:       resp.Probability.Bertahan,
		Resign:         resp.Probability.Resign,
		CreatedAt:      now,
	}
}

// FromBatch builds entries for the successfully scored rows of a CSV batch. Failed rows
// are not recorded.
func FromBatch(resp *types.BatchResponse, now time.Time) []types.HistoryEntry {
	batchID := uuid.New()
	entries := make([]types.HistoryEntry, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Failed() {
			continue
		}
		entries = append(entries, types.HistoryEntry{
			ID:             uuid.New(),
			BatchID:        batchID,
			Source:         types.SourceCSV,
			RowIndex:       r.Index,
			EmployeeName:   r.EmployeeName,
			PredictedClass: r.PredictedClass,
			Bertahan:       r.Probability.Bertahan,
			Resign:         r.Probability.Resign,
			CreatedAt:      now,
		})
	}
	return entries
}
