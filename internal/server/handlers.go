package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alfandoo/Attrition-Predict/internal/features"
	"github.com/alfandoo/Attrition-Predict/internal/history"
	"github.com/alfandoo/Attrition-Predict/internal/prediction"
	"github.com/alfandoo/Attrition-Predict/internal/server/middleware"
	"github.com/alfandoo/Attrition-Predict/internal/types"
)

// csvField is the multipart field carrying the uploaded CSV file.
const csvField = "csvFile"

//go:embed static/index.html
var indexHTML []byte

// handleIndex serves the landing page.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"history": s.history != nil,
		"auth":    s.jwtService != nil,
	})
}

// handlePredictAPI scores a single JSON record.
func (s *Server) handlePredictAPI(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	rec, err := decodeRecord(r.Body)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	resp, err := s.service.PredictRecord(r.Context(), rec)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.recordHistory(r, []types.HistoryEntry{history.FromPrediction(resp, s.now())})
	s.jsonResponse(w, http.StatusOK, resp)
}

// decodeRecord reads exactly one JSON object from body.
func decodeRecord(body io.Reader) (features.Record, error) {
	dec := json.NewDecoder(body)
	var rec features.Record
	err := dec.Decode(&rec)
	if err == nil {
		if extra := dec.Decode(&json.RawMessage{}); !errors.Is(extra, io.EOF) {
			err = errors.New("unexpected data after JSON object")
			if extra != nil {
				err = fmt.Errorf("%w: %w", err, extra)
			}
		}
	}
	if err == nil {
		return rec, nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return nil, &ErrBodyTooLarge{Limit: maxErr.Limit}
	}
	return nil, &ErrInvalidBody{Cause: err}
}

// handlePredictCSV scores every row of an uploaded CSV file.
func (s *Server) handlePredictCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile(csvField)
	if err != nil {
		s.errorResponse(w, s.uploadError(r, err))
		return
	}
	defer file.Close()

	if strings.TrimSpace(header.Filename) == "" {
		s.errorResponse(w, &prediction.EmptyFilenameError{})
		return
	}

	resp, err := s.service.PredictCSV(r.Context(), file)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.logger.Info("csv batch scored",
		zap.String("file", header.Filename),
		zap.Int("rows", len(resp.Results)),
	)
	s.recordHistory(r, history.FromBatch(resp, s.now()))
	s.jsonResponse(w, http.StatusOK, resp)
}

// uploadError classifies a FormFile failure. A file part sent without a filename is
// parsed as a plain form value, which is how browsers submit an empty file input.
func (s *Server) uploadError(r *http.Request, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &ErrBodyTooLarge{Limit: maxErr.Limit}
	}
	if r.ContentLength > s.maxUploadBytes {
		return &ErrBodyTooLarge{Limit: s.maxUploadBytes}
	}
	if errors.Is(err, http.ErrMissingFile) && r.MultipartForm != nil {
		if _, ok := r.MultipartForm.Value[csvField]; ok {
			return &prediction.EmptyFilenameError{}
		}
	}
	s.logger.Debug("no csv file in upload", zap.Error(err))
	return &prediction.NoFileUploadedError{}
}

// handleHistory lists recently served predictions.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.errorResponse(w, &ErrHistoryDisabled{})
		return
	}

	q := types.HistoryQuery{
		Limit:  types.DefaultHistoryLimit,
		Source: r.URL.Query().Get("source"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: "must be an integer"})
			return
		}
		q.Limit = n
	}
	if err := q.Validate(); err != nil {
		s.errorResponse(w, queryValidationError(err))
		return
	}

	entries, err := s.history.Recent(r.Context(), q)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	s.jsonResponse(w, http.StatusOK, types.HistoryResponse{
		Success:     true,
		Predictions: entries,
		Count:       len(entries),
	})
}

func queryValidationError(err error) *ErrValidation {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{
			Field:   strings.ToLower(fe.Field()),
			Message: "failed '" + fe.Tag() + "' check",
		}
	}
	return &ErrValidation{Field: "query", Message: err.Error()}
}

// recordHistory stores entries without failing the request. Entries are tagged with the
// authenticated client, if any.
func (s *Server) recordHistory(r *http.Request, entries []types.HistoryEntry) {
	if s.history == nil || len(entries) == 0 {
		return
	}
	if clientID, err := middleware.GetClientID(r); err == nil {
		for i := range entries {
			entries[i].ClientID = &clientID
		}
	}
	if err := s.history.Save(r.Context(), entries); err != nil {
		s.logger.Warn("failed to record prediction history", zap.Error(err), zap.Int("entries", len(entries)))
	}
}

// errorResponse writes the failure body for err with the status from HTTPStatus.
// Encoding failures also name the offending column and value.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	body := types.FailureResponse{Success: false, Message: err.Error()}

	var encodeErr *features.EncodeError
	if errors.As(err, &encodeErr) {
		body.Column = encodeErr.Column
		body.Value = encodeErr.Value
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.jsonResponse(w, status, body)
}
