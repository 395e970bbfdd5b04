package prediction

import (
	"fmt"
	"strings"
)

// NoFileUploadedError indicates the upload form carried no CSV file field.
type NoFileUploadedError struct{}

func (e *NoFileUploadedError) Error() string {
	return "no file was uploaded"
}

// EmptyFilenameError indicates the file field was present but no file was chosen.
type EmptyFilenameError struct{}

func (e *EmptyFilenameError) Error() string {
	return "please choose a CSV file"
}

// MissingColumnsError indicates the CSV header lacks required schema columns.
type MissingColumnsError struct {
	Missing  []string
	Required []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns missing: %s. Required: %s", quoteList(e.Missing), quoteList(e.Required))
}

// FileProcessingError indicates the uploaded file could not be read as a CSV table.
type FileProcessingError struct {
	Cause error
}

func (e *FileProcessingError) Error() string {
	return fmt.Sprintf("failed to process CSV: %v", e.Cause)
}

func (e *FileProcessingError) Unwrap() error {
	return e.Cause
}

// ModelError indicates the classifier failed on a well-formed feature vector.
type ModelError struct {
	Cause error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model inference failed: %v", e.Cause)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
