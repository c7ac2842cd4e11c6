package analyzer

import (
	"fmt"
)

// BatchAbortError is returned when any document of a batch fails to
// extract. No report is produced for the batch.
type BatchAbortError struct {
	FileName string
	Err      error
}

func (e *BatchAbortError) Error() string {
	return fmt.Sprintf("could not process file: %s. It might be corrupted or in an unsupported format.", e.FileName)
}

func (e *BatchAbortError) Unwrap() error {
	return e.Err
}
