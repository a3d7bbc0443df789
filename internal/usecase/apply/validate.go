package apply

import (
	"fmt"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
)

// Size ceilings for CV uploads. The asymmetry between the candidate
// self-serve form and the HR-initiated form is intentional.
const (
	MaxCandidateCVSize = 5 * 1024 * 1024
	MaxPostingCVSize   = 10 * 1024 * 1024
)

// Upload is a file received from the browser before any forwarding.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// validateCV rejects bad uploads before any network call is made. The MIME
// type must be exactly application/pdf; the size limit is inclusive.
func validateCV(cv Upload, maxSize int) error {
	if len(cv.Data) == 0 {
		return apperrors.ErrInvalidFile("A CV file is required")
	}
	if cv.ContentType != "application/pdf" {
		return apperrors.ErrInvalidFile("Only PDF files are accepted")
	}
	if len(cv.Data) > maxSize {
		return apperrors.ErrInvalidFile(fmt.Sprintf("File is too large (maximum %d MB)", maxSize/(1024*1024)))
	}
	return nil
}

// requiredField pairs a form label with its value. Fields are checked in
// declaration order so the reported missing field is deterministic.
type requiredField struct {
	name  string
	value string
}

func requireFields(fields []requiredField) error {
	for _, f := range fields {
		if f.value == "" {
			return apperrors.ErrInvalidArgument(fmt.Sprintf("%s is required", f.name))
		}
	}
	return nil
}
