package handler

import (
	"io"
	"mime/multipart"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/apply"
)

// Apply handles candidate applications and HR job postings.
type Apply struct {
	service *apply.Service
	logger  *zap.Logger
}

// NewApply creates the submission handler.
func NewApply(service *apply.Service, logger *zap.Logger) *Apply {
	return &Apply{service: service, logger: logger}
}

// SubmitApplication accepts the candidate self-serve form.
func (h *Apply) SubmitApplication(c echo.Context) error {
	cv, err := h.readUpload(c, "cv")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	receipt, err := h.service.SubmitCandidate(c.Request().Context(), apply.CandidateApplication{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("phone"),
		Role:     c.FormValue("role"),
		JD:       c.FormValue("jd"),
		Location: c.FormValue("location"),
	}, cv)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, receipt)
}

// SubmitPosting accepts the HR job-posting form.
func (h *Apply) SubmitPosting(c echo.Context) error {
	cv, err := h.readUpload(c, "cv")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	receipt, err := h.service.SubmitPosting(c.Request().Context(), apply.JobPosting{
		FullName:    c.FormValue("fullName"),
		Email:       c.FormValue("email"),
		PhoneNumber: c.FormValue("phoneNumber"),
		Location:    c.FormValue("location"),
		Role:        c.FormValue("role"),
		JD:          c.FormValue("jd"),
		CoverLetter: c.FormValue("coverLetter"),
	}, cv)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, receipt)
}

func (h *Apply) readUpload(c echo.Context, field string) (apply.Upload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return apply.Upload{}, apperrors.ErrInvalidFile("A CV file is required")
	}
	return readFileHeader(fileHeader)
}

func readFileHeader(fh *multipart.FileHeader) (apply.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return apply.Upload{}, apperrors.ErrInvalidFile("Could not read the uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return apply.Upload{}, apperrors.ErrInvalidFile("Could not read the uploaded file")
	}

	return apply.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
