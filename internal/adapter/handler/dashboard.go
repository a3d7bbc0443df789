package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	dashdto "github.com/Vinni986/AI-interview-platform/internal/adapter/dto/dashboard"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/dashboard"
)

// Dashboard handles the protected HR data views.
type Dashboard struct {
	service *dashboard.Service
	logger  *zap.Logger
}

// NewDashboard creates the dashboard handler.
func NewDashboard(service *dashboard.Service, logger *zap.Logger) *Dashboard {
	return &Dashboard{service: service, logger: logger}
}

// Overview returns the aggregated stats and activity feed.
func (h *Dashboard) Overview(c echo.Context) error {
	ov, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, ov)
}

// Results returns every candidate scorecard.
func (h *Dashboard) Results(c echo.Context) error {
	results, err := h.service.Results(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"results": results})
}

// ResultsCSV exports the scorecards as a CSV download.
func (h *Dashboard) ResultsCSV(c echo.Context) error {
	results, err := h.service.Results(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="interview-results.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write([]string{"Name", "Email", "Role", "Score", "Status", "Date", "Feedback"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.Name, r.Email, r.Role,
			fmt.Sprintf("%.1f", r.Score),
			string(r.Status), r.Date, r.Feedback,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Emails returns the delivery log and counts.
func (h *Dashboard) Emails(c echo.Context) error {
	emails, stats, err := h.service.Emails(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"emails": emails,
		"stats":  stats,
	})
}

// ArchivedCVs lists the stored resumes for one posting (?jd_hash=), each
// with a time-limited download link.
func (h *Dashboard) ArchivedCVs(c echo.Context) error {
	cvs, err := h.service.ArchivedCVs(c.Request().Context(), c.QueryParam("jd_hash"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"cvs": cvs})
}

// Questions returns the question bank, optionally filtered by ?search=.
// A ?jd_hash= narrows to one posting instead.
func (h *Dashboard) Questions(c echo.Context) error {
	ctx := c.Request().Context()

	if jdHash := c.QueryParam("jd_hash"); jdHash != "" {
		questions, err := h.service.QuestionsForJD(ctx, jdHash)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, map[string]interface{}{"questions": questions})
	}

	questions, err := h.service.Questions(ctx, c.QueryParam("search"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"questions": questions})
}

// AddQuestion appends a question to the bank.
func (h *Dashboard) AddQuestion(c echo.Context) error {
	var req dashdto.AddQuestionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if err := h.service.AddQuestion(c.Request().Context(), req.JDHash, req.Role, req.Question, req.HRAnswer); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"status": "created"})
}

// UpdateQuestion edits an existing question.
func (h *Dashboard) UpdateQuestion(c echo.Context) error {
	var req dashdto.UpdateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if err := h.service.UpdateQuestion(c.Request().Context(), req.ID, req.JDHash, req.Role, req.Question, req.HRAnswer); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"status": "updated"})
}

// Evaluate scores one answer against the JD context.
func (h *Dashboard) Evaluate(c echo.Context) error {
	var req dashdto.EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	resp, err := h.service.EvaluateAnswer(c.Request().Context(), req.JDHash, req.Question, req.Answer)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, resp)
}
