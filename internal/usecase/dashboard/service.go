package dashboard

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
	"github.com/Vinni986/AI-interview-platform/pkg/workflow"
)

// CVArchive is the slice of the resume archive the dashboard reads:
// stored keys per posting and time-limited download links for them.
type CVArchive interface {
	ListCVs(ctx context.Context, jdHash string) ([]string, error)
	CVLink(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Service backs the HR dashboard tabs. Every tab reads fresh from the
// workflow engine; nothing is cached between loads. The archive may be
// nil when storage is not configured.
type Service struct {
	workflow *workflow.Client
	archive  CVArchive
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates the dashboard service.
func NewService(wf *workflow.Client, archive CVArchive, logger *zap.Logger) *Service {
	return &Service{
		workflow: wf,
		archive:  archive,
		logger:   logger,
		now:      time.Now,
	}
}

// Overview is the aggregated top tab.
type Overview struct {
	Stats    entities.DashboardStats `json:"stats"`
	Activity []entities.ActivityItem `json:"activity"`
}

// Overview fans out the three list reads concurrently and aggregates them.
// The tab fails as a unit: if any underlying read rejects, the whole
// overview is an error and the caller retries explicitly.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var (
		results   *workflow.ResultsListResponse
		emails    *workflow.EmailStatusResponse
		questions *workflow.QuestionsListResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results, err = s.workflow.ResultsList(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		emails, err = s.workflow.EmailStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		questions, err = s.workflow.QuestionsList(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, s.wrap(err)
	}

	return &Overview{
		Stats:    Aggregate(results.Results, emails.Emails, emails.Stats, questions.Questions, s.now()),
		Activity: RecentActivity(results.Results, emails.Emails),
	}, nil
}

// Results returns every candidate scorecard.
func (s *Service) Results(ctx context.Context) ([]entities.CandidateResult, error) {
	resp, err := s.workflow.ResultsList(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return resp.Results, nil
}

// ArchivedCV is one stored resume with its download link.
type ArchivedCV struct {
	Key    string `json:"key"`
	CVLink string `json:"cvLink"`
}

const cvLinkExpiry = 15 * time.Minute

// ArchivedCVs lists the resumes stored for one posting, each with a
// presigned download link the results view can render.
func (s *Service) ArchivedCVs(ctx context.Context, jdHash string) ([]ArchivedCV, error) {
	if jdHash == "" {
		return nil, apperrors.ErrInvalidArgument("jd_hash is required")
	}
	if s.archive == nil {
		return nil, apperrors.ErrStorageFailed("list CVs", errors.New("storage is not configured"))
	}

	keys, err := s.archive.ListCVs(ctx, jdHash)
	if err != nil {
		return nil, apperrors.ErrStorageFailed("list CVs", err)
	}

	cvs := make([]ArchivedCV, 0, len(keys))
	for _, key := range keys {
		link, err := s.archive.CVLink(ctx, key, cvLinkExpiry)
		if err != nil {
			return nil, apperrors.ErrStorageFailed("link CV", err)
		}
		cvs = append(cvs, ArchivedCV{Key: key, CVLink: link})
	}
	return cvs, nil
}

// Emails returns the delivery log and its aggregate counts.
func (s *Service) Emails(ctx context.Context) ([]entities.EmailRecord, entities.EmailStats, error) {
	resp, err := s.workflow.EmailStatus(ctx)
	if err != nil {
		return nil, entities.EmailStats{}, s.wrap(err)
	}
	return resp.Emails, resp.Stats, nil
}

// Questions returns the question bank, filtered locally by a
// case-insensitive substring over question text and role.
func (s *Service) Questions(ctx context.Context, search string) ([]entities.QuestionRecord, error) {
	resp, err := s.workflow.QuestionsList(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	if search == "" {
		return resp.Questions, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]entities.QuestionRecord, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		if strings.Contains(strings.ToLower(q.Question), needle) || strings.Contains(strings.ToLower(q.Role), needle) {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

// QuestionsForJD returns the questions generated for one posting.
func (s *Service) QuestionsForJD(ctx context.Context, jdHash string) ([]entities.QuestionRecord, error) {
	if jdHash == "" {
		return nil, apperrors.ErrInvalidArgument("jd_hash is required")
	}
	resp, err := s.workflow.QuestionsByJD(ctx, jdHash)
	if err != nil {
		return nil, s.wrap(err)
	}
	return resp.Questions, nil
}

// AddQuestion appends a question to the bank.
func (s *Service) AddQuestion(ctx context.Context, jdHash, role, question, hrAnswer string) error {
	if question == "" {
		return apperrors.ErrInvalidArgument("question is required")
	}
	res, err := s.workflow.AddQuestion(ctx, &workflow.AddQuestionRequest{
		JDHash:   jdHash,
		Role:     role,
		Question: question,
		HRAnswer: hrAnswer,
	})
	if err != nil {
		return s.wrap(err)
	}
	if !res.Success {
		return apperrors.ErrInvalidArgument(res.Message)
	}
	return nil
}

// UpdateQuestion edits a question in the bank.
func (s *Service) UpdateQuestion(ctx context.Context, id int64, jdHash, role, question, hrAnswer string) error {
	res, err := s.workflow.UpdateQuestion(ctx, &workflow.UpdateQuestionRequest{
		ID:       id,
		JDHash:   jdHash,
		Role:     role,
		Question: question,
		HRAnswer: hrAnswer,
	})
	if err != nil {
		return s.wrap(err)
	}
	if !res.Success {
		return apperrors.ErrInvalidArgument(res.Message)
	}
	return nil
}

// EvaluateAnswer scores one answer against the JD context. Used by HR to
// spot-check the evaluation pipeline.
func (s *Service) EvaluateAnswer(ctx context.Context, jdHash, question, answer string) (*workflow.EvaluationResponse, error) {
	if question == "" || answer == "" {
		return nil, apperrors.ErrInvalidArgument("question and answer are required")
	}
	resp, err := s.workflow.EvaluateAnswer(ctx, &workflow.EvaluationRequest{
		JDHash:   jdHash,
		Question: question,
		Answer:   answer,
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return resp, nil
}

func (s *Service) wrap(err error) error {
	var se *workflow.StatusError
	if errors.As(err, &se) {
		return apperrors.ErrWorkflowBadStatus(se.StatusCode)
	}
	return apperrors.ErrWorkflowUnavailable(err)
}
