package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

// Client is a minimal client for the external workflow engine. All endpoints
// resolve against one configured base URL. There is no retry and no caching;
// callers decide whether a failure is worth a user-triggered retry.
type Client struct {
	baseURL string
	formID  string
	client  *http.Client
}

// NewClient creates a workflow client from the provided config.
func NewClient(cfg *config.WorkflowConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		formID:  cfg.FormID,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether the client has a base URL to talk to.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// StatusError is returned for non-2xx upstream responses. The body is kept
// because the automation platform sometimes reports a transient error whose
// text ("Workflow was started") actually indicates a successful trigger.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// request issues one HTTP request and decodes a JSON response into out.
// An empty 200 body with a JSON content type is a soft failure: out is left
// untouched and a generic envelope is reported via ErrEmptyBody semantics
// handled by the typed wrappers below.
func (c *Client) request(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		// Raw (non-JSON) responses are not decoded.
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		// Empty-but-200 is a soft failure object, not a thrown error.
		return json.Unmarshal([]byte(`{"success":false,"message":"Empty response from server"}`), out)
	}

	return json.Unmarshal(data, out)
}

// SessionEnvelope wraps the interview-session read response
type SessionEnvelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message,omitempty"`
	Data    *entities.InterviewSession `json:"data,omitempty"`
}

// GetInterviewSession reads the session record for (eventID, email).
func (c *Client) GetInterviewSession(ctx context.Context, eventID, email string) (*SessionEnvelope, error) {
	q := url.Values{}
	q.Set("eventId", eventID)
	q.Set("email", email)

	var env SessionEnvelope
	if err := c.request(ctx, http.MethodGet, "/get-interview-session?"+q.Encode(), nil, "", &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// ResultsListResponse wraps the results-list read response
type ResultsListResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message,omitempty"`
	Results []entities.CandidateResult `json:"results"`
}

// ResultsList reads all candidate scorecards.
func (c *Client) ResultsList(ctx context.Context) (*ResultsListResponse, error) {
	var out ResultsListResponse
	if err := c.request(ctx, http.MethodGet, "/results-list", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EmailStatusResponse wraps the email-status read response
type EmailStatusResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Emails  []entities.EmailRecord `json:"emails"`
	Stats   entities.EmailStats    `json:"stats"`
}

// EmailStatus reads the automated-email delivery log and counts.
func (c *Client) EmailStatus(ctx context.Context) (*EmailStatusResponse, error) {
	var out EmailStatusResponse
	if err := c.request(ctx, http.MethodGet, "/email-status", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QuestionsListResponse wraps the questions-list read response
type QuestionsListResponse struct {
	Success   bool                      `json:"success"`
	Message   string                    `json:"message,omitempty"`
	Questions []entities.QuestionRecord `json:"questions"`
}

// QuestionsList reads the full interview question bank.
func (c *Client) QuestionsList(ctx context.Context) (*QuestionsListResponse, error) {
	var out QuestionsListResponse
	if err := c.request(ctx, http.MethodGet, "/questions-list", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QuestionsByJD reads the questions generated for one JD hash.
func (c *Client) QuestionsByJD(ctx context.Context, jdHash string) (*QuestionsListResponse, error) {
	q := url.Values{}
	q.Set("jd_hash", jdHash)

	var out QuestionsListResponse
	if err := c.request(ctx, http.MethodGet, "/get-interview-questions?"+q.Encode(), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddQuestionRequest is the payload for /questions-add
type AddQuestionRequest struct {
	JDHash   string `json:"jd_hash"`
	Role     string `json:"role"`
	Question string `json:"question"`
	HRAnswer string `json:"hr_answer,omitempty"`
}

// AddQuestion appends a question to the bank.
func (c *Client) AddQuestion(ctx context.Context, req *AddQuestionRequest) (*SubmitResult, error) {
	return c.postJSON(ctx, "/questions-add", req)
}

// UpdateQuestionRequest is the payload for /questions-update
type UpdateQuestionRequest struct {
	ID       int64  `json:"id"`
	JDHash   string `json:"jd_hash,omitempty"`
	Role     string `json:"role,omitempty"`
	Question string `json:"question,omitempty"`
	HRAnswer string `json:"hr_answer,omitempty"`
}

// UpdateQuestion edits an existing question.
func (c *Client) UpdateQuestion(ctx context.Context, req *UpdateQuestionRequest) (*SubmitResult, error) {
	return c.postJSON(ctx, "/questions-update", req)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload interface{}) (*SubmitResult, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var out SubmitResult
	if err := c.request(ctx, http.MethodPost, endpoint, bytes.NewReader(b), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
