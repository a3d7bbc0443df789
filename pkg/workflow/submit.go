package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// SubmitResult is the loosely-typed acknowledgement the workflow engine
// returns for write operations. Fields beyond success/message vary per
// workflow, so the raw decoded body is kept alongside the common ones.
type SubmitResult struct {
	Success bool
	Message string
	JDHash  string
	Raw     map[string]interface{}
}

// UnmarshalJSON keeps the well-known fields typed and everything else in Raw.
func (r *SubmitResult) UnmarshalJSON(data []byte) error {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Raw = raw
	if v, ok := raw["success"].(bool); ok {
		r.Success = v
	}
	if v, ok := raw["message"].(string); ok {
		r.Message = v
	}
	if v, ok := raw["jd_hash"].(string); ok {
		r.JDHash = v
	}
	return nil
}

// CV is an uploaded resume to forward upstream.
type CV struct {
	Filename string
	Data     []byte
}

// JobApplicationParams carries the fields of the simple apply workflow.
// They travel in the query string; only the CV is part of the body.
type JobApplicationParams struct {
	Name     string
	Email    string
	Phone    string
	Role     string
	JD       string
	Location string
}

// SubmitJobApplication triggers the candidate-apply workflow. The CV is a
// single multipart field named "cv".
func (c *Client) SubmitJobApplication(ctx context.Context, params JobApplicationParams, cv CV) (*SubmitResult, error) {
	q := url.Values{}
	q.Set("name", params.Name)
	q.Set("email", params.Email)
	q.Set("phone", params.Phone)
	q.Set("role", params.Role)
	q.Set("jd", params.JD)
	q.Set("location", params.Location)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("cv", cv.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(cv.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out SubmitResult
	if err := c.request(ctx, http.MethodPost, "/job-application?"+q.Encode(), &body, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FormSubmission carries the fields of the full HR posting form. The field
// names on the wire are fixed by the receiving workflow and must not change.
type FormSubmission struct {
	FullName    string
	Email       string
	PhoneNumber string
	Location    string
	Role        string
	JD          string
	CoverLetter string
}

// SubmitForm triggers the form-based posting workflow at /form/{formId}.
func (c *Client) SubmitForm(ctx context.Context, form FormSubmission, cv CV) (*SubmitResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := []struct{ name, value string }{
		{"Full Name", form.FullName},
		{"Email", form.Email},
		{"Phone Number", form.PhoneNumber},
		{"Location", form.Location},
		{"role", form.Role},
		{"jd", form.JD},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}

	fw, err := w.CreateFormFile("Cv", cv.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(cv.Data); err != nil {
		return nil, err
	}

	if strings.TrimSpace(form.CoverLetter) != "" {
		if err := w.WriteField("coverLetter", form.CoverLetter); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out SubmitResult
	if err := c.request(ctx, http.MethodPost, "/form/"+c.formID, &body, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EvaluationRequest is the payload for /evaluate-answer
type EvaluationRequest struct {
	JDHash   string `json:"jd_hash"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EvaluationResponse is the scored verdict for one answer.
type EvaluationResponse struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message,omitempty"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback,omitempty"`
}

// EvaluateAnswer asks the engine to score one answer against the JD context.
func (c *Client) EvaluateAnswer(ctx context.Context, req *EvaluationRequest) (*EvaluationResponse, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var out EvaluationResponse
	if err := c.request(ctx, http.MethodPost, "/evaluate-answer", bytes.NewReader(b), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
