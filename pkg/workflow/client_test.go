package workflow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.WorkflowConfig{
		BaseURL: baseURL,
		FormID:  "8baa0e05-8b0b-4e9a-a953-9a32e875a3aa",
		Timeout: 5 * time.Second,
	})
}

func TestGetInterviewSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-interview-session" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("eventId"); got != "evt-1" {
			t.Errorf("eventId = %q, want evt-1", got)
		}
		if got := r.URL.Query().Get("email"); got != "jane@example.com" {
			t.Errorf("email = %q, want jane@example.com", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"firstName":"Jane","eventName":"Backend Interview","interview_status":"active","time_remaining_mins":42}}`))
	}))
	defer srv.Close()

	env, err := newTestClient(srv.URL).GetInterviewSession(context.Background(), "evt-1", "jane@example.com")
	if err != nil {
		t.Fatalf("GetInterviewSession: %v", err)
	}
	if !env.Success {
		t.Fatal("expected success envelope")
	}
	if env.Data == nil || env.Data.FirstName != "Jane" {
		t.Fatalf("unexpected data: %+v", env.Data)
	}
	if env.Data.TimeRemainingMins != 42 {
		t.Errorf("time_remaining_mins = %d, want 42", env.Data.TimeRemainingMins)
	}
}

func TestEmptyBodyIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	env, err := newTestClient(srv.URL).GetInterviewSession(context.Background(), "evt-1", "jane@example.com")
	if err != nil {
		t.Fatalf("empty body must not be a hard error, got %v", err)
	}
	if env.Success {
		t.Fatal("empty body must decode as a failed envelope")
	}
	if env.Message != "Empty response from server" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestNonOKStatusKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Workflow was started"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ResultsList(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", se.StatusCode)
	}
	if se.Body != "Workflow was started" {
		t.Errorf("body = %q", se.Body)
	}
}

func TestSubmitJobApplication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/job-application" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		for key, want := range map[string]string{
			"name":     "Jane Doe",
			"email":    "jane@example.com",
			"phone":    "+1-555-0100",
			"role":     "Backend Engineer",
			"jd":       "Builds APIs",
			"location": "Remote",
		} {
			if got := q.Get(key); got != want {
				t.Errorf("query %s = %q, want %q", key, got, want)
			}
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("cv")
		if err != nil {
			t.Fatalf("cv field missing: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "resume.pdf" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"jd_hash":"abc123"}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).SubmitJobApplication(context.Background(),
		JobApplicationParams{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "+1-555-0100",
			Role:     "Backend Engineer",
			JD:       "Builds APIs",
			Location: "Remote",
		},
		CV{Filename: "resume.pdf", Data: []byte("%PDF-1.4")},
	)
	if err != nil {
		t.Fatalf("SubmitJobApplication: %v", err)
	}
	if !res.Success {
		t.Fatal("expected success")
	}
	if res.JDHash != "abc123" {
		t.Errorf("jd_hash = %q", res.JDHash)
	}
}

func TestSubmitFormFieldNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/form/8baa0e05-8b0b-4e9a-a953-9a32e875a3aa" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(20 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		for key, want := range map[string]string{
			"Full Name":    "Jane Doe",
			"Email":        "jane@example.com",
			"Phone Number": "+1-555-0100",
			"Location":     "Remote",
			"role":         "Backend Engineer",
			"jd":           "Builds APIs",
			"coverLetter":  "I build things.",
		} {
			if got := r.FormValue(key); got != want {
				t.Errorf("field %q = %q, want %q", key, got, want)
			}
		}
		if _, _, err := r.FormFile("Cv"); err != nil {
			t.Errorf("Cv field missing: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SubmitForm(context.Background(),
		FormSubmission{
			FullName:    "Jane Doe",
			Email:       "jane@example.com",
			PhoneNumber: "+1-555-0100",
			Location:    "Remote",
			Role:        "Backend Engineer",
			JD:          "Builds APIs",
			CoverLetter: "I build things.",
		},
		CV{Filename: "resume.pdf", Data: []byte("%PDF-1.4")},
	)
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
}

func TestSubmitFormSkipsEmptyCoverLetter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(20 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, ok := r.MultipartForm.Value["coverLetter"]; ok {
			t.Error("coverLetter must be omitted when blank")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SubmitForm(context.Background(),
		FormSubmission{FullName: "Jane", Email: "jane@example.com", PhoneNumber: "1", Location: "Remote", Role: "x", JD: "y"},
		CV{Filename: "resume.pdf", Data: []byte("%PDF-1.4")},
	)
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
}

func TestEvaluateAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/evaluate-answer" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"score":7.5,"feedback":"Solid grasp of indexing."}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).EvaluateAnswer(context.Background(), &EvaluationRequest{
		JDHash:   "abc123",
		Question: "Explain an index.",
		Answer:   "A B-tree over one or more columns.",
	})
	if err != nil {
		t.Fatalf("EvaluateAnswer: %v", err)
	}
	if res.Score != 7.5 {
		t.Errorf("score = %v, want 7.5", res.Score)
	}
}
