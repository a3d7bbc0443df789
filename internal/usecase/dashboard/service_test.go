package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Vinni986/AI-interview-platform/pkg/config"
	"github.com/Vinni986/AI-interview-platform/pkg/workflow"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	wf := workflow.NewClient(&config.WorkflowConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	return NewService(wf, nil, zap.NewNop())
}

func TestOverviewAggregatesAllThreeReads(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/results-list":
			w.Write([]byte(`{"results":[{"id":"1","name":"A","score":8,"status":"accepted"},{"id":"2","name":"B","score":6,"status":"rejected"},{"id":"3","name":"C","score":9,"status":"accepted"}]}`))
		case "/email-status":
			w.Write([]byte(`{"emails":[{"recipient":"a@example.com","subject":"s","status":"sent"}],"stats":{"sent":1,"pending":0,"failed":0,"total":1}}`))
		case "/questions-list":
			w.Write([]byte(`{"questions":[{"id":1,"question":"Q1"},{"id":2,"question":"Q2"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Stats.AvgScore != 7.7 {
		t.Errorf("AvgScore = %v, want 7.7", ov.Stats.AvgScore)
	}
	if ov.Stats.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", ov.Stats.TotalQuestions)
	}
	if ov.Stats.EmailsSent != 1 {
		t.Errorf("EmailsSent = %d, want 1", ov.Stats.EmailsSent)
	}
	if len(ov.Activity) != 4 {
		t.Errorf("activity entries = %d, want 4", len(ov.Activity))
	}
}

func TestOverviewFailsAsUnit(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/email-status" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"results":[],"questions":[]}`))
	})

	if _, err := svc.Overview(context.Background()); err == nil {
		t.Fatal("a failed underlying read must fail the whole overview")
	}
}

func TestQuestionsSubstringFilter(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"questions":[
			{"id":1,"role":"Backend Engineer","question":"Explain database indexing"},
			{"id":2,"role":"Frontend Engineer","question":"What is a closure"},
			{"id":3,"role":"Backend Engineer","question":"Describe a REST API"}
		]}`))
	})

	got, err := svc.Questions(context.Background(), "backend")
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("filtered length = %d, want 2", len(got))
	}

	got, err = svc.Questions(context.Background(), "closure")
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("filter by question text failed: %+v", got)
	}

	got, err = svc.Questions(context.Background(), "")
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("unfiltered length = %d, want 3", len(got))
	}
}

// fakeArchive serves canned resume keys and deterministic links.
type fakeArchive struct {
	keys      []string
	listErr   error
	linkCalls int
}

func (a *fakeArchive) ListCVs(_ context.Context, jdHash string) ([]string, error) {
	if a.listErr != nil {
		return nil, a.listErr
	}
	return a.keys, nil
}

func (a *fakeArchive) CVLink(_ context.Context, objectName string, _ time.Duration) (string, error) {
	a.linkCalls++
	return "https://cdn.example.com/" + objectName, nil
}

func TestArchivedCVsReturnsLinks(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
	svc.archive = &fakeArchive{keys: []string{"cvs/hash-1/a.pdf", "cvs/hash-1/b.pdf"}}

	cvs, err := svc.ArchivedCVs(context.Background(), "hash-1")
	if err != nil {
		t.Fatalf("ArchivedCVs: %v", err)
	}
	if len(cvs) != 2 {
		t.Fatalf("got %d CVs, want 2", len(cvs))
	}
	if cvs[0].Key != "cvs/hash-1/a.pdf" {
		t.Errorf("key = %q", cvs[0].Key)
	}
	if cvs[0].CVLink != "https://cdn.example.com/cvs/hash-1/a.pdf" {
		t.Errorf("cvLink = %q", cvs[0].CVLink)
	}
}

func TestArchivedCVsRequiresJDHash(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
	svc.archive = &fakeArchive{}

	if _, err := svc.ArchivedCVs(context.Background(), ""); err == nil {
		t.Fatal("expected missing jd_hash to be rejected")
	}
}

func TestArchivedCVsWithoutStorage(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})

	if _, err := svc.ArchivedCVs(context.Background(), "hash-1"); err == nil {
		t.Fatal("expected an error when storage is not configured")
	}
}
