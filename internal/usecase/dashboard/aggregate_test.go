package dashboard

import (
	"testing"
	"time"

	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
)

func TestAggregateAverageScore(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	results := []entities.CandidateResult{
		{ID: "1", Score: 8, Status: entities.ResultAccepted},
		{ID: "2", Score: 6, Status: entities.ResultRejected},
		{ID: "3", Score: 9, Status: entities.ResultAccepted},
	}

	stats := Aggregate(results, nil, entities.EmailStats{}, nil, now)

	if stats.AvgScore != 7.7 {
		t.Errorf("AvgScore = %v, want 7.7", stats.AvgScore)
	}
	if stats.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", stats.Accepted)
	}
	if stats.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", stats.Rejected)
	}
	if stats.RejectionRate != 33 {
		t.Errorf("RejectionRate = %v, want 33", stats.RejectionRate)
	}
}

func TestAggregateEmptyResults(t *testing.T) {
	stats := Aggregate(nil, nil, entities.EmailStats{}, nil, time.Now())
	if stats.AvgScore != 0 {
		t.Errorf("AvgScore = %v, want 0 for empty list", stats.AvgScore)
	}
	if stats.RejectionRate != 0 {
		t.Errorf("RejectionRate = %v, want 0 for empty list", stats.RejectionRate)
	}
}

func TestAggregateRecentApplications(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	results := []entities.CandidateResult{
		{ID: "1", Date: now.AddDate(0, 0, -2).Format(time.RFC3339)},
		{ID: "2", Date: now.AddDate(0, 0, -6).Format(time.RFC3339)},
		{ID: "3", Date: now.AddDate(0, 0, -10).Format(time.RFC3339)},
		{ID: "4", Date: "not a timestamp"},
	}

	stats := Aggregate(results, nil, entities.EmailStats{}, nil, now)
	if stats.RecentApplications != 2 {
		t.Errorf("RecentApplications = %d, want 2", stats.RecentApplications)
	}
}

func TestAggregateEmailAndQuestionCounts(t *testing.T) {
	stats := Aggregate(nil, nil,
		entities.EmailStats{Sent: 5, Pending: 2, Failed: 1, Total: 8},
		make([]entities.QuestionRecord, 4),
		time.Now())

	if stats.EmailsSent != 5 || stats.EmailsPending != 2 || stats.EmailsFailed != 1 {
		t.Errorf("email counts = %d/%d/%d, want 5/2/1", stats.EmailsSent, stats.EmailsPending, stats.EmailsFailed)
	}
	if stats.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", stats.TotalQuestions)
	}
}

func TestRecentActivityCap(t *testing.T) {
	results := []entities.CandidateResult{
		{ID: "1", Name: "A", Status: entities.ResultPending},
		{ID: "2", Name: "B", Status: entities.ResultAccepted},
		{ID: "3", Name: "C", Status: entities.ResultPending},
		{ID: "4", Name: "D", Status: entities.ResultPending},
	}
	emails := []entities.EmailRecord{
		{Recipient: "a@example.com", Subject: "s1", Status: entities.EmailSent},
		{Recipient: "b@example.com", Subject: "s2", Status: entities.EmailSent},
		{Recipient: "c@example.com", Subject: "s3", Status: entities.EmailSent},
	}

	feed := RecentActivity(results, emails)

	if len(feed) != 5 {
		t.Fatalf("feed length = %d, want 5", len(feed))
	}
	// First three from results in order, then two emails; no time sort.
	if feed[0].ID != "result-1" || feed[1].ID != "result-2" || feed[2].ID != "result-3" {
		t.Errorf("results portion out of order: %s %s %s", feed[0].ID, feed[1].ID, feed[2].ID)
	}
	if feed[3].Type != entities.ActivityEmail || feed[4].Type != entities.ActivityEmail {
		t.Errorf("tail must be email entries, got %s %s", feed[3].Type, feed[4].Type)
	}
	if feed[1].Type != entities.ActivityShortlist {
		t.Errorf("accepted result must surface as shortlist, got %s", feed[1].Type)
	}
}

func TestRecentActivityShortLists(t *testing.T) {
	feed := RecentActivity(
		[]entities.CandidateResult{{ID: "1", Name: "A"}},
		[]entities.EmailRecord{{Recipient: "x@example.com", Subject: "s"}},
	)
	if len(feed) != 2 {
		t.Fatalf("feed length = %d, want 2", len(feed))
	}
}
