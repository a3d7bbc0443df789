package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/Vinni986/AI-interview-platform/internal/domain/entities"
)

// Aggregate derives the overview stats from the three fetched lists. It is
// a pure function of its inputs plus the supplied clock; nothing here is
// persisted.
func Aggregate(results []entities.CandidateResult, emails []entities.EmailRecord, emailStats entities.EmailStats, questions []entities.QuestionRecord, now time.Time) entities.DashboardStats {
	stats := entities.DashboardStats{
		TotalApplications: len(results),
		EmailsSent:        emailStats.Sent,
		EmailsPending:     emailStats.Pending,
		EmailsFailed:      emailStats.Failed,
		TotalQuestions:    len(questions),
	}

	var scoreSum float64
	weekAgo := now.AddDate(0, 0, -7)

	for _, r := range results {
		switch r.Status {
		case entities.ResultAccepted:
			stats.Accepted++
		case entities.ResultRejected:
			stats.Rejected++
		case entities.ResultPending:
			stats.PendingInterviews++
		}
		scoreSum += r.Score

		if ts, err := time.Parse(time.RFC3339, r.Date); err == nil && ts.After(weekAgo) {
			stats.RecentApplications++
		}
	}

	if len(results) > 0 {
		stats.AvgScore = math.Round(scoreSum/float64(len(results))*10) / 10
		stats.RejectionRate = math.Round(float64(stats.Rejected) / float64(len(results)) * 100)
	}

	return stats
}

// RecentActivity builds the dashboard activity feed: the first three
// results and the first two emails, concatenated in that order and capped
// at five entries. The feed is deliberately not re-sorted by time.
func RecentActivity(results []entities.CandidateResult, emails []entities.EmailRecord) []entities.ActivityItem {
	feed := make([]entities.ActivityItem, 0, 5)

	for i, r := range results {
		if i == 3 {
			break
		}
		item := entities.ActivityItem{
			ID:          fmt.Sprintf("result-%s", r.ID),
			Title:       fmt.Sprintf("Interview completed: %s", r.Name),
			Description: fmt.Sprintf("%s scored %.1f for %s", r.Name, r.Score, r.Role),
			Time:        r.Date,
			Type:        entities.ActivityInterview,
		}
		if r.Status == entities.ResultAccepted {
			item.Type = entities.ActivityShortlist
			item.Title = fmt.Sprintf("Candidate shortlisted: %s", r.Name)
		}
		feed = append(feed, item)
	}

	for i, e := range emails {
		if i == 2 || len(feed) == 5 {
			break
		}
		feed = append(feed, entities.ActivityItem{
			ID:          fmt.Sprintf("email-%d", i),
			Title:       fmt.Sprintf("Email %s: %s", e.Status, e.Subject),
			Description: fmt.Sprintf("To %s", e.Recipient),
			Time:        e.SentAt,
			Type:        entities.ActivityEmail,
		})
	}

	return feed
}
