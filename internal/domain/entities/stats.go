package entities

// DashboardStats are derived counts recomputed on every overview load.
// Nothing here is persisted.
type DashboardStats struct {
	TotalApplications  int     `json:"total_applications"`
	PendingInterviews  int     `json:"pending_interviews"`
	Accepted           int     `json:"accepted"`
	Rejected           int     `json:"rejected"`
	RejectionRate      float64 `json:"rejection_rate"` // percentage, 0 decimals
	EmailsSent         int     `json:"emails_sent"`
	EmailsPending      int     `json:"emails_pending"`
	EmailsFailed       int     `json:"emails_failed"`
	TotalQuestions     int     `json:"total_questions"`
	AvgScore           float64 `json:"avg_score"` // one decimal, 0 when empty
	RecentApplications int     `json:"recent_applications"`
}

// ActivityType classifies a recent-activity feed entry
type ActivityType string

const (
	ActivityInterview ActivityType = "interview"
	ActivityShortlist ActivityType = "shortlist"
	ActivityEmail     ActivityType = "email"
)

// ActivityItem is one entry in the dashboard recent-activity feed
type ActivityItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Time        string       `json:"time"`
	Type        ActivityType `json:"type"`
}
