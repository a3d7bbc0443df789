package entities

// ResultStatus is the evaluation outcome assigned by the external pipeline
type ResultStatus string

const (
	ResultAccepted ResultStatus = "accepted"
	ResultRejected ResultStatus = "rejected"
	ResultPending  ResultStatus = "pending"
)

// QuestionScore is one question/answer pair with its per-question evaluation
type QuestionScore struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// CandidateResult is a read-only scorecard produced by the external
// evaluation pipeline. Field names follow the workflow wire format.
type CandidateResult struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	JDHash         string          `json:"jd_hash"`
	Score          float64         `json:"score"` // 0-10
	Feedback       string          `json:"feedback"`
	Status         ResultStatus    `json:"status"`
	Date           string          `json:"date"` // ISO timestamp
	CVLink         string          `json:"cvLink"`
	QuestionScores []QuestionScore `json:"questionScores"`
}
