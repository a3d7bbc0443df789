package entities

// QuestionRecord is one entry in the interview question bank, generated
// upstream from a job description and optionally annotated by HR.
type QuestionRecord struct {
	ID       int64  `json:"id"`
	JDHash   string `json:"jd_hash"`
	Role     string `json:"role"`
	Question string `json:"question"`
	HRAnswer string `json:"hr_answer,omitempty"`
}
