package dashboard

// AddQuestionRequest appends a question to the bank
type AddQuestionRequest struct {
	JDHash   string `json:"jd_hash" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Question string `json:"question" validate:"required"`
	HRAnswer string `json:"hr_answer"`
}

// UpdateQuestionRequest edits an existing question
type UpdateQuestionRequest struct {
	ID       int64  `json:"id" validate:"required"`
	JDHash   string `json:"jd_hash"`
	Role     string `json:"role"`
	Question string `json:"question"`
	HRAnswer string `json:"hr_answer"`
}

// EvaluateRequest scores one answer against a JD context
type EvaluateRequest struct {
	JDHash   string `json:"jd_hash"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}
