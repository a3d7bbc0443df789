package entities

// EmailStatus is the delivery state reported by the email pipeline
type EmailStatus string

const (
	EmailSent    EmailStatus = "sent"
	EmailPending EmailStatus = "pending"
	EmailFailed  EmailStatus = "failed"
)

// EmailRecord is one entry in the automated-email delivery log
type EmailRecord struct {
	Recipient string      `json:"recipient"`
	Type      string      `json:"type"`
	Subject   string      `json:"subject"`
	Status    EmailStatus `json:"status"`
	SentAt    string      `json:"sentAt"` // ISO timestamp
}

// EmailStats are the aggregate counts returned alongside the log
type EmailStats struct {
	Sent    int `json:"sent"`
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}
