package entities

// TranscriptRole distinguishes who produced an utterance
type TranscriptRole string

const (
	TranscriptAgent TranscriptRole = "agent"
	TranscriptUser  TranscriptRole = "user"
)

// TranscriptEntry is one utterance in a live-interview transcript. The
// transcript is append-only for the lifetime of one voice connection and is
// discarded when the session is evicted.
type TranscriptEntry struct {
	Role TranscriptRole `json:"role"`
	Text string         `json:"text"`
}
