package interview

import (
	"errors"
	"strings"

	apperrors "github.com/Vinni986/AI-interview-platform/errors"
)

// ErrorKind is the classified cause of a voice-channel failure. Structured
// codes are preferred; message substrings are only a fallback for
// unstructured upstream errors.
type ErrorKind string

const (
	KindConfig       ErrorKind = "config"
	KindMicDenied    ErrorKind = "mic_denied"
	KindNetwork      ErrorKind = "network"
	KindQuota        ErrorKind = "quota"
	KindDisconnected ErrorKind = "disconnected"
	KindUnknown      ErrorKind = "unknown"
)

// userMessages maps each kind to the copy shown to the candidate.
var userMessages = map[ErrorKind]string{
	KindConfig:       "Interview service is not configured correctly. Please contact support.",
	KindMicDenied:    "Microphone access was denied. Please allow microphone access and try again.",
	KindNetwork:      "Network problem while connecting to the interview service. Please check your connection and try again.",
	KindQuota:        "The interview service is temporarily unavailable (usage limit reached). Please contact HR to reschedule.",
	KindDisconnected: "Connection lost. This is usually caused by insufficient voice-service credits or an expired quota. Please contact HR.",
	KindUnknown:      "Failed to start the interview. Please try again.",
}

// UserMessage returns the user-facing copy for a kind.
func (k ErrorKind) UserMessage() string {
	if msg, ok := userMessages[k]; ok {
		return msg
	}
	return userMessages[KindUnknown]
}

// codeKinds maps structured error codes to kinds.
var codeKinds = map[apperrors.ErrorCode]ErrorKind{
	apperrors.ErrorCode_VOICE_NOT_CONFIGURED:        KindConfig,
	apperrors.ErrorCode_VOICE_UNEXPECTED_DISCONNECT: KindDisconnected,
	apperrors.ErrorCode_WORKFLOW_UNAVAILABLE:        KindNetwork,
}

// substringKinds is the ordered fallback table. Order matters: the first
// matching entry wins.
var substringKinds = []struct {
	fragment string
	kind     ErrorKind
}{
	{"Unknown connection type", KindConfig},
	{"agent", KindConfig},
	{"microphone", KindMicDenied},
	{"permission", KindMicDenied},
	{"network", KindNetwork},
	{"quota", KindQuota},
	{"credit", KindQuota},
	{"limit", KindQuota},
	{"balance", KindQuota},
}

// Classify maps a voice-channel failure to an ErrorKind. A structured
// AppError code wins; otherwise the error text is sniffed for known
// fragments, and anything unmatched is KindUnknown.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var appErr apperrors.AppError
	if errors.As(err, &appErr) {
		if kind, ok := codeKinds[appErr.Code]; ok {
			return kind
		}
	}

	msg := strings.ToLower(err.Error())
	for _, entry := range substringKinds {
		if strings.Contains(msg, strings.ToLower(entry.fragment)) {
			return entry.kind
		}
	}

	return KindUnknown
}
