package remote

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindNetwork Kind = iota + 1
	KindValidation
	KindDuplicateVote
	KindNotFound
)

var (
	ErrNetwork       = errors.New("network error")
	ErrValidation    = errors.New("validation error")
	ErrDuplicateVote = errors.New("already voted")
	ErrNotFound      = errors.New("not found")
)

// Error codes a backend may put in the "code" field of an error body.
const (
	CodeAlreadyVoted    = "ALREADY_VOTED"
	CodeDuplicateVote   = "DUPLICATE_VOTE"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
)

// legacyDuplicateMarker is how backends without error codes report a repeat vote.
const legacyDuplicateMarker = "already voted"

type Error struct {
	Kind     Kind
	Endpoint string
	Status   int
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Endpoint, e.sentinel(), e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Endpoint, e.sentinel(), msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers match on the taxonomy with errors.Is(err, ErrDuplicateVote).
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindValidation:
		return ErrValidation
	case KindDuplicateVote:
		return ErrDuplicateVote
	case KindNotFound:
		return ErrNotFound
	default:
		return ErrNetwork
	}
}

// UserMessage is the text shown in a blocking notification.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindNetwork:
		return "Could not reach the voting server. Please try again."
	case KindDuplicateVote:
		return "You have already voted!"
	default:
		if e.Message != "" {
			return e.Message
		}
		return e.sentinel().Error()
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// classify maps a non-2xx response onto the error taxonomy. A structured
// code wins over the status; the message substring is only consulted for
// backends that predate codes. Only the vote endpoint can report a
// duplicate vote; a conflict anywhere else is a validation failure.
func classify(endpoint string, status int, body errorBody) Kind {
	voting := endpoint == VotePath

	switch strings.ToUpper(body.Code) {
	case CodeAlreadyVoted, CodeDuplicateVote:
		if voting {
			return KindDuplicateVote
		}
		return KindValidation
	case CodeValidationError:
		return KindValidation
	case CodeNotFound:
		return KindNotFound
	}

	switch {
	case status == http.StatusConflict:
		if voting {
			return KindDuplicateVote
		}
		return KindValidation
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindNetwork
	case status >= 400:
		if voting && strings.Contains(strings.ToLower(body.text()), legacyDuplicateMarker) {
			return KindDuplicateVote
		}
		return KindValidation
	default:
		return KindNetwork
	}
}
