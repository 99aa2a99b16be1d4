package services

import (
	"errors"
	"livevote/internal/models"
	"livevote/internal/remote"
)

var (
	ErrAlreadyVoted       = errors.New("this device has already voted")
	ErrSubmissionInFlight = errors.New("a vote submission is already in flight")
	ErrNotPending         = errors.New("no vote is awaiting confirmation")
	ErrUnknownCandidate   = errors.New("unknown candidate")
)

const genericFailure = "Something went wrong. Please try again."

// NoticeFor turns an error into the blocking notification shown to the user.
func NoticeFor(err error) models.Notice {
	var rerr *remote.Error
	switch {
	case errors.As(err, &rerr):
		return models.Notice{Level: models.NoticeError, Message: rerr.UserMessage()}
	case errors.Is(err, ErrAlreadyVoted):
		return models.Notice{Level: models.NoticeError, Message: "You have already voted!"}
	case errors.Is(err, ErrSubmissionInFlight):
		return models.Notice{Level: models.NoticeError, Message: "Your vote is being submitted."}
	case errors.Is(err, ErrNotPending):
		return models.Notice{Level: models.NoticeError, Message: "Select a candidate first."}
	case errors.Is(err, ErrUnknownCandidate):
		return models.Notice{Level: models.NoticeError, Message: "That candidate is no longer on the ballot."}
	default:
		return models.Notice{Level: models.NoticeError, Message: genericFailure}
	}
}
