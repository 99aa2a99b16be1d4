package models

import (
	"strings"
	"time"
)

type Candidate struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	VoteCount   int64  `json:"vote_count"`
}

// CandidateInput is the body of candidate create and update calls.
type CandidateInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Normalize trims every field, matching what the admin form submits.
func (in CandidateInput) Normalize() CandidateInput {
	return CandidateInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}

type Result struct {
	Name      string `json:"name"`
	VoteCount int64  `json:"vote_count"`
}

type VoteRecord struct {
	IPAddress     string    `json:"ip_address"`
	CandidateName string    `json:"candidate_name"`
	Timestamp     time.Time `json:"timestamp"`
}
