package report

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyReason   = errors.New("report reason is required")
	ErrReasonTooLong = errors.New("report reason exceeds maximum length")
	ErrInvalidStatus = errors.New("invalid report status")
)

const MaxReasonLength = 500

type Status string

const (
	StatusOpen      Status = "open"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

func (s Status) String() string { return string(s) }

func NewStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusOpen, StatusResolved, StatusDismissed:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Report struct {
	id         uuid.UUID
	dealID     uuid.UUID
	reporterID uuid.UUID
	reason     string
	status     Status
	createdAt  time.Time
}

func NewReport(dealID, reporterID uuid.UUID, reason string, now time.Time) (*Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}
	if len([]rune(reason)) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}
	return &Report{
		id:         uuid.New(),
		dealID:     dealID,
		reporterID: reporterID,
		reason:     reason,
		status:     StatusOpen,
		createdAt:  now,
	}, nil
}

func (r *Report) ID() uuid.UUID         { return r.id }
func (r *Report) DealID() uuid.UUID     { return r.dealID }
func (r *Report) ReporterID() uuid.UUID { return r.reporterID }
func (r *Report) Reason() string        { return r.reason }
func (r *Report) Status() Status        { return r.status }
func (r *Report) CreatedAt() time.Time  { return r.createdAt }
