package streams

import (
	"fmt"

	"traffic-analytics/internal/models"
)

// AckPolicy decides whether a consumed batch is committed back to the broker.
type AckPolicy string

const (
	// AckLossy commits every batch, including batches whose write failed.
	AckLossy AckPolicy = "lossy"
	// AckAtLeastOnce commits only batches whose write succeeded.
	AckAtLeastOnce AckPolicy = "at_least_once"
)

func NewAckPolicyFromString(value string) (AckPolicy, error) {
	switch AckPolicy(value) {
	case "", AckLossy:
		return AckLossy, nil
	case AckAtLeastOnce:
		return AckAtLeastOnce, nil
	default:
		return "", fmt.Errorf("unknown ack mode %q", value)
	}
}

// ShouldCommit reports whether a batch with the given outcome may be acknowledged.
func (p AckPolicy) ShouldCommit(outcome *models.BatchOutcome) bool {
	if p == AckAtLeastOnce {
		return outcome != nil && outcome.Succeeded()
	}
	return true
}
