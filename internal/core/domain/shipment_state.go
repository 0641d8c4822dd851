package domain

import (
	"fmt"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
)

// TransitionInput carries the data some transitions require.
type TransitionInput struct {
	AssigneeID  *string
	DeliveredAt *time.Time
}

type transitionRule struct {
	requireAssignee    bool
	requireDeliveredAt bool
}

var transitions = map[ShipmentStatus]map[ShipmentStatus]transitionRule{
	StatusPending: {
		StatusAssigned:  {requireAssignee: true},
		StatusCancelled: {},
	},
	StatusAssigned: {
		StatusInTransit: {},
		StatusCancelled: {},
	},
	StatusInTransit: {
		StatusDelivered: {requireDeliveredAt: true},
	},
}

// CanTransition reports whether from -> to appears in the lifecycle table,
// ignoring preconditions.
func CanTransition(from, to ShipmentStatus) bool {
	_, ok := transitions[from][to]
	return ok
}

// ValidateTransition checks from -> to against the lifecycle table and its
// preconditions. Failures wrap apperrors.ErrInvalidTransition and name both states.
func ValidateTransition(from, to ShipmentStatus, in TransitionInput) error {
	rule, ok := transitions[from][to]
	if !ok {
		return fmt.Errorf("%w: cannot move shipment from %s to %s", apperrors.ErrInvalidTransition, from, to)
	}
	if rule.requireAssignee && (in.AssigneeID == nil || *in.AssigneeID == "") {
		return fmt.Errorf("%w: %s to %s requires an assignee", apperrors.ErrInvalidTransition, from, to)
	}
	if rule.requireDeliveredAt && (in.DeliveredAt == nil || in.DeliveredAt.IsZero()) {
		return fmt.Errorf("%w: %s to %s requires a delivery timestamp", apperrors.ErrInvalidTransition, from, to)
	}
	return nil
}

// ApplyTransition validates and mutates s in place. The caller persists the
// shipment and the returned history record in the same transaction.
func (s *Shipment) ApplyTransition(to ShipmentStatus, in TransitionInput, actorID, note, historyID string, now time.Time) (StatusHistoryRecord, error) {
	if err := ValidateTransition(s.Status, to, in); err != nil {
		return StatusHistoryRecord{}, err
	}
	switch to {
	case StatusAssigned:
		assignee := *in.AssigneeID
		s.AssigneeID = &assignee
	case StatusDelivered:
		at := in.DeliveredAt.UTC()
		s.DeliveredAt = &at
	}
	s.Status = to
	s.LastUpdatedAt = now
	s.LastUpdatedBy = actorID
	return StatusHistoryRecord{
		HistoryID:  historyID,
		ShipmentID: s.ShipmentID,
		Status:     to,
		Note:       note,
		ChangedBy:  actorID,
		ChangedAt:  now,
	}, nil
}
