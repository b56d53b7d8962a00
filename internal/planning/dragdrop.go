package planning

import (
	"time"

	"chantier-planning/internal/models"
)

// MutationIntent is the minimal delta computed from a completed drop, handed
// to the update endpoint. NewEntityID is empty when the row did not change;
// Axis tells the store which attribute the entity change applies to.
type MutationIntent struct {
	AffectationID int64  `json:"affectation_id"`
	NewDate       string `json:"new_date"`
	NewEntityID   string `json:"new_entity_id,omitempty"`
	Axis          string `json:"axis,omitempty"`
}

type hoverTarget struct {
	entityID string
	dateKey  string
}

// Reassigner tracks the transient drag state of one grid instance:
// Idle -> Dragging -> Idle. At most one affectation is dragged at a time;
// illegal transitions are silent no-ops since they only arise from doubled
// UI events.
type Reassigner struct {
	key      KeyFunc
	dragging *models.Affectation
	hover    *hoverTarget
}

// NewReassigner creates a reassigner for a grid pivoted by the given row key.
func NewReassigner(key KeyFunc) *Reassigner {
	if key == nil {
		key = ByOwner
	}
	return &Reassigner{key: key}
}

// StartDrag begins a drag. It is rejected when a drag is already active: the
// in-flight drag keeps its affectation, the second gesture is dropped.
func (r *Reassigner) StartDrag(a *models.Affectation) bool {
	if r.dragging != nil || a == nil {
		return false
	}
	r.dragging = a
	return true
}

// HoverCell records the candidate drop target, last hover wins. No-op unless
// dragging.
func (r *Reassigner) HoverCell(entityID string, date time.Time) {
	if r.dragging == nil {
		return
	}
	r.hover = &hoverTarget{entityID: entityID, dateKey: DateKey(date)}
}

// Drop completes the drag onto the target cell and returns the mutation
// intent to submit. When the target cell equals the affectation's current
// cell no intent is emitted, avoiding a spurious update call. Either way the
// reassigner returns to idle.
func (r *Reassigner) Drop(targetEntityID string, targetDate time.Time) (MutationIntent, bool) {
	if r.dragging == nil {
		return MutationIntent{}, false
	}
	a := r.dragging
	r.dragging = nil
	r.hover = nil

	sameEntity := r.key(a) == targetEntityID
	sameDate := DateKey(a.Date) == DateKey(targetDate)
	if sameEntity && sameDate {
		return MutationIntent{}, false
	}

	intent := MutationIntent{
		AffectationID: a.ID,
		NewDate:       DateKey(targetDate),
	}
	if !sameEntity {
		intent.NewEntityID = targetEntityID
	}
	return intent, true
}

// Cancel aborts the drag, discarding hover state without emitting anything.
func (r *Reassigner) Cancel() {
	r.dragging = nil
	r.hover = nil
}

// Dragging reports whether a drag is in flight.
func (r *Reassigner) Dragging() bool { return r.dragging != nil }

// Hovered returns the last hovered cell key while dragging.
func (r *Reassigner) Hovered() (entityID, dateKey string, ok bool) {
	if r.dragging == nil || r.hover == nil {
		return "", "", false
	}
	return r.hover.entityID, r.hover.dateKey, true
}
