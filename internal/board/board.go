// Package board applies drag-and-drop status transitions and groups the
// record set into kanban columns. Any status may move to any other; the
// derived progressStage always comes from the fixed lookup table.
package board

import (
	"context"
	"fmt"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/query"
)

// Recorder is the slice of the record store a transition needs. The
// check-and-set PutIf keeps a drag from clobbering a concurrent edit.
type Recorder interface {
	Get(ctx context.Context, id string) (domain.Application, error)
	PutIf(ctx context.Context, app domain.Application, expectedUpdatedAt string) (domain.Application, error)
}

type Handler struct {
	Store Recorder
}

// TransitionResult reports a move. From is always the pre-transition
// status: on failure it is the single source of truth for the UI's
// rollback.
type TransitionResult struct {
	ID        string               `json:"id"`
	From      domain.Status        `json:"from"`
	To        domain.Status        `json:"to"`
	Stage     domain.ProgressStage `json:"progressStage"`
	UpdatedAt string               `json:"updatedAt"`
	Moved     bool                 `json:"moved"`
}

// Move transitions one record to target. Read-merge-write: only status,
// progressStage and updatedAt change; every other field is carried from
// the freshly read record. A drop on the origin column is a no-op.
func (h Handler) Move(ctx context.Context, id string, target domain.Status) (TransitionResult, error) {
	if !target.Valid() {
		return TransitionResult{ID: id}, fmt.Errorf("move: %w: status %q", domain.ErrInvalid, target)
	}

	origin, err := h.Store.Get(ctx, id)
	if err != nil {
		return TransitionResult{ID: id}, fmt.Errorf("move %s: %w", id, err)
	}

	res := TransitionResult{
		ID:        id,
		From:      origin.Status,
		To:        target,
		Stage:     domain.StageForStatus(target),
		UpdatedAt: origin.UpdatedAt,
	}

	if origin.Status == target {
		return res, nil
	}

	next := origin
	next.Status = target
	next.ProgressStage = domain.StageForStatus(target)

	saved, err := h.Store.PutIf(ctx, next, origin.UpdatedAt)
	if err != nil {
		// Nothing partial persisted; res.From tells the caller where the
		// card goes back.
		return res, fmt.Errorf("move %s to %s: %w", id, target, err)
	}

	res.UpdatedAt = saved.UpdatedAt
	res.Moved = true
	return res, nil
}

// Column is one board lane.
type Column struct {
	Status domain.Status        `json:"status"`
	Stage  domain.ProgressStage `json:"progressStage"`
	Count  int                  `json:"count"`
	Cards  []domain.Application `json:"cards"`
}

// Columns groups records into the six lanes in board order, cards newest
// first within a lane.
func Columns(records []domain.Application) []Column {
	byStatus := make(map[domain.Status][]domain.Application, len(domain.Statuses))
	for _, a := range records {
		byStatus[a.Status] = append(byStatus[a.Status], a)
	}

	out := make([]Column, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		cards := query.Sort(byStatus[s], query.SortByDate, query.Desc)
		out = append(out, Column{
			Status: s,
			Stage:  domain.StageForStatus(s),
			Count:  len(cards),
			Cards:  cards,
		})
	}
	return out
}
