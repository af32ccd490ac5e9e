package listing

import (
	"context"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

// Dropper is notified when a record has been deleted remotely.
type Dropper interface {
	Drop(publicID string)
}

// DeleteOutcome tells the caller what to do after a delete request.
type DeleteOutcome int

const (
	// DeleteIgnored: another delete was already in flight.
	DeleteIgnored DeleteOutcome = iota
	// DeleteFailed: the record is intact and the detail view stays open.
	DeleteFailed
	// DeleteNavigateBack: the record is gone; return to the list.
	DeleteNavigateBack
)

// DetailState is the detail screen for one record handed over by the list.
type DetailState struct {
	record     urlinfo.Record
	collection Collection
	owner      Dropper
	deleting   bool
	lastErr    error
}

func NewDetailState(record urlinfo.Record, collection Collection, owner Dropper) *DetailState {
	return &DetailState{record: record, collection: collection, owner: owner}
}

func (d *DetailState) Record() urlinfo.Record {
	return d.record
}

func (d *DetailState) Deleting() bool {
	return d.deleting
}

func (d *DetailState) LastError() error {
	return d.lastErr
}

// RequestDelete removes the record remotely. Calls made while a delete is in
// flight are ignored.
func (d *DetailState) RequestDelete(ctx context.Context) (DeleteOutcome, error) {
	if !d.BeginDelete() {
		return DeleteIgnored, nil
	}
	err := d.collection.Remove(ctx, d.record.PublicID)
	return d.CompleteDelete(err), err
}

// BeginDelete marks the delete as sent. It returns false when one is already in flight.
func (d *DetailState) BeginDelete() bool {
	if d.deleting {
		return false
	}
	d.deleting = true
	d.lastErr = nil
	return true
}

// CompleteDelete applies the response of a delete started with BeginDelete.
func (d *DetailState) CompleteDelete(err error) DeleteOutcome {
	d.deleting = false
	if err != nil {
		d.lastErr = err
		return DeleteFailed
	}
	if d.owner != nil {
		d.owner.Drop(d.record.PublicID)
	}
	return DeleteNavigateBack
}
