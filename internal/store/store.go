// Package store holds the backing collections the mock service reads and
// mutates. A store is built at start-up and handed to the service; nothing
// here is package-level state.
package store

import (
	"context"
	"errors"

	"clinic-console-api/internal/model"
)

var ErrNotFound = errors.New("not found")

// Appointments is the appointment collection behind the mock service.
// Create assigns max(existing ids)+1, or 1 on an empty collection.
// Update replaces the whole stored record with the merged result; there is
// no version check, so the last writer wins.
type Appointments interface {
	List(ctx context.Context) ([]model.Appointment, error)
	Get(ctx context.Context, id int) (model.Appointment, error)
	Create(ctx context.Context, f model.AppointmentFields) (model.Appointment, error)
	Update(ctx context.Context, id int, p model.AppointmentPatch) (model.Appointment, error)
	Delete(ctx context.Context, id int) error
}

func nextID(items []model.Appointment) int {
	max := 0
	for _, a := range items {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}
