package store

import (
	"context"
	"sync"

	"clinic-console-api/internal/model"
)

// Memory is the in-process appointment collection. Its lifetime is the
// lifetime of the value; nothing survives a restart.
type Memory struct {
	mu    sync.Mutex
	items []model.Appointment
}

func NewMemory(seed []model.Appointment) *Memory {
	items := make([]model.Appointment, len(seed))
	copy(items, seed)
	return &Memory{items: items}
}

func (m *Memory) List(ctx context.Context) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Appointment, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory) Get(ctx context.Context, id int) (model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return model.Appointment{}, ErrNotFound
	}
	return m.items[i], nil
}

func (m *Memory) Create(ctx context.Context, f model.AppointmentFields) (model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := f.WithID(nextID(m.items))
	m.items = append(m.items, a)
	return a, nil
}

func (m *Memory) Update(ctx context.Context, id int, p model.AppointmentPatch) (model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return model.Appointment{}, ErrNotFound
	}
	a := p.Apply(m.items[i])
	a.ID = id
	m.items[i] = a
	return a, nil
}

func (m *Memory) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *Memory) index(id int) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}
