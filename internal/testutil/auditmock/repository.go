package auditmock

import (
	"context"

	domain "vnv-money-backend/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo collects appended entries so tests can assert on the trail.
type Repo struct {
	Entries  []domain.Entry
	AppendFn func(ctx context.Context, e *domain.Entry) error
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.Entries = append(m.Entries, *e)
	return nil
}

func (m *Repo) List(ctx context.Context, limit int) ([]domain.Entry, error) {
	out := make([]domain.Entry, 0, len(m.Entries))
	for i := len(m.Entries) - 1; i >= 0; i-- {
		out = append(out, m.Entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Repo) DeleteAll(ctx context.Context) error {
	m.Entries = nil
	return nil
}
