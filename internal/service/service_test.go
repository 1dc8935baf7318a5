package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/epicbeats/internal/db"
	"github.com/Skotchmaster/epicbeats/internal/domain"
	"github.com/Skotchmaster/epicbeats/internal/events"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

type published struct {
	Topic string
	Key   string
	Event events.Event
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{Topic: topic, Key: key, Event: event.(events.Event)})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, s := range p.sent {
		out = append(out, s.Event.Type)
	}
	return out
}

type fakeIndex struct {
	docs      map[uint]domain.Instrumental
	err       error
	lastQuery string
	lastFrom  int
	lastSize  int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[uint]domain.Instrumental{}}
}

func (f *fakeIndex) Put(_ context.Context, item domain.Instrumental) error {
	if f.err != nil {
		return f.err
	}
	f.docs[item.ID] = item
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, from, size int) (int64, []domain.Instrumental, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	f.lastQuery, f.lastFrom, f.lastSize = q, from, size
	out := make([]domain.Instrumental, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return int64(len(out)), out, nil
}

var errBroker = errors.New("broker down")
