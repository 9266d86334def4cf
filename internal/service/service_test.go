package service

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"stockflow-api/internal/metrics"
	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Publish(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

type fixture struct {
	deps     Dependencies
	notifier *recordingNotifier
}

func newFixture(t *testing.T, demo bool) *fixture {
	t.Helper()
	db := repository.NewMemDB(repository.SeedDataset(demo, fixedNow))
	deps := NewDependencies(db)

	seq := 0
	deps.NewID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	deps.Clock = func() time.Time { return fixedNow }
	deps.Metrics = metrics.New()
	deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	notifier := &recordingNotifier{}
	deps.Notifier = notifier
	return &fixture{deps: deps, notifier: notifier}
}

func (f *fixture) user(t *testing.T, id string) *model.User {
	t.Helper()
	u, err := f.deps.Users.FindByID(id)
	require.NoError(t, err)
	return u
}

func (f *fixture) admin(t *testing.T) *model.User   { return f.user(t, "u1") }
func (f *fixture) manager(t *testing.T) *model.User { return f.user(t, "u2") }
func (f *fixture) staff(t *testing.T) *model.User   { return f.user(t, "u3") }

func (f *fixture) product(t *testing.T, id string) model.Product {
	t.Helper()
	p, err := f.deps.Products.FindByID(id)
	require.NoError(t, err)
	return *p
}

func (f *fixture) logs() []model.LogEntry {
	return f.deps.Logs.FindAll()
}

func TestResolveView(t *testing.T) {
	staff := &model.User{ID: "s", Permissions: model.StaffPermissions}
	admin := &model.User{ID: "a", Permissions: model.AdminPermissions}

	tests := []struct {
		name string
		user *model.User
		view model.View
		want model.View
	}{
		{"staff inward allowed", staff, model.ViewInward, model.ViewInward},
		{"staff settings falls back", staff, model.ViewSettings, model.ViewDashboard},
		{"staff reports falls back", staff, model.ViewReports, model.ViewDashboard},
		{"staff ai assistant falls back", staff, model.ViewAIAssistant, model.ViewDashboard},
		{"staff sync falls back", staff, model.ViewSync, model.ViewDashboard},
		{"admin settings allowed", admin, model.ViewSettings, model.ViewSettings},
		{"unknown view", admin, model.View("NOPE"), model.ViewDashboard},
		{"nil user", nil, model.ViewInventory, model.ViewDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveView(tt.user, tt.view))
		})
	}
}

func TestAuthorizeDeniesWithoutSideEffects(t *testing.T) {
	f := newFixture(t, true)
	svc := NewInventoryService(f.deps)
	before := len(f.logs())

	err := svc.DeleteProduct(f.staff(t), "1")
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateProduct(nil, &model.Product{Name: "Ghost"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	assert.Len(t, f.logs(), before)
	assert.Len(t, f.deps.Products.FindAll(), 4)
	assert.Empty(t, f.notifier.Events())
}
