package service

import (
	"log/slog"
	"time"

	"stockflow-api/internal/metrics"
	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"

	"github.com/google/uuid"
)

// Event is pushed to live subscribers after a mutation commits.
type Event struct {
	Type     string    `json:"type"`
	Action   string    `json:"action"`
	Module   string    `json:"module"`
	Message  string    `json:"message"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	At       time.Time `json:"at"`
}

// EventStateChanged tells clients to refetch.
const EventStateChanged = "state_changed"

// Notifier receives committed changes. Publish must not block.
type Notifier interface {
	Publish(event Event)
}

// Dependencies bundles the repositories and collaborators shared by every
// service. Zero-valued collaborators fall back to no-ops or real defaults.
type Dependencies struct {
	DB           *repository.MemDB
	Products     repository.ProductRepository
	Transactions repository.TransactionRepository
	Logs         repository.LogRepository
	Users        repository.UserRepository
	Roles        repository.RoleRepository
	Designations repository.DesignationRepository
	Preferences  repository.PreferenceRepository

	Notifier Notifier
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Clock    func() time.Time
	NewID    func() string
}

// NewDependencies wires the in-memory repositories around db.
func NewDependencies(db *repository.MemDB) Dependencies {
	return Dependencies{
		DB:           db,
		Products:     repository.NewProductRepo(db),
		Transactions: repository.NewTransactionRepo(db),
		Logs:         repository.NewLogRepo(db),
		Users:        repository.NewUserRepo(db),
		Roles:        repository.NewRoleRepo(db),
		Designations: repository.NewDesignationRepo(db),
		Preferences:  repository.NewMemoryPreferenceRepo(),
	}
}

type base struct {
	Dependencies
}

func newBase(deps Dependencies) base {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return uuid.NewString() }
	}
	return base{deps}
}

// authorize is the single gate in front of every mutation.
func (b *base) authorize(actor *model.User, capability model.Capability) error {
	if actor.HasPermission(capability) {
		return nil
	}
	b.Metrics.PermissionDenied(string(capability))
	b.Logger.Warn("permission denied", "capability", capability, "user_id", actorID(actor))
	return ErrPermissionDenied
}

func (b *base) authorizeAny(actor *model.User, capabilities ...model.Capability) error {
	for _, c := range capabilities {
		if actor.HasPermission(c) {
			return nil
		}
	}
	if len(capabilities) > 0 {
		b.Metrics.PermissionDenied(string(capabilities[0]))
	}
	b.Logger.Warn("permission denied", "capabilities", capabilities, "user_id", actorID(actor))
	return ErrPermissionDenied
}

// audit appends one entry inside the running mutation and returns it so the
// caller can announce it after commit.
func (b *base) audit(tx *repository.Dataset, actor *model.User, action, details, module string) model.LogEntry {
	entry := model.LogEntry{
		ID:        b.NewID(),
		Action:    action,
		Details:   details,
		Module:    module,
		Timestamp: b.Clock(),
	}
	if actor != nil {
		entry.UserID = actor.ID
		entry.UserName = actor.Name
	}
	b.Logs.Append(tx, entry)
	return entry
}

// committed records metrics and notifies subscribers once a mutation is visible.
func (b *base) committed(entry model.LogEntry) {
	b.Metrics.AuditAppended(entry.Module)
	b.refreshStockGauge()
	b.Logger.Info("audit", "action", entry.Action, "module", entry.Module, "user", entry.UserName, "details", entry.Details)
	if b.Notifier == nil {
		return
	}
	b.Notifier.Publish(Event{
		Type:     EventStateChanged,
		Action:   entry.Action,
		Module:   entry.Module,
		Message:  entry.Details,
		UserID:   entry.UserID,
		UserName: entry.UserName,
		At:       entry.Timestamp,
	})
}

func (b *base) refreshStockGauge() {
	if b.Metrics == nil {
		return
	}
	total := 0
	for _, p := range b.Products.FindAll() {
		total += p.Quantity
	}
	b.Metrics.SetStockUnits(total)
}

func actorID(actor *model.User) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}

// ResolveView returns the requested view when the user may open it and the
// dashboard otherwise.
func ResolveView(user *model.User, view model.View) model.View {
	capability, ok := view.RequiredCapability()
	if !ok || !user.HasPermission(capability) {
		return model.ViewDashboard
	}
	return view
}
