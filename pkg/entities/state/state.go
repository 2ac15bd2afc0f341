package state

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/diwise/entity-registry/pkg/entities/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// ErrLoadFailed is the message that is presented to users when a read fails
const ErrLoadFailed string = "Failed to load entities"

type DateFilter struct {
	From string
	To   string
}

// State is a snapshot of everything the manager owns. Slices in a snapshot
// are copies and may be modified by the receiver.
type State struct {
	Entities          []entities.Entity
	SelectedTypes     []string
	SelectedEyeColors []string
	DateFilter        DateFilter
	Loading           bool
	Error             string
}

type Listener func(State)

// Manager keeps the client side view of an entity registry in memory and
// reloads it whenever one of the filter selections change.
type Manager struct {
	client  client.EntityRegistryClient
	enums   entities.Enumerations
	timeout time.Duration
	now     func() time.Time

	mu         sync.Mutex
	state      State
	inFlight   int
	latestRead uint64

	subscribers  map[int]Listener
	nextListener int
}

func WithEnumerations(enums entities.Enumerations) func(*Manager) {
	return func(m *Manager) {
		m.enums = enums
	}
}

// WithTimeout bounds every request issued by the manager. Zero means no timeout.
func WithTimeout(timeout time.Duration) func(*Manager) {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

func WithClock(now func() time.Time) func(*Manager) {
	return func(m *Manager) {
		m.now = now
	}
}

func New(c client.EntityRegistryClient, options ...func(*Manager)) *Manager {
	m := &Manager{
		client:      c,
		enums:       entities.DefaultEnumerations(),
		now:         time.Now,
		subscribers: map[int]Listener{},
	}

	for _, option := range options {
		option(m)
	}

	m.state = State{
		Entities:          []entities.Entity{},
		SelectedTypes:     slices.Clone(m.enums.Types),
		SelectedEyeColors: slices.Clone(m.enums.EyeColors),
	}

	return m
}

// Start performs the initial load of entities
func (m *Manager) Start(ctx context.Context) error {
	return m.LoadEntities(ctx)
}

// Subscribe registers a listener that is called with a fresh snapshot after
// every state change. The returned function removes the listener.
func (m *Manager) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextListener
	m.nextListener++
	m.subscribers[id] = l

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// update applies fn to the state and notifies subscribers outside of the lock
func (m *Manager) update(fn func(s *State)) {
	m.mu.Lock()
	fn(&m.state)
	snapshot := m.snapshot()
	listeners := make([]Listener, 0, len(m.subscribers))
	for _, l := range m.subscribers {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func (m *Manager) snapshot() State {
	return State{
		Entities:          slices.Clone(m.state.Entities),
		SelectedTypes:     slices.Clone(m.state.SelectedTypes),
		SelectedEyeColors: slices.Clone(m.state.SelectedEyeColors),
		DateFilter:        m.state.DateFilter,
		Loading:           m.state.Loading,
		Error:             m.state.Error,
	}
}

// begin marks a request as in flight and clears the last error. Must be called with the lock held.
func (m *Manager) begin(s *State) {
	m.inFlight++
	s.Loading = true
	s.Error = ""
}

// end marks a request as done. Must be called with the lock held.
func (m *Manager) end(s *State) {
	m.inFlight--
	s.Loading = m.inFlight > 0
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout > 0 {
		return context.WithTimeout(ctx, m.timeout)
	}
	return context.WithCancel(ctx)
}

// LoadEntities reads entities with the current filters. Only the most recently
// issued read may replace the entities. On failure the previous entities are kept.
func (m *Manager) LoadEntities(ctx context.Context) error {
	var seq uint64
	var filters entities.Filters

	m.update(func(s *State) {
		m.begin(s)
		m.latestRead++
		seq = m.latestRead
		filters = buildFilters(*s, m.enums)
	})

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var f *entities.Filters
	if !filters.IsEmpty() {
		f = &filters
	}

	result, err := m.client.QueryEntities(ctx, f)

	m.update(func(s *State) {
		m.end(s)

		if seq != m.latestRead {
			return
		}

		if err != nil {
			s.Error = ErrLoadFailed
			return
		}

		s.Entities = result
	})

	if err != nil {
		logging.GetFromContext(ctx).Error("failed to load entities", "err", err.Error())
	}

	return err
}

func (m *Manager) SetTypeFilters(ctx context.Context, types []string) error {
	m.update(func(s *State) {
		s.SelectedTypes = known(types, m.enums.Types)
	})
	return m.LoadEntities(ctx)
}

func (m *Manager) ToggleType(ctx context.Context, entityType string) error {
	return m.SetTypeFilters(ctx, toggle(m.State().SelectedTypes, entityType, m.enums.Types))
}

func (m *Manager) SetAllTypes(ctx context.Context, selected bool) error {
	if selected {
		return m.SetTypeFilters(ctx, m.enums.Types)
	}
	return m.SetTypeFilters(ctx, []string{})
}

func (m *Manager) SetEyeColorFilters(ctx context.Context, colors []string) error {
	m.update(func(s *State) {
		s.SelectedEyeColors = known(colors, m.enums.EyeColors)
	})
	return m.LoadEntities(ctx)
}

func (m *Manager) ToggleEyeColor(ctx context.Context, color string) error {
	return m.SetEyeColorFilters(ctx, toggle(m.State().SelectedEyeColors, color, m.enums.EyeColors))
}

func (m *Manager) SetAllEyeColors(ctx context.Context, selected bool) error {
	if selected {
		return m.SetEyeColorFilters(ctx, m.enums.EyeColors)
	}
	return m.SetEyeColorFilters(ctx, []string{})
}

func (m *Manager) SetDateFilter(ctx context.Context, from, to string) error {
	m.update(func(s *State) {
		s.DateFilter = DateFilter{From: from, To: to}
	})
	return m.LoadEntities(ctx)
}

func (m *Manager) ClearDateFilter(ctx context.Context) error {
	return m.SetDateFilter(ctx, "", "")
}

// ClearAllFilters resets every selection and reloads once
func (m *Manager) ClearAllFilters(ctx context.Context) error {
	m.update(func(s *State) {
		s.SelectedTypes = slices.Clone(m.enums.Types)
		s.SelectedEyeColors = slices.Clone(m.enums.EyeColors)
		s.DateFilter = DateFilter{}
	})
	return m.LoadEntities(ctx)
}

// AddEntity validates the form before anything is sent and reloads the
// entities after a successful create.
func (m *Manager) AddEntity(ctx context.Context, data entities.FormData) (*entities.Entity, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	var e *entities.Entity
	err := m.mutate(ctx, func(ctx context.Context) (err error) {
		e, err = m.client.AddEntity(ctx, data)
		return
	})

	return e, err
}

// UpdateEntity validates the form before anything is sent and reloads the
// entities after a successful update. Updating an unknown entity returns
// entities.ErrNotFound.
func (m *Manager) UpdateEntity(ctx context.Context, id int64, data entities.FormData) (*entities.Entity, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	var e *entities.Entity
	err := m.mutate(ctx, func(ctx context.Context) (err error) {
		e, err = m.client.UpdateEntity(ctx, id, data.Fields())
		return
	})

	return e, err
}

func (m *Manager) DeleteEntity(ctx context.Context, id int64) (entities.DeleteResult, error) {
	var result *entities.DeleteResult
	err := m.mutate(ctx, func(ctx context.Context) (err error) {
		result, err = m.client.DeleteEntity(ctx, id)
		return
	})

	if err != nil {
		return entities.DeleteResult{}, err
	}

	return *result, nil
}

func (m *Manager) mutate(ctx context.Context, call func(context.Context) error) error {
	m.update(m.begin)

	reqCtx, cancel := m.withTimeout(ctx)
	err := call(reqCtx)
	cancel()

	m.update(m.end)

	if err != nil {
		if !errors.Is(err, entities.ErrNotFound) {
			logging.GetFromContext(ctx).Error("entity mutation failed", "err", err.Error())
		}
		return err
	}

	// a failed reload is reported through the error state, the mutation itself succeeded
	m.LoadEntities(ctx)

	return nil
}

// CurrentFilters returns the filters that the next read will be sent with
func (m *Manager) CurrentFilters() entities.Filters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return buildFilters(m.state, m.enums)
}

func (m *Manager) IsAllTypesSelected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.SelectedTypes) == len(m.enums.Types)
}

func (m *Manager) IsAllEyeColorsSelected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.SelectedEyeColors) == len(m.enums.EyeColors)
}

func (m *Manager) HasActiveFilters() bool {
	return !m.CurrentFilters().IsEmpty()
}

func (m *Manager) GetEntityByID(id int64) (entities.Entity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.state.Entities {
		if e.ID == id {
			return e, true
		}
	}

	return entities.Entity{}, false
}

func (m *Manager) CreateEmptyEntity() entities.FormData {
	return entities.FormData{}
}

func (m *Manager) EntityToFormData(e entities.Entity) entities.FormData {
	return entities.ToFormData(e)
}

// Today returns the latest selectable date of birth
func (m *Manager) Today() string {
	return m.now().Format("2006-01-02")
}

// buildFilters omits a selection dimension when nothing or everything is selected
func buildFilters(s State, enums entities.Enumerations) entities.Filters {
	f := entities.Filters{}

	if len(s.SelectedTypes) > 0 && len(s.SelectedTypes) < len(enums.Types) {
		f.Types = slices.Clone(s.SelectedTypes)
	}

	if len(s.SelectedEyeColors) > 0 && len(s.SelectedEyeColors) < len(enums.EyeColors) {
		f.EyeColors = slices.Clone(s.SelectedEyeColors)
	}

	f.DateFrom = s.DateFilter.From
	f.DateTo = s.DateFilter.To

	return f
}

func toggle(selected []string, value string, allowed []string) []string {
	if !slices.Contains(allowed, value) {
		return slices.Clone(selected)
	}

	if i := slices.Index(selected, value); i >= 0 {
		return slices.Delete(slices.Clone(selected), i, i+1)
	}
	return append(slices.Clone(selected), value)
}

// known keeps the values that are part of allowed, without duplicates, so
// that a selection never grows past the enumeration it is compared against
func known(values []string, allowed []string) []string {
	result := make([]string, 0, len(values))

	for _, v := range values {
		if slices.Contains(allowed, v) && !slices.Contains(result, v) {
			result = append(result, v)
		}
	}

	return result
}
