// Package incomecategory owns the income category screen state and the
// operations that reconcile it with the remote API.
package incomecategory

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"fjacquet/income-categories/internal/api"
	"fjacquet/income-categories/internal/logging"
	"fjacquet/income-categories/internal/models"
	"fjacquet/income-categories/internal/notification"
	"fjacquet/income-categories/internal/validation"
)

// Notification texts.
const (
	MsgAdded    = "Income category added successfully"
	MsgUpdated  = "Income category updated successfully"
	MsgDeleted  = "Income category deleted successfully"
	MsgError    = "Error Occurred"
	MsgHasChild = "Category is associated with non zero income records. Delete that incomes first."
)

// API is the subset of the HTTP client the store depends on.
type API interface {
	ListAll(ctx context.Context) ([]models.IncomeCategory, error)
	ListPage(ctx context.Context, page, limit int, nameFilter string) (api.Page, error)
	Get(ctx context.Context, id int64) (models.IncomeCategory, error)
	Create(ctx context.Context, input models.IncomeCategoryInput) (*api.Response, error)
	Update(ctx context.Context, id int64, input models.IncomeCategoryInput) (*api.Response, error)
	Delete(ctx context.Context, ids ...int64) (*api.Response, error)
}

// Store holds the state and runs operations against the API. Each operation
// makes one request; the resulting transition is committed atomically when
// the response arrives. Overlapping calls commit in arrival order.
type Store struct {
	client   API
	notifier notification.Notifier
	format   validation.Formatter
	logger   logging.Logger

	mu           sync.Mutex
	state        State
	listeners    map[int]func(State)
	nextListener int
	pending      []State
	delivering   bool
}

// Option configures a Store.
type Option func(*Store)

// WithFormatter replaces the validation error formatter.
func WithFormatter(f validation.Formatter) Option {
	return func(s *Store) {
		if f != nil {
			s.format = f
		}
	}
}

// WithInitialState starts the store from st instead of InitialState().
func WithInitialState(st State) Option {
	return func(s *Store) {
		s.state = st.Clone()
	}
}

// WithPageLimit sets the initial page size.
func WithPageLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.state.Limit = limit
		}
	}
}

// NewStore creates a Store. A nil notifier drops notifications.
func NewStore(client API, notifier notification.Notifier, logger logging.Logger, opts ...Option) *Store {
	if notifier == nil {
		notifier = notification.NotifierFunc(func(notification.Notification) {})
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &Store{
		client:    client,
		notifier:  notifier,
		format:    validation.FormatErrors,
		logger:    logger,
		state:     InitialState(),
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe calls fn with a snapshot after every committed transition, in
// commit order. The returned function removes the listener.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// dispatch applies transition under the lock. Snapshots are queued in commit
// order and delivered by a single goroutine at a time, outside the lock, so a
// listener may call back into the store.
func (s *Store) dispatch(transition func(State) State) {
	s.mu.Lock()
	s.state = transition(s.state)
	s.pending = append(s.pending, s.state.Clone())
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	defer func() {
		s.delivering = false
		s.mu.Unlock()
	}()

	for len(s.pending) > 0 {
		snapshot := s.pending[0]
		s.pending = s.pending[1:]
		listeners := make([]func(State), 0, len(s.listeners))
		for _, fn := range s.listeners {
			listeners = append(listeners, fn)
		}

		func() {
			s.mu.Unlock()
			defer s.mu.Lock()
			for _, fn := range listeners {
				fn(snapshot.Clone())
			}
		}()
	}
}

func (s *Store) notify(msg string, typ notification.Type, d time.Duration) {
	s.notifier.Push(notification.Notification{Message: msg, Type: typ, Time: d})
}

// ResetCurrentIncomeCatData clears the form item and both error maps.
func (s *Store) ResetCurrentIncomeCatData() {
	s.dispatch(Reset)
}

// SelectForEdit marks id as the record the edit form is working on.
func (s *Store) SelectForEdit(id int64) {
	s.dispatch(func(st State) State { return SelectForEdit(st, id) })
}

// SelectForView marks id as the record being viewed.
func (s *Store) SelectForView(id int64) {
	s.dispatch(func(st State) State { return SelectForView(st, id) })
}

// FetchCategoryList returns every category for lookups. State is untouched.
func (s *Store) FetchCategoryList(ctx context.Context) ([]models.IncomeCategory, error) {
	list, err := s.client.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to fetch income category list")
		return nil, err
	}
	return list, nil
}

// FetchPage loads one page of categories matching nameFilter and records the
// server's pagination metadata when present.
func (s *Store) FetchPage(ctx context.Context, page, limit int, nameFilter string) ([]models.IncomeCategory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.State().Limit
	}

	result, err := s.client.ListPage(ctx, page, limit, nameFilter)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to fetch income categories",
			logging.F(logging.FieldPage, page),
			logging.F(logging.FieldLimit, limit),
			logging.F(logging.FieldNameFilter, nameFilter))
		return nil, err
	}

	s.dispatch(func(st State) State {
		st = SetList(st, result.Items)
		if result.Meta != nil {
			st = SetPagination(st, Pagination{
				TotalPages:  result.Meta.LastPage,
				CurrentPage: result.Meta.CurrentPage,
				Limit:       result.Meta.PerPage,
				QName:       nameFilter,
			})
		}
		return st
	})

	s.logger.Debug("Fetched income categories",
		logging.F(logging.FieldPage, page),
		logging.F(logging.FieldCount, len(result.Items)))
	return append([]models.IncomeCategory{}, result.Items...), nil
}

// FetchOne loads a single category into the form.
func (s *Store) FetchOne(ctx context.Context, id int64) (models.IncomeCategory, error) {
	item, err := s.client.Get(ctx, id)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to fetch income category", logging.F(logging.FieldCategoryID, id))
		return models.IncomeCategory{}, err
	}
	s.dispatch(func(st State) State { return SetCurrentItem(st, item) })
	return item, nil
}

// AddCategory creates a category. On a validation failure the formatted field
// errors are stored for the add form. The returned error is the client's own.
func (s *Store) AddCategory(ctx context.Context, input models.IncomeCategoryInput) error {
	_, err := s.client.Create(ctx, input)
	if err != nil {
		s.notify(MsgError, notification.Error, 2*time.Second)
		if fe, ok := s.fieldErrors(err); ok {
			s.dispatch(func(st State) State { return SetAddErrors(st, fe) })
		}
		s.logger.WithError(err).Warn("Failed to add income category",
			logging.F(logging.FieldOperation, "add"),
			logging.F(logging.FieldStatusCode, api.StatusCode(err)))
		return err
	}

	s.dispatch(Reset)
	s.notify(MsgAdded, notification.Success, 2*time.Second)
	s.logger.Info("Income category added", logging.F(logging.FieldOperation, "add"))
	return nil
}

// EditCategory updates category id. On a validation failure the formatted
// field errors are stored for the edit form.
func (s *Store) EditCategory(ctx context.Context, id int64, input models.IncomeCategoryInput) (*api.Response, error) {
	resp, err := s.client.Update(ctx, id, input)
	if err != nil {
		s.notify(MsgError, notification.Error, 0)
		if fe, ok := s.fieldErrors(err); ok {
			s.dispatch(func(st State) State { return SetEditErrors(st, fe) })
		}
		s.logger.WithError(err).Warn("Failed to edit income category",
			logging.F(logging.FieldOperation, "edit"),
			logging.F(logging.FieldCategoryID, id),
			logging.F(logging.FieldStatusCode, api.StatusCode(err)))
		return nil, err
	}

	s.dispatch(Reset)
	s.notify(MsgUpdated, notification.Success, 0)
	s.logger.Info("Income category updated",
		logging.F(logging.FieldOperation, "edit"),
		logging.F(logging.FieldCategoryID, id))
	return resp, nil
}

// DeleteCategory removes one category, or several when more than one id is
// given. When the deletion empties the displayed page the store steps back a
// page, never below the first.
func (s *Store) DeleteCategory(ctx context.Context, ids ...int64) (*api.Response, error) {
	resp, err := s.client.Delete(ctx, ids...)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrHasChild):
			s.notify(MsgHasChild, notification.Warning, 5*time.Second)
		case errors.Is(err, api.ErrNetwork):
			s.notify(MsgError, notification.Error, 2*time.Second)
		}
		s.logger.WithError(err).Warn("Failed to delete income category",
			logging.F(logging.FieldOperation, "delete"),
			logging.F(logging.FieldCategoryID, ids),
			logging.F(logging.FieldStatusCode, api.StatusCode(err)))
		return nil, err
	}

	s.dispatch(func(st State) State {
		if n := len(st.IncomeCategories); n == 1 || len(ids) == n {
			st = SetCurrentPage(st, st.CurrentPage-1)
		}
		return Reset(st)
	})
	s.notify(MsgDeleted, notification.Success, 2*time.Second)
	s.logger.Info("Income category deleted",
		logging.F(logging.FieldOperation, "delete"),
		logging.F(logging.FieldCount, len(ids)))
	return resp, nil
}

// fieldErrors extracts formatted field errors from a 422 response. Failures
// without a response never reach the formatter.
func (s *Store) fieldErrors(err error) (validation.FieldErrors, bool) {
	var re *api.ResponseError
	if !errors.As(err, &re) || re.StatusCode != http.StatusUnprocessableEntity {
		return nil, false
	}
	return s.format(re.Errors), true
}
