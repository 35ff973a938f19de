// Package list implements the shared load → display → mutate → reload state
// machine behind the vehicle and reminder tables. One generic controller
// serves both entity types; the status capability is optional and only the
// reminder client provides it.
package list

import (
	"context"
	"errors"

	"fleetcli/internal/logging"
	"fleetcli/internal/models"
)

// Client is the capability set a resource client must offer to drive a list.
type Client[T any] interface {
	List(ctx context.Context, sort models.SortSpec) ([]T, error)
	Delete(ctx context.Context, id int64) error
}

// StatusClient is the optional extra capability for status transitions.
type StatusClient interface {
	Complete(ctx context.Context, id int64) (models.Reminder, error)
	MarkPending(ctx context.Context, id int64) (models.Reminder, error)
}

// ErrNoStatusSupport is returned when SetCompleted is invoked on a list whose
// client lacks the status capability.
var ErrNoStatusSupport = errors.New("list client does not support status transitions")

// Controller holds the presentation state of one list view. Mutating methods
// (SortBy, BeginLoad, FinishLoad) must be called from the single UI flow of
// control; Fetch, Delete and SetCompleted only touch immutable fields and may
// run on a worker goroutine.
//
// The displayed snapshot is always replaced whole, never patched: every
// successful mutation is followed by a reload so the list mirrors server
// state.
type Controller[T any] struct {
	client Client[T]
	log    logging.Logger

	items   []T
	sort    models.SortSpec
	loading bool
	gen     uint64
}

func NewController[T any](client Client[T], defaultSort models.SortSpec, log logging.Logger) *Controller[T] {
	return &Controller[T]{client: client, sort: defaultSort, log: log}
}

func (c *Controller[T]) Items() []T            { return c.items }
func (c *Controller[T]) Sort() models.SortSpec { return c.sort }
func (c *Controller[T]) Loading() bool         { return c.loading }

// SortBy applies the user's column click: same key toggles direction, a new
// key starts ascending. The caller follows up with a reload.
func (c *Controller[T]) SortBy(key string) {
	c.sort = c.sort.Toggle(key)
}

// BeginLoad marks the view loading and stamps a new request generation. The
// returned generation and sort snapshot belong to exactly this load and are
// handed back to FinishLoad.
func (c *Controller[T]) BeginLoad() (uint64, models.SortSpec) {
	c.gen++
	c.loading = true
	return c.gen, c.sort
}

// Fetch performs the actual request for a load started with BeginLoad. It is
// safe to call from a worker goroutine.
func (c *Controller[T]) Fetch(ctx context.Context, sort models.SortSpec) ([]T, error) {
	return c.client.List(ctx, sort)
}

// FinishLoad applies a completed fetch. Responses from superseded loads are
// discarded so a slow sort response cannot overwrite a newer reload. A failed
// fetch empties the list; the error is logged, not surfaced.
func (c *Controller[T]) FinishLoad(gen uint64, items []T, err error) bool {
	if gen != c.gen {
		c.log.Debug(context.Background(), "discarding stale list response", "gen", gen, "current", c.gen)
		return false
	}
	c.loading = false
	if err != nil {
		c.log.Error(context.Background(), "list fetch failed", "err", err)
		c.items = nil
		return true
	}
	c.items = items
	return true
}

// Reload runs a full load synchronously. The TUI splits the same steps
// across a command goroutine; tests and scripted callers use this form.
func (c *Controller[T]) Reload(ctx context.Context) error {
	gen, sort := c.BeginLoad()
	items, err := c.Fetch(ctx, sort)
	c.FinishLoad(gen, items, err)
	return err
}

// Delete issues the destructive call. Confirmation is the caller's duty;
// so is the reload after success.
func (c *Controller[T]) Delete(ctx context.Context, id int64) error {
	if err := c.client.Delete(ctx, id); err != nil {
		c.log.Error(ctx, "delete failed", "id", id, "err", err)
		return err
	}
	return nil
}

// DeleteAndReload is the full mutation contract in one call: on success the
// list is unconditionally reloaded, on failure it stays untouched.
func (c *Controller[T]) DeleteAndReload(ctx context.Context, id int64) error {
	if err := c.Delete(ctx, id); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// SetCompleted flips a reminder between COMPLETED and PENDING through the
// optional status capability. Like Delete, the caller reloads on success.
func (c *Controller[T]) SetCompleted(ctx context.Context, id int64, completed bool) error {
	sc, ok := c.client.(StatusClient)
	if !ok {
		return ErrNoStatusSupport
	}
	var err error
	if completed {
		_, err = sc.Complete(ctx, id)
	} else {
		_, err = sc.MarkPending(ctx, id)
	}
	if err != nil {
		c.log.Error(ctx, "status change failed", "id", id, "err", err)
		return err
	}
	return nil
}

// SetCompletedAndReload applies the status change and reloads on success.
func (c *Controller[T]) SetCompletedAndReload(ctx context.Context, id int64, completed bool) error {
	if err := c.SetCompleted(ctx, id, completed); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// SupportsStatus reports whether the underlying client can change status.
func (c *Controller[T]) SupportsStatus() bool {
	_, ok := c.client.(StatusClient)
	return ok
}
