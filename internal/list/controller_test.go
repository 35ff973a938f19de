package list

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/internal/logging"
	"fleetcli/internal/models"
)

// fakeVehicleClient serves from an in-memory slice and honors the sort key
// "brand" only, which is enough to observe server-side ordering.
type fakeVehicleClient struct {
	vehicles  []models.Vehicle
	listCalls int
	listErr   error
	deleteErr error
	lastSort  models.SortSpec
}

func (f *fakeVehicleClient) List(_ context.Context, sort models.SortSpec) ([]models.Vehicle, error) {
	f.listCalls++
	f.lastSort = sort
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := append([]models.Vehicle(nil), f.vehicles...)
	if sort.Key == "brand" {
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				less := out[j].Brand < out[i].Brand
				if sort.Direction == models.Desc {
					less = out[j].Brand > out[i].Brand
				}
				if less {
					out[i], out[j] = out[j], out[i]
				}
			}
		}
	}
	return out, nil
}

func (f *fakeVehicleClient) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, v := range f.vehicles {
		if v.ID == id {
			f.vehicles = append(f.vehicles[:i], f.vehicles[i+1:]...)
			return nil
		}
	}
	return errors.New("no such vehicle")
}

func fleet() []models.Vehicle {
	return []models.Vehicle{
		{ID: 1, LicensePlate: "B-AA 1", Brand: "VW", Model: "Golf"},
		{ID: 2, LicensePlate: "B-BB 2", Brand: "Audi", Model: "A4"},
		{ID: 3, LicensePlate: "B-CC 3", Brand: "BMW", Model: "i3"},
	}
}

func newVehicleController(client *fakeVehicleClient) *Controller[models.Vehicle] {
	return NewController[models.Vehicle](client, models.SortSpec{}, logging.NewNopLogger())
}

func TestController_ReloadReplacesSnapshot(t *testing.T) {
	client := &fakeVehicleClient{vehicles: fleet()}
	c := newVehicleController(client)

	require.NoError(t, c.Reload(context.Background()))
	assert.Len(t, c.Items(), 3)
	assert.False(t, c.Loading())
}

func TestController_SortToggleAndServerOrder(t *testing.T) {
	client := &fakeVehicleClient{vehicles: fleet()}
	c := newVehicleController(client)
	ctx := context.Background()

	c.SortBy("brand")
	require.NoError(t, c.Reload(ctx))
	assert.Equal(t, models.SortSpec{Key: "brand", Direction: models.Asc}, client.lastSort)
	// Displayed order is exactly the server's response order.
	assert.Equal(t, "Audi", c.Items()[0].Brand)
	assert.Equal(t, "VW", c.Items()[2].Brand)

	c.SortBy("brand")
	require.NoError(t, c.Reload(ctx))
	assert.Equal(t, models.Desc, client.lastSort.Direction)
	assert.Equal(t, "VW", c.Items()[0].Brand)
}

func TestController_FetchFailureYieldsEmptyList(t *testing.T) {
	client := &fakeVehicleClient{vehicles: fleet()}
	c := newVehicleController(client)
	ctx := context.Background()

	require.NoError(t, c.Reload(ctx))
	require.Len(t, c.Items(), 3)

	client.listErr = errors.New("boom")
	err := c.Reload(ctx)
	assert.Error(t, err)
	assert.Empty(t, c.Items())
	assert.False(t, c.Loading())
}

func TestController_StaleResponseIsDiscarded(t *testing.T) {
	client := &fakeVehicleClient{vehicles: fleet()}
	c := newVehicleController(client)
	ctx := context.Background()

	// First load goes out, then a second one supersedes it before the first
	// response lands.
	gen1, sort1 := c.BeginLoad()
	gen2, sort2 := c.BeginLoad()

	fresh, err := c.Fetch(ctx, sort2)
	require.NoError(t, err)
	require.True(t, c.FinishLoad(gen2, fresh, nil))
	require.Len(t, c.Items(), 3)

	stale, err := c.Fetch(ctx, sort1)
	require.NoError(t, err)
	assert.False(t, c.FinishLoad(gen1, stale[:1], nil), "older generation must be discarded")
	assert.Len(t, c.Items(), 3)
}

func TestController_DeleteAndReload(t *testing.T) {
	client := &fakeVehicleClient{vehicles: fleet()}
	c := newVehicleController(client)
	ctx := context.Background()

	require.NoError(t, c.Reload(ctx))
	callsBefore := client.listCalls

	require.NoError(t, c.DeleteAndReload(ctx, 2))

	// The list reflects a full reload, not a local patch.
	assert.Equal(t, callsBefore+1, client.listCalls)
	require.Len(t, c.Items(), 2)
	for _, v := range c.Items() {
		assert.NotEqual(t, int64(2), v.ID)
	}
}

func TestController_FailedDeleteLeavesStateUntouched(t *testing.T) {
	client := &fakeVehicleClient{vehicles: fleet()}
	c := newVehicleController(client)
	ctx := context.Background()

	require.NoError(t, c.Reload(ctx))
	callsBefore := client.listCalls

	client.deleteErr = errors.New("denied")
	err := c.DeleteAndReload(ctx, 1)
	assert.Error(t, err)
	assert.Equal(t, callsBefore, client.listCalls, "no reload after a failed mutation")
	assert.Len(t, c.Items(), 3)
}

func TestController_VehiclesHaveNoStatusCapability(t *testing.T) {
	c := newVehicleController(&fakeVehicleClient{vehicles: fleet()})

	assert.False(t, c.SupportsStatus())
	err := c.SetCompleted(context.Background(), 1, true)
	assert.ErrorIs(t, err, ErrNoStatusSupport)
}

// fakeReminderClient adds the status capability.
type fakeReminderClient struct {
	reminders []models.Reminder
	listCalls int
	statusErr error
}

func (f *fakeReminderClient) List(context.Context, models.SortSpec) ([]models.Reminder, error) {
	f.listCalls++
	return append([]models.Reminder(nil), f.reminders...), nil
}

func (f *fakeReminderClient) Delete(_ context.Context, id int64) error {
	for i, r := range f.reminders {
		if r.ID == id {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return nil
		}
	}
	return errors.New("no such reminder")
}

func (f *fakeReminderClient) setStatus(id int64, status models.ReminderStatus) (models.Reminder, error) {
	if f.statusErr != nil {
		return models.Reminder{}, f.statusErr
	}
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			f.reminders[i].Status = status
			return f.reminders[i], nil
		}
	}
	return models.Reminder{}, errors.New("no such reminder")
}

func (f *fakeReminderClient) Complete(_ context.Context, id int64) (models.Reminder, error) {
	return f.setStatus(id, models.StatusCompleted)
}

func (f *fakeReminderClient) MarkPending(_ context.Context, id int64) (models.Reminder, error) {
	return f.setStatus(id, models.StatusPending)
}

func TestController_ReminderStatusToggleReloads(t *testing.T) {
	due, _ := models.ParseDate("2026-06-01")
	client := &fakeReminderClient{reminders: []models.Reminder{
		{ID: 1, Title: "TÜV", DueDate: due, Type: models.ReminderTUV, Status: models.StatusPending},
	}}
	c := NewController[models.Reminder](client, models.SortSpec{Key: "dueDate", Direction: models.Asc}, logging.NewNopLogger())
	ctx := context.Background()

	require.True(t, c.SupportsStatus())
	require.NoError(t, c.Reload(ctx))
	callsBefore := client.listCalls

	require.NoError(t, c.SetCompletedAndReload(ctx, 1, true))
	assert.Equal(t, callsBefore+1, client.listCalls)
	assert.Equal(t, models.StatusCompleted, c.Items()[0].Status)

	require.NoError(t, c.SetCompletedAndReload(ctx, 1, false))
	assert.Equal(t, models.StatusPending, c.Items()[0].Status)
}

func TestController_FailedStatusChangeDoesNotReload(t *testing.T) {
	due, _ := models.ParseDate("2026-06-01")
	client := &fakeReminderClient{
		reminders: []models.Reminder{{ID: 1, Title: "TÜV", DueDate: due, Status: models.StatusPending}},
		statusErr: errors.New("denied"),
	}
	c := NewController[models.Reminder](client, models.SortSpec{}, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, c.Reload(ctx))
	callsBefore := client.listCalls

	assert.Error(t, c.SetCompletedAndReload(ctx, 1, true))
	assert.Equal(t, callsBefore, client.listCalls)
	assert.Equal(t, models.StatusPending, c.Items()[0].Status)
}
