package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/internal/models"
)

// recordingServer answers every request with body and records method + URL.
func recordingServer(body string) (*httptest.Server, *http.Request, *[]byte) {
	var last http.Request
	var lastBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = *r
		lastBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(body))
	}))
	return srv, &last, &lastBody
}

func TestVehicleService_ListEncodesSort(t *testing.T) {
	srv, last, _ := recordingServer(`[{"id":1,"licensePlate":"B-XY 1","brand":"VW","model":"Golf"}]`)
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	svc := NewVehicleService(fx.gw)

	items, err := svc.List(context.Background(), models.SortSpec{Key: "brand", Direction: models.Desc})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "/api/vehicles", last.URL.Path)
	assert.Equal(t, "brand", last.URL.Query().Get("sortBy"))
	assert.Equal(t, "desc", last.URL.Query().Get("sortDir"))
}

func TestVehicleService_ListWithoutSortSendsNoParams(t *testing.T) {
	srv, last, _ := recordingServer(`[]`)
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	_, err := NewVehicleService(fx.gw).List(context.Background(), models.SortSpec{})
	require.NoError(t, err)
	assert.Empty(t, last.URL.RawQuery)
}

func TestVehicleService_CRUDRoutes(t *testing.T) {
	srv, last, lastBody := recordingServer(`{"id":5,"licensePlate":"B-AB 2","brand":"BMW","model":"i3"}`)
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	svc := NewVehicleService(fx.gw)
	ctx := context.Background()

	v := models.Vehicle{LicensePlate: "B-AB 2", Brand: "BMW", Model: "i3"}

	created, err := svc.Create(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/api/vehicles", last.URL.Path)

	var sent models.Vehicle
	require.NoError(t, json.Unmarshal(*lastBody, &sent))
	assert.Equal(t, v, sent)

	_, err = svc.Update(ctx, 5, v)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/api/vehicles/5", last.URL.Path)

	_, err = svc.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "/api/vehicles/5", last.URL.Path)

	require.NoError(t, svc.Delete(ctx, 5))
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Equal(t, "/api/vehicles/5", last.URL.Path)
}

func TestVehicleService_SpecialRoutes(t *testing.T) {
	srv, last, _ := recordingServer(`[]`)
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	svc := NewVehicleService(fx.gw)
	ctx := context.Background()

	_, err := svc.Unassigned(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/vehicles/unassigned", last.URL.Path)

	_, err = svc.LeaseEndingSoon(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, "/api/vehicles/lease-ending-soon", last.URL.Path)
	assert.Equal(t, "30", last.URL.Query().Get("days"))
}

func TestReminderService_StatusRoutes(t *testing.T) {
	srv, last, lastBody := recordingServer(
		`{"id":9,"vehicle":{"id":1,"licensePlate":"B-XY 1","brand":"VW","model":"Golf"},` +
			`"title":"TÜV","dueDate":"2026-09-01","type":"TUV","status":"COMPLETED"}`)
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	svc := NewReminderService(fx.gw)
	ctx := context.Background()

	done, err := svc.Complete(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/api/reminders/9/complete", last.URL.Path)

	_, err = svc.MarkPending(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "/api/reminders/9/pending", last.URL.Path)

	_, err = svc.SetStatus(ctx, 9, models.StatusOverdue)
	require.NoError(t, err)
	assert.Equal(t, "/api/reminders/9/status", last.URL.Path)
	assert.JSONEq(t, `{"status":"OVERDUE"}`, string(*lastBody))
}

func TestReminderService_CRUDRoutes(t *testing.T) {
	srv, last, lastBody := recordingServer(
		`{"id":3,"vehicle":{"id":1,"licensePlate":"B-XY 1","brand":"VW","model":"Golf"},` +
			`"title":"Inspektion","dueDate":"2026-10-01","type":"MAINTENANCE","status":"PENDING"}`)
	defer srv.Close()

	fx := newFixture(t, srv.URL)
	svc := NewReminderService(fx.gw)
	ctx := context.Background()

	due, _ := models.ParseDate("2026-10-01")
	r := models.Reminder{
		Vehicle: models.Vehicle{ID: 1, LicensePlate: "B-XY 1", Brand: "VW", Model: "Golf"},
		Title:   "Inspektion",
		DueDate: due,
		Type:    models.ReminderMaintenance,
		Status:  models.StatusPending,
	}

	created, err := svc.Create(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "/api/reminders", last.URL.Path)

	// The embedded vehicle snapshot travels by value in the payload.
	var sent models.Reminder
	require.NoError(t, json.Unmarshal(*lastBody, &sent))
	assert.Equal(t, r.Vehicle, sent.Vehicle)

	_, err = svc.Update(ctx, 3, r)
	require.NoError(t, err)
	assert.Equal(t, "/api/reminders/3", last.URL.Path)

	require.NoError(t, svc.Delete(ctx, 3))
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Equal(t, "/api/reminders/3", last.URL.Path)
}
