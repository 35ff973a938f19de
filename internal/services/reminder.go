package services

import (
	"context"
	"fmt"
	"net/http"

	"fleetcli/internal/api"
	"fleetcli/internal/models"
)

// ReminderService maps reminder CRUD and status transitions onto the REST
// surface.
type ReminderService struct {
	gw *api.Gateway
}

func NewReminderService(gw *api.Gateway) *ReminderService {
	return &ReminderService{gw: gw}
}

func (s *ReminderService) List(ctx context.Context, sort models.SortSpec) ([]models.Reminder, error) {
	var out []models.Reminder
	if err := s.gw.Do(ctx, http.MethodGet, "/api/reminders", sort.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ReminderService) Create(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	var out models.Reminder
	err := s.gw.Do(ctx, http.MethodPost, "/api/reminders", nil, r, &out)
	return out, err
}

func (s *ReminderService) Update(ctx context.Context, id int64, r models.Reminder) (models.Reminder, error) {
	var out models.Reminder
	err := s.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/api/reminders/%d", id), nil, r, &out)
	return out, err
}

func (s *ReminderService) Delete(ctx context.Context, id int64) error {
	return s.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/reminders/%d", id), nil, nil, nil)
}

// Complete marks the reminder done via the dedicated transition route.
func (s *ReminderService) Complete(ctx context.Context, id int64) (models.Reminder, error) {
	var out models.Reminder
	err := s.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/api/reminders/%d/complete", id), nil, nil, &out)
	return out, err
}

// MarkPending reopens a completed reminder.
func (s *ReminderService) MarkPending(ctx context.Context, id int64) (models.Reminder, error) {
	var out models.Reminder
	err := s.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/api/reminders/%d/pending", id), nil, nil, &out)
	return out, err
}

// SetStatus performs an arbitrary status transition through the generic
// status route. The usual toggles go through Complete/MarkPending instead.
func (s *ReminderService) SetStatus(ctx context.Context, id int64, status models.ReminderStatus) (models.Reminder, error) {
	body := struct {
		Status models.ReminderStatus `json:"status"`
	}{Status: status}

	var out models.Reminder
	err := s.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/api/reminders/%d/status", id), nil, body, &out)
	return out, err
}
