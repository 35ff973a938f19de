package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"fleetcli/internal/api"
	"fleetcli/internal/models"
)

// VehicleService maps vehicle CRUD onto the REST surface.
type VehicleService struct {
	gw *api.Gateway
}

func NewVehicleService(gw *api.Gateway) *VehicleService {
	return &VehicleService{gw: gw}
}

func (s *VehicleService) List(ctx context.Context, sort models.SortSpec) ([]models.Vehicle, error) {
	var out []models.Vehicle
	if err := s.gw.Do(ctx, http.MethodGet, "/api/vehicles", sort.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *VehicleService) Get(ctx context.Context, id int64) (models.Vehicle, error) {
	var out models.Vehicle
	err := s.gw.Do(ctx, http.MethodGet, fmt.Sprintf("/api/vehicles/%d", id), nil, nil, &out)
	return out, err
}

func (s *VehicleService) Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	var out models.Vehicle
	err := s.gw.Do(ctx, http.MethodPost, "/api/vehicles", nil, v, &out)
	return out, err
}

func (s *VehicleService) Update(ctx context.Context, id int64, v models.Vehicle) (models.Vehicle, error) {
	var out models.Vehicle
	err := s.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/api/vehicles/%d", id), nil, v, &out)
	return out, err
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	return s.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/vehicles/%d", id), nil, nil, nil)
}

// Unassigned lists vehicles without a driver.
func (s *VehicleService) Unassigned(ctx context.Context) ([]models.Vehicle, error) {
	var out []models.Vehicle
	if err := s.gw.Do(ctx, http.MethodGet, "/api/vehicles/unassigned", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LeaseEndingSoon lists vehicles whose lease ends within the given number of
// days.
func (s *VehicleService) LeaseEndingSoon(ctx context.Context, days int) ([]models.Vehicle, error) {
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	var out []models.Vehicle
	if err := s.gw.Do(ctx, http.MethodGet, "/api/vehicles/lease-ending-soon", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
