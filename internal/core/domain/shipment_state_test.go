package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	driver := "driver-1"
	empty := ""
	now := time.Now()

	tests := []struct {
		name    string
		from    domain.ShipmentStatus
		to      domain.ShipmentStatus
		in      domain.TransitionInput
		wantErr bool
		errMsg  string
	}{
		{name: "pending to assigned with assignee", from: domain.StatusPending, to: domain.StatusAssigned, in: domain.TransitionInput{AssigneeID: &driver}},
		{name: "pending to assigned without assignee", from: domain.StatusPending, to: domain.StatusAssigned, wantErr: true, errMsg: "requires an assignee"},
		{name: "pending to assigned with blank assignee", from: domain.StatusPending, to: domain.StatusAssigned, in: domain.TransitionInput{AssigneeID: &empty}, wantErr: true, errMsg: "requires an assignee"},
		{name: "pending to cancelled", from: domain.StatusPending, to: domain.StatusCancelled},
		{name: "assigned to in transit", from: domain.StatusAssigned, to: domain.StatusInTransit},
		{name: "assigned to cancelled", from: domain.StatusAssigned, to: domain.StatusCancelled},
		{name: "in transit to delivered with timestamp", from: domain.StatusInTransit, to: domain.StatusDelivered, in: domain.TransitionInput{DeliveredAt: &now}},
		{name: "in transit to delivered without timestamp", from: domain.StatusInTransit, to: domain.StatusDelivered, wantErr: true, errMsg: "requires a delivery timestamp"},
		{name: "pending straight to in transit", from: domain.StatusPending, to: domain.StatusInTransit, wantErr: true, errMsg: "from PENDING to IN_TRANSIT"},
		{name: "in transit cannot be cancelled", from: domain.StatusInTransit, to: domain.StatusCancelled, wantErr: true, errMsg: "from IN_TRANSIT to CANCELLED"},
		{name: "pending to pending", from: domain.StatusPending, to: domain.StatusPending, wantErr: true, errMsg: "from PENDING to PENDING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateTransition(tt.from, tt.to, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransition_TerminalStatesAreFinal(t *testing.T) {
	all := []domain.ShipmentStatus{
		domain.StatusPending, domain.StatusAssigned, domain.StatusInTransit,
		domain.StatusDelivered, domain.StatusCancelled,
	}
	driver := "driver-1"
	now := time.Now()
	in := domain.TransitionInput{AssigneeID: &driver, DeliveredAt: &now}

	for _, from := range []domain.ShipmentStatus{domain.StatusDelivered, domain.StatusCancelled} {
		assert.True(t, from.IsTerminal())
		for _, to := range all {
			err := domain.ValidateTransition(from, to, in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s -> %s", from, to)
			assert.False(t, domain.CanTransition(from, to))
		}
	}
}

func TestShipment_ApplyTransition(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := domain.Shipment{ShipmentID: "s-1", Status: domain.StatusPending}
	s.CreatedAt = created
	driver := "driver-7"
	now := created.Add(time.Hour)

	rec, err := s.ApplyTransition(domain.StatusAssigned, domain.TransitionInput{AssigneeID: &driver}, "admin-1", "assigned", "h-1", now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, s.Status)
	require.NotNil(t, s.AssigneeID)
	assert.Equal(t, driver, *s.AssigneeID)
	assert.Equal(t, now, s.LastUpdatedAt)
	assert.Equal(t, "admin-1", s.LastUpdatedBy)
	assert.Equal(t, domain.StatusHistoryRecord{
		HistoryID: "h-1", ShipmentID: "s-1", Status: domain.StatusAssigned,
		Note: "assigned", ChangedBy: "admin-1", ChangedAt: now,
	}, rec)

	// a rejected transition leaves the shipment untouched
	before := s
	_, err = s.ApplyTransition(domain.StatusDelivered, domain.TransitionInput{}, "admin-1", "", "h-2", now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	assert.Equal(t, before, s)
}

func TestParseShipmentStatus(t *testing.T) {
	st, ok := domain.ParseShipmentStatus("in-transit")
	assert.True(t, ok)
	assert.Equal(t, domain.StatusInTransit, st)

	st, ok = domain.ParseShipmentStatus(" delivered ")
	assert.True(t, ok)
	assert.Equal(t, domain.StatusDelivered, st)

	_, ok = domain.ParseShipmentStatus("LOST")
	assert.False(t, ok)
}

func TestDeriveTier(t *testing.T) {
	blr := domain.Address{City: "Bengaluru", CountryCode: "IN"}
	tests := []struct {
		name     string
		delivery domain.Address
		want     domain.DistanceTier
	}{
		{"same city", domain.Address{City: "bengaluru", CountryCode: "in"}, domain.TierLocal},
		{"same country", domain.Address{City: "Mumbai", CountryCode: "IN"}, domain.TierDomestic},
		{"abroad", domain.Address{City: "Bengaluru", CountryCode: "US"}, domain.TierInternational},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DeriveTier(blr, tt.delivery))
		})
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, domain.RoleAdmin, domain.ParseRole("admin"))
	assert.Equal(t, domain.RoleDriver, domain.ParseRole("DRIVER"))
	assert.Equal(t, domain.RoleCustomer, domain.ParseRole(""))
	assert.Equal(t, domain.RoleCustomer, domain.ParseRole("superuser"))
}
