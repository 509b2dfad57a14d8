package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shuttle/internal/domains/reservation/model"
)

func TestParseStoreStatus(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		want    string
		wantErr bool
	}{
		{name: "waiting maps to pending", stored: model.StoreStatusWaiting, want: model.StatusPending},
		{name: "confirmed passes through", stored: model.StoreStatusConfirmed, want: model.StatusConfirmed},
		{name: "cancelled passes through", stored: model.StoreStatusCancelled, want: model.StatusCancelled},
		{name: "unknown value is rejected", stored: "expired", wantErr: true},
		{name: "empty value is rejected", stored: "", wantErr: true},
		{name: "api vocabulary is not store vocabulary", stored: model.StatusPending, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseStoreStatus(tt.stored)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToStoreStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		want    string
		wantErr bool
	}{
		{name: "pending maps to waiting", status: model.StatusPending, want: model.StoreStatusWaiting},
		{name: "confirmed passes through", status: model.StatusConfirmed, want: model.StoreStatusConfirmed},
		{name: "cancelled passes through", status: model.StatusCancelled, want: model.StoreStatusCancelled},
		{name: "unknown value is rejected", status: "waiting-list", wantErr: true},
		{name: "empty value is rejected", status: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ToStoreStatus(tt.status)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
