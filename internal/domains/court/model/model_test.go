package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shuttle/internal/domains/court/model"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "available", raw: model.StatusAvailable, want: model.StatusAvailable},
		{name: "booked", raw: model.StatusBooked, want: model.StatusBooked},
		{name: "maintenance", raw: model.StatusMaintenance, want: model.StatusMaintenance},
		{name: "unknown value is rejected", raw: "closed", wantErr: true},
		{name: "empty value is rejected", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseStatus(tt.raw)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourt_Name(t *testing.T) {
	court := model.Court{Number: 7}

	assert.Equal(t, "Court 7", court.Name())
}
