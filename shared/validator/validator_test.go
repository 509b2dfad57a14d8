package validator_test

import (
	"strings"
	"testing"

	"shuttle/shared/validator"
)

type bookingPayload struct {
	CourtID   string `validate:"required,uuid"                       json:"court_id"`
	Date      string `validate:"required"                            json:"date"`
	StartHour int    `validate:"required,min=6,max=21"               json:"start_hour"`
	EndHour   int    `validate:"required,min=7,max=22,gtfield=StartHour" json:"end_hour"`
}

func validPayload() *bookingPayload {
	return &bookingPayload{
		CourtID:   "550e8400-e29b-41d4-a716-446655440000",
		Date:      "2030-01-02",
		StartHour: 9,
		EndHour:   11,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*bookingPayload)
		expectError bool
	}{
		{
			name:        "valid struct",
			mutate:      func(p *bookingPayload) {},
			expectError: false,
		},
		{
			name:        "missing court id",
			mutate:      func(p *bookingPayload) { p.CourtID = "" },
			expectError: true,
		},
		{
			name:        "court id is not a uuid",
			mutate:      func(p *bookingPayload) { p.CourtID = "court-1" },
			expectError: true,
		},
		{
			name:        "start hour before opening",
			mutate:      func(p *bookingPayload) { p.StartHour = 5 },
			expectError: true,
		},
		{
			name:        "end hour past closing",
			mutate:      func(p *bookingPayload) { p.EndHour = 23 },
			expectError: true,
		},
		{
			name: "end hour not after start hour",
			mutate: func(p *bookingPayload) {
				p.StartHour = 11
				p.EndHour = 11
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(payload)

			err := validator.ValidateStruct(payload)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "hour in bookable range",
			field:       9,
			tag:         "gte=6,lte=22",
			expectError: false,
		},
		{
			name:        "hour out of bookable range",
			field:       23,
			tag:         "gte=6,lte=22",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "maintenance",
			tag:         "oneof=available booked maintenance",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "closed",
			tag:         "oneof=available booked maintenance",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"court_id":"550e8400-e29b-41d4-a716-446655440000","date":"2030-01-02","start_hour":9,"end_hour":11}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"court_id":"550e8400-e29b-41d4-a716-446655440000","date":"2030-01-02","start_hour":5,"end_hour":11}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"court_id":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data bookingPayload
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	payload := &bookingPayload{}
	err := validator.ValidateStruct(payload)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
