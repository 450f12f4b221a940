// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validSignup() models.SignupRequest {
	return models.SignupRequest{Email: "ann@example.com", Username: "ann", Password: "pw1"}
}

func validPublish() models.PublishRequest {
	return models.PublishRequest{
		Title:   "Jacket",
		Price:   "35",
		Brand:   "Levis",
		Picture: []byte{0x89, 'P', 'N', 'G'},
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestNewMarketplaceValidator(t *testing.T) {
	require.NotNil(t, NewMarketplaceValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewMarketplaceValidator()
	ctx := context.Background()

	signup := validSignup()
	assert.NoError(t, v.Validate(ctx, signup))
	assert.NoError(t, v.Validate(ctx, &signup))

	login := models.LoginRequest{Email: "a@b.c", Password: "x"}
	assert.NoError(t, v.Validate(ctx, login))
	assert.NoError(t, v.Validate(ctx, &login))

	publish := validPublish()
	assert.NoError(t, v.Validate(ctx, publish))
	assert.NoError(t, v.Validate(ctx, &publish))

	update := models.UpdateRequest{}
	assert.NoError(t, v.Validate(ctx, update))
	assert.NoError(t, v.Validate(ctx, &update))

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// Signup / Login
// ---------------------------------------------------------------------------

func TestValidate_Signup(t *testing.T) {
	v := NewMarketplaceValidator()

	tests := []struct {
		name   string
		mutate func(r *models.SignupRequest)
		field  string
	}{
		{"missing username", func(r *models.SignupRequest) { r.Username = "" }, "username"},
		{"blank email", func(r *models.SignupRequest) { r.Email = "   " }, "email"},
		{"missing password", func(r *models.SignupRequest) { r.Password = "" }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req)
			require.ErrorIs(t, err, ErrMissingParameter)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_Login(t *testing.T) {
	v := NewMarketplaceValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), models.LoginRequest{Password: "x"}), ErrMissingParameter)
	assert.ErrorIs(t, v.Validate(context.Background(), models.LoginRequest{Email: "x"}), ErrMissingParameter)
}

func TestValidate_FieldScoping(t *testing.T) {
	v := NewMarketplaceValidator()
	req := models.SignupRequest{Email: "ann@example.com"}

	assert.NoError(t, v.Validate(context.Background(), req, FieldEmail))
	assert.ErrorIs(t, v.Validate(context.Background(), req, FieldEmail, FieldUsername), ErrMissingParameter)
	assert.ErrorIs(t, v.Validate(context.Background(), req, "nickname"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Publish / Update
// ---------------------------------------------------------------------------

func TestValidate_Publish(t *testing.T) {
	v := NewMarketplaceValidator()

	tests := []struct {
		name    string
		mutate  func(r *models.PublishRequest)
		wantErr error
	}{
		{"valid", func(r *models.PublishRequest) {}, nil},
		{"zero price", func(r *models.PublishRequest) { r.Price = "0" }, nil},
		{"decimal price", func(r *models.PublishRequest) { r.Price = " 12.50 " }, nil},
		{"missing title", func(r *models.PublishRequest) { r.Title = "" }, ErrMissingParameter},
		{"missing brand", func(r *models.PublishRequest) { r.Brand = "" }, ErrMissingParameter},
		{"missing price", func(r *models.PublishRequest) { r.Price = "" }, ErrMissingParameter},
		{"missing picture", func(r *models.PublishRequest) { r.Picture = nil }, ErrMissingParameter},
		{"text price", func(r *models.PublishRequest) { r.Price = "cheap" }, ErrInvalidPrice},
		{"negative price", func(r *models.PublishRequest) { r.Price = "-1" }, ErrInvalidPrice},
		{"nan price", func(r *models.PublishRequest) { r.Price = "NaN" }, ErrInvalidPrice},
		{"price too large", func(r *models.PublishRequest) { r.Price = "1e12" }, ErrInvalidPrice},
		{"price sub-cent", func(r *models.PublishRequest) { r.Price = "12.345" }, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPublish()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Update(t *testing.T) {
	v := NewMarketplaceValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.UpdateRequest{Title: "new"}))
	assert.NoError(t, v.Validate(ctx, models.UpdateRequest{Price: "10"}))
	assert.ErrorIs(t, v.Validate(ctx, models.UpdateRequest{Price: "-5"}), ErrInvalidPrice)
	assert.ErrorIs(t, v.Validate(ctx, models.UpdateRequest{Price: "abc"}), ErrInvalidPrice)
	assert.ErrorIs(t, v.Validate(ctx, models.UpdateRequest{Price: "1e300"}), ErrInvalidPrice)
	assert.ErrorIs(t, v.Validate(ctx, models.UpdateRequest{Price: "0.125"}), ErrInvalidPrice)
}

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice("19.99")
	require.NoError(t, err)
	assert.InDelta(t, 19.99, p, 1e-9)

	_, err = ParsePrice("+Inf")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestParsePrice_StorageBounds(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"upper bound", "9999999999.99", MaxPrice, false},
		{"exponent within range", "1.5e3", 1500, false},
		{"trailing zeros", "12.500", 12.5, false},
		{"above upper bound", "10000000000", 0, true},
		{"huge exponent", "1e12", 0, true},
		{"near float max", "1e300", 0, true},
		{"three decimals", "12.345", 0, true},
		{"tiny fraction", "0.001", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
