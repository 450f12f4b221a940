// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-marketplace/models"
)

// MarketplaceValidator checks the inputs of the account and listing use
// cases.
type MarketplaceValidator struct {
}

func NewMarketplaceValidator() Validator {
	return &MarketplaceValidator{}
}

func (v *MarketplaceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.PublishRequest:
		return v.validatePublish(value, fields...)
	case *models.PublishRequest:
		return v.validatePublish(*value, fields...)

	case models.UpdateRequest:
		return v.validateUpdate(value, fields...)
	case *models.UpdateRequest:
		return v.validateUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *MarketplaceValidator) validateSignup(req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := required(f, req.Username); err != nil {
				return err
			}
		case FieldEmail:
			if err := required(f, req.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := required(f, req.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MarketplaceValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := required(f, req.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := required(f, req.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MarketplaceValidator) validatePublish(req models.PublishRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldPrice, FieldBrand, FieldPicture}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := required(f, req.Title); err != nil {
				return err
			}
		case FieldBrand:
			if err := required(f, req.Brand); err != nil {
				return err
			}
		case FieldPrice:
			if err := required(f, req.Price); err != nil {
				return err
			}
			if _, err := ParsePrice(req.Price); err != nil {
				return err
			}
		case FieldPicture:
			if len(req.Picture) == 0 {
				return fmt.Errorf("%w: %s", ErrMissingParameter, f)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MarketplaceValidator) validateUpdate(req models.UpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOptionalPrice}
	}

	for _, f := range fields {
		switch f {
		case FieldOptionalPrice:
			if strings.TrimSpace(req.Price) == "" {
				continue
			}
			if _, err := ParsePrice(req.Price); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// Prices are stored as NUMERIC(12, 2).
const (
	MaxPrice      = 9_999_999_999.99
	priceDecimals = 2
)

// ParsePrice parses a submitted price. Negative, NaN and infinite values,
// values above [MaxPrice] and values with more than two decimals are
// rejected with [ErrInvalidPrice].
func ParsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if price > MaxPrice {
		return 0, fmt.Errorf("%w: %q exceeds %.2f", ErrInvalidPrice, s, MaxPrice)
	}
	if decimals(price) > priceDecimals {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidPrice, s, priceDecimals)
	}
	return price, nil
}

// decimals counts the fractional digits of the shortest representation of f.
func decimals(f float64) int {
	_, frac, found := strings.Cut(strconv.FormatFloat(f, 'f', -1, 64), ".")
	if !found {
		return 0
	}
	return len(frac)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingParameter, field)
	}
	return nil
}
