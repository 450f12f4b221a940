// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Detail keys, in display order.
const (
	DetailBrand     = "brand"
	DetailSize      = "size"
	DetailCondition = "condition"
	DetailColor     = "color"
	DetailLocation  = "location"
)

// DetailKeys lists every known detail key in the order used at publish time.
var DetailKeys = []string{DetailBrand, DetailSize, DetailCondition, DetailColor, DetailLocation}

var errInvalidDetail = errors.New("detail must be an object with exactly one key")

// Listing is an item offered for sale.
type Listing struct {
	ID          string  `json:"id"`
	Name        string  `json:"product_name"`
	Description string  `json:"product_description"`
	Price       float64 `json:"product_price"`
	Details     Details `json:"product_details"`
	Image       *Asset  `json:"product_image,omitempty"`

	// OwnerID references the account that published the listing.
	OwnerID string `json:"-"`

	// Owner is populated on read with the owner's public profile only.
	Owner *Owner `json:"owner,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owner is the populated owner reference of a listing.
type Owner struct {
	ID      string        `json:"id"`
	Account PublicProfile `json:"account"`
}

// Detail is one key/value facet of a listing. On the wire it is a single-key
// object, e.g. {"brand":"Zara"}.
type Detail struct {
	Key   string
	Value string
}

func (d Detail) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{d.Key: d.Value})
}

func (d *Detail) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return errInvalidDetail
	}
	for k, v := range m {
		d.Key, d.Value = k, v
	}
	return nil
}

// Details is the ordered sequence of listing facets. Order is meaningful for
// display, so it is never rebuilt from a map.
type Details []Detail

// NewDetails builds the details sequence in the fixed publish order.
func NewDetails(values map[string]string) Details {
	details := make(Details, 0, len(DetailKeys))
	for _, key := range DetailKeys {
		details = append(details, Detail{Key: key, Value: values[key]})
	}
	return details
}

// Get returns the value stored under key.
func (d Details) Get(key string) (string, bool) {
	for _, detail := range d {
		if detail.Key == key {
			return detail.Value, true
		}
	}
	return "", false
}

// Merge returns a copy of d where every entry whose key appears in updates
// with a non-empty value is replaced. Keys absent from d are ignored and
// unmatched entries keep their values. The second result reports whether any
// entry changed.
func (d Details) Merge(updates map[string]string) (Details, bool) {
	merged := make(Details, len(d))
	copy(merged, d)

	changed := false
	for i, detail := range merged {
		value, ok := updates[detail.Key]
		if !ok || value == "" {
			continue
		}
		if value != detail.Value {
			changed = true
		}
		merged[i].Value = value
	}
	return merged, changed
}

// Value implements driver.Valuer.
func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for jsonb columns.
func (d *Details) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("scan details: %w", err)
	}
	if raw == nil {
		*d = Details{}
		return nil
	}
	return json.Unmarshal(raw, d)
}
