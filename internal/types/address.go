package types

import (
	"encoding/json"
	"strings"
)

// AddressField holds an address extracted from one of the heterogeneous
// shapes chain data providers emit for address fields: a plain hex string,
// an object wrapping a lowercased string under "address", or a generic
// value object ("value", possibly nested under "_value").
//
// An unrecognized shape is kept as invalid rather than rejected so that a
// single malformed record never aborts an analysis run.
type AddressField struct {
	value string
	valid bool
}

// NewAddressField builds a valid AddressField from a raw string.
func NewAddressField(s string) AddressField {
	s = strings.TrimSpace(s)
	if s == "" {
		return AddressField{}
	}
	return AddressField{value: strings.ToLower(s), valid: true}
}

// Normalized returns the canonical lowercase address and whether one could
// be derived from the original shape.
func (f AddressField) Normalized() (string, bool) {
	return f.value, f.valid
}

// IsZero reports whether the field is absent or the zero address. Contract
// creation transactions carry no recipient, which some providers encode as
// an empty field and others as the zero address.
func (f AddressField) IsZero() bool {
	if !f.valid || f.value == "" {
		return true
	}
	return f.value == "0x0000000000000000000000000000000000000000"
}

// Equals compares the field against another address case-insensitively.
// An invalid field never equals anything, including another invalid field,
// so "unparseable" is distinguishable from "the wallet's own address".
func (f AddressField) Equals(address string) bool {
	if !f.valid {
		return false
	}
	return f.value == strings.ToLower(address)
}

// UnmarshalJSON accepts the known provider shapes in fallback order:
// string, {"address": ...}, {"value": ...}, {"value": {"_value": ...}}.
// Unrecognized shapes leave the field invalid; they do not fail decoding.
func (f *AddressField) UnmarshalJSON(data []byte) error {
	*f = AddressField{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = NewAddressField(s)
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}

	if raw, ok := obj["address"]; ok {
		if err := json.Unmarshal(raw, &s); err == nil {
			*f = NewAddressField(s)
			return nil
		}
	}

	if raw, ok := obj["value"]; ok {
		if err := json.Unmarshal(raw, &s); err == nil {
			*f = NewAddressField(s)
			return nil
		}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			if inner, ok := nested["_value"]; ok {
				if err := json.Unmarshal(inner, &s); err == nil {
					*f = NewAddressField(s)
					return nil
				}
			}
		}
	}

	return nil
}

// MarshalJSON renders the canonical string, or null when no address could
// be derived.
func (f AddressField) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
