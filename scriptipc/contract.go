// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"errors"
	"fmt"
)

// Contract describes the methods a service exposes. The ipcgen tool emits
// one Contract per service next to the generated unions.
type Contract struct {
	Name    string
	Methods []MethodSpec
}

// MethodSpec describes one contract method. Result is the Go type of the
// return value, or "" for a method that returns nothing.
type MethodSpec struct {
	Name   string      `json:"name"`
	ID     uint64      `json:"id"`
	Params []ParamSpec `json:"params"`
	Result string      `json:"result,omitempty"`
}

// ParamSpec describes one method parameter.
type ParamSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Method returns the method named name.
func (c *Contract) Method(name string) (MethodSpec, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodSpec{}, false
}

// RequestNames returns "Service.method" for every method, in declaration order.
func (c *Contract) RequestNames() []string {
	names := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		names[i] = c.Name + "." + m.Name
	}
	return names
}

// Validate checks that requests and responses each hold exactly one
// variant per method, under the method's id and name.
func (c *Contract) Validate(requests, responses *Union) error {
	var errs []error
	ids := make(map[uint64]string, len(c.Methods))
	names := make(map[string]bool, len(c.Methods))
	for _, m := range c.Methods {
		if m.ID == 0 {
			errs = append(errs, fmt.Errorf("method %q: id 0 is reserved", m.Name))
		}
		if prev, ok := ids[m.ID]; ok {
			errs = append(errs, fmt.Errorf("method %q: id %d already used by %q", m.Name, m.ID, prev))
		}
		if names[m.Name] {
			errs = append(errs, fmt.Errorf("method %q declared twice", m.Name))
		}
		ids[m.ID] = m.Name
		names[m.Name] = true

		for _, u := range []*Union{requests, responses} {
			if got := u.Name(m.ID); got != m.Name {
				errs = append(errs, fmt.Errorf("method %q: %s union has %q under id %d", m.Name, u.Service(), got, m.ID))
			}
		}
	}
	for _, u := range []*Union{requests, responses} {
		for _, id := range u.IDs() {
			if _, ok := ids[id]; !ok {
				errs = append(errs, fmt.Errorf("%s union variant %q (id %d) is not a contract method", u.Service(), u.Name(id), id))
			}
		}
	}
	return errors.Join(errs...)
}

// MustValidate is Validate that panics on failure.
func (c *Contract) MustValidate(requests, responses *Union) {
	if err := c.Validate(requests, responses); err != nil {
		panic(fmt.Sprintf("scriptipc: contract %s: %v", c.Name, err))
	}
}
