// Copyright 2024 The tektonc Authors.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tektonc/tektonc/pkg/orderedmap"
)

// Filter is a pure value transform applied after path resolution.
type Filter func(val interface{}) (interface{}, error)

type Registry struct {
	filters map[string]Filter
}

// NewRegistry returns a registry with the built-in filters registered.
func NewRegistry() *Registry {
	r := &Registry{filters: map[string]Filter{}}
	r.Register("dns", dnsLabelFilter)
	r.Register("slug", slugFilter)
	r.Register("tojson", toJSONFilter)
	return r
}

func (r *Registry) Register(name string, filter Filter) {
	r.filters[name] = filter
}

func (r *Registry) Lookup(name string) (Filter, bool) {
	filter, found := r.filters[name]
	return filter, found
}

var (
	nonDNSChars  = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRepeats  = regexp.MustCompile(`-+`)
	nonSlugChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
)

// dnsLabelFilter produces a DNS-1123 label: lowercase, alphanumerics and
// dashes only, collapsed repeats, at most 63 characters.
func dnsLabelFilter(val interface{}) (interface{}, error) {
	s, err := StringValue(val)
	if err != nil {
		return nil, err
	}
	s = strings.ToLower(s)
	s = nonDNSChars.ReplaceAllString(s, "-")
	s = dashRepeats.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 63 {
		s = strings.TrimRight(s[:63], "-")
	}
	return s, nil
}

// slugFilter is the looser identifier form used for params: letters, digits,
// '.', '_' and '-' pass through, anything else becomes a dash.
func slugFilter(val interface{}) (interface{}, error) {
	s, err := StringValue(val)
	if err != nil {
		return nil, err
	}
	return nonSlugChars.ReplaceAllString(s, "-"), nil
}

// toJSONFilter encodes the value as compact JSON, for params that carry
// structured data through a string field. Mapping keys come out sorted
// since the encoder does not take ordered maps.
func toJSONFilter(val interface{}) (interface{}, error) {
	bs, err := json.Marshal(orderedmap.Conversion{Object: val}.AsUnorderedMaps())
	if err != nil {
		return nil, err
	}
	return string(bs), nil
}
