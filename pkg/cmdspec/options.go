// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"maps"
	"slices"
)

// Options holds the option values collected during resolution.
//
// Each value is stored once under the option's canonical key (Option.Key).
// Every alias of the option, with its leading dashes removed, is an accessor
// key for the same value, so "-o yaml" can be read back as "o", "output" or
// the canonical name.
//
// Values are true for boolean flags, a string for single-valued options and
// a []string for options declared Multiple.
//
// The zero value is an empty set of options.
type Options struct {
	values map[string]any    // canonical key -> value
	keys   map[string]string // accessor key -> canonical key
	order  []string          // accessor keys in first-seen order
}

// record stores one occurrence of opt.
func (o *Options) record(opt *Option, value any) {
	key := opt.Key()
	if o.values == nil {
		o.values = make(map[string]any)
		o.keys = make(map[string]string)
	}
	if opt.Multiple && !opt.IsBool() {
		prev, _ := o.values[key].([]string)
		// Clip so the append never writes into a list shared with a parent node.
		o.values[key] = append(slices.Clip(prev), value.(string))
	} else {
		o.values[key] = value
	}
	for _, alias := range opt.Aliases {
		k := trimAlias(alias)
		if _, ok := o.keys[k]; !ok {
			o.order = append(o.order, k)
		}
		o.keys[k] = key
	}
	if _, ok := o.keys[key]; !ok {
		o.order = append(o.order, key)
		o.keys[key] = key
	}
}

// clone returns a copy that can be extended without affecting o.
func (o Options) clone() Options {
	return Options{
		values: maps.Clone(o.values),
		keys:   maps.Clone(o.keys),
		order:  slices.Clip(o.order),
	}
}

// canonical maps an accessor key to its canonical key.
func (o Options) canonical(key string) (string, bool) {
	c, ok := o.keys[key]
	return c, ok
}

// Lookup returns the value stored for key, which may be a canonical name or
// any alias without its dashes.
func (o Options) Lookup(key string) (any, bool) {
	c, ok := o.canonical(key)
	if !ok {
		return nil, false
	}
	v, ok := o.values[c]
	if s, isList := v.([]string); isList {
		return slices.Clone(s), ok
	}
	return v, ok
}

// Has reports whether the option was given.
func (o Options) Has(key string) bool {
	_, ok := o.Lookup(key)
	return ok
}

// Bool reports whether a boolean flag was given.
func (o Options) Bool(key string) bool {
	v, _ := o.Lookup(key)
	b, _ := v.(bool)
	return b
}

// String returns the value of a single-valued option. For a multiple option
// it returns the last value given.
func (o Options) String(key string) string {
	v, _ := o.Lookup(key)
	switch v := v.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[len(v)-1]
		}
	}
	return ""
}

// Strings returns every value given for the option, in order.
func (o Options) Strings(key string) []string {
	v, _ := o.Lookup(key)
	switch v := v.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	}
	return nil
}

// Len returns the number of distinct options given.
func (o Options) Len() int {
	return len(o.values)
}

// Keys returns the canonical keys of the options given, sorted.
func (o Options) Keys() []string {
	return slices.Sorted(maps.Keys(o.values))
}

// Map returns the alias-keyed view: one entry per alias of every option
// given, plus its canonical key, each holding the option's value.
func (o Options) Map() map[string]any {
	m := make(map[string]any, len(o.order))
	for _, k := range o.order {
		if v, ok := o.Lookup(k); ok {
			m[k] = v
		}
	}
	return m
}

// Canonical returns the canonical-keyed view of the options given.
func (o Options) Canonical() map[string]any {
	m := make(map[string]any, len(o.values))
	for k := range o.values {
		m[k], _ = o.Lookup(k)
	}
	return m
}
