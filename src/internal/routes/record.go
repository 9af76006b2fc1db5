package routes

import (
	"encoding/json"
	"sort"
)

// Field names of a route record.
const (
	FieldName      = "name"
	FieldEnsure    = "ensure"
	FieldGateway   = "gateway"
	FieldInterface = "interface"
	FieldNetmask   = "netmask"
	FieldNetwork   = "network"
	FieldOptions   = "options"
)

// Ensure states.
const (
	EnsurePresent = "present"
	EnsureAbsent  = "absent"
)

// BodyFields is the canonical emission order of the block body. The name is
// carried by the block label instead.
var BodyFields = []string{
	FieldEnsure,
	FieldGateway,
	FieldInterface,
	FieldNetmask,
	FieldNetwork,
	FieldOptions,
}

// Keys lists every field a filter may target.
var Keys = []string{
	FieldName,
	FieldNetwork,
	FieldNetmask,
	FieldInterface,
	FieldEnsure,
	FieldGateway,
	FieldOptions,
}

// Record is a single network route entry. An empty string means the field is
// absent.
type Record struct {
	Name      string `json:"name" validate:"required,manifest_name"`
	Ensure    string `json:"ensure,omitempty" validate:"omitempty,oneof=present absent"`
	Gateway   string `json:"gateway,omitempty" validate:"omitempty,ip_or_var,manifest_value"`
	Interface string `json:"interface,omitempty" validate:"omitempty,manifest_value"`
	Netmask   string `json:"netmask,omitempty" validate:"omitempty,ip_or_var,manifest_value"`
	Network   string `json:"network,omitempty" validate:"omitempty,network_or_var,manifest_value"`
	Options   string `json:"options,omitempty" validate:"omitempty,manifest_value"`

	// Extra holds keys the block grammar carried that are not route fields.
	// They are kept for matching and JSON output but never rendered.
	Extra map[string]string `json:"-"`

	// supplied records keys assigned through Set, including empty values,
	// so that Merge can clear them.
	supplied map[string]struct{}
}

func (r *Record) field(key string) *string {
	switch key {
	case FieldName:
		return &r.Name
	case FieldEnsure:
		return &r.Ensure
	case FieldGateway:
		return &r.Gateway
	case FieldInterface:
		return &r.Interface
	case FieldNetmask:
		return &r.Netmask
	case FieldNetwork:
		return &r.Network
	case FieldOptions:
		return &r.Options
	}
	return nil
}

// Get returns the value of key and whether it is present.
func (r *Record) Get(key string) (string, bool) {
	if f := r.field(key); f != nil {
		return *f, *f != ""
	}
	v, ok := r.Extra[key]
	return v, ok
}

// Set assigns value to key and marks it as supplied. Unknown keys land in
// Extra.
func (r *Record) Set(key, value string) {
	if r.supplied == nil {
		r.supplied = make(map[string]struct{})
	}
	r.supplied[key] = struct{}{}
	r.assign(key, value)
}

func (r *Record) assign(key, value string) {
	if f := r.field(key); f != nil {
		*f = value
		return
	}
	if r.Extra == nil {
		r.Extra = make(map[string]string)
	}
	r.Extra[key] = value
}

// Fields returns the keys present in r: name first, then the body fields in
// emission order, then extra keys sorted.
func (r *Record) Fields() []string {
	keys := make([]string, 0, len(BodyFields)+1+len(r.Extra))
	if r.Name != "" {
		keys = append(keys, FieldName)
	}
	for _, k := range BodyFields {
		if v, _ := r.Get(k); v != "" {
			keys = append(keys, k)
		}
	}
	extra := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Merge overwrites the fields of r with every field present in patch. Keys
// the patch received through Set count as present even when empty, and an
// empty value then clears the field.
func (r *Record) Merge(patch *Record) {
	keys := patch.Fields()
	for k := range patch.supplied {
		if v, _ := patch.Get(k); v == "" {
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		v, _ := patch.Get(k)
		if v == "" && r.field(k) == nil {
			delete(r.Extra, k)
			continue
		}
		r.assign(k, v)
	}
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := *r
	if r.Extra != nil {
		c.Extra = make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			c.Extra[k] = v
		}
	}
	if r.supplied != nil {
		c.supplied = make(map[string]struct{}, len(r.supplied))
		for k := range r.supplied {
			c.supplied[k] = struct{}{}
		}
	}
	return &c
}

// Equal reports whether r and other carry the same fields and values.
func (r *Record) Equal(other *Record) bool {
	a, b := r.Fields(), other.Fields()
	if len(a) != len(b) {
		return false
	}
	for i, k := range a {
		if b[i] != k {
			return false
		}
		va, _ := r.Get(k)
		vb, _ := other.Get(k)
		if va != vb {
			return false
		}
	}
	return true
}

// MarshalJSON flattens Extra into the route object.
func (r *Record) MarshalJSON() ([]byte, error) {
	m := r.toMap()
	// Keep "name" first and field order stable for humans reading the output.
	buf := []byte{'{'}
	for i, k := range r.Fields() {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON accepts any string-valued keys, unknown ones go to Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*r = Record{}
	for k, v := range m {
		r.Set(k, v)
	}
	return nil
}

func (r *Record) toMap() map[string]string {
	m := make(map[string]string)
	for _, k := range r.Fields() {
		m[k], _ = r.Get(k)
	}
	return m
}

// CloneAll deep-copies a record slice.
func CloneAll(records []*Record) []*Record {
	out := make([]*Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
