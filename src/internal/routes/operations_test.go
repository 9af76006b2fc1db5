package routes

import (
	stderrors "errors"
	"testing"

	"github.com/lukassup/route-ctl/src/internal/errors"
)

func mustMatcher(t *testing.T, f Filter) *Matcher {
	t.Helper()
	m, err := NewMatcher(f)
	if err != nil {
		t.Fatalf("NewMatcher(%+v) failed: %v", f, err)
	}
	return m
}

func names(records []*Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestFind(t *testing.T) {
	records := validRoutes()
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"exact name", Filter{Value: "default", ExactMatch: true}, []string{"default"}},
		{"exact is not partial", Filter{Value: "defaul", ExactMatch: true}, []string{}},
		{"exact ignore case", Filter{Value: "DEFAULT", ExactMatch: true, IgnoreCase: true}, []string{"default"}},
		{"exact case sensitive", Filter{Value: "DEFAULT", ExactMatch: true}, []string{}},
		{"partial regex", Filter{Key: FieldNetwork, Value: `67\.0`}, []string{"172.17.67.0/24"}},
		{"partial by gateway", Filter{Key: FieldGateway, Value: "10.0.2"}, []string{"172.17.67.0/24", "default"}},
		{"missing field as empty", Filter{Key: FieldOptions, Value: "^$"}, []string{"default"}},
		{"unknown key as empty", Filter{Key: "metric", Value: "", ExactMatch: true}, []string{"172.17.67.0/24", "default"}},
		{"variable value", Filter{Key: FieldInterface, Value: "$appout", ExactMatch: true}, []string{"default"}},
		{"negative lookahead", Filter{Value: `^(?!default)`}, []string{"172.17.67.0/24"}},
		{"lookbehind", Filter{Key: FieldOptions, Value: `(?<=table )200`}, []string{"172.17.67.0/24"}},
		{"backreference", Filter{Key: FieldNetmask, Value: `^(\d+)\.\1\.\1\.\1$`}, []string{"default"}},
		{"ignore case lookahead", Filter{Value: `(?=DEF)de`, IgnoreCase: true}, []string{"default"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Find(records, mustMatcher(t, tt.filter)))
			if len(got) != len(tt.want) {
				t.Fatalf("Find = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Find = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFind_IgnoreCaseReturnsFullRecord(t *testing.T) {
	m := mustMatcher(t, Filter{Key: FieldName, Value: "DEFAULT", IgnoreCase: true, ExactMatch: true})
	found := Find(validRoutes(), m)
	if len(found) != 1 {
		t.Fatalf("Expected one record, got %d", len(found))
	}
	if found[0].Interface != "$appout" {
		t.Errorf("Expected interface $appout, got %q", found[0].Interface)
	}
}

func TestFindDeleteComplement(t *testing.T) {
	records := validRoutes()
	filters := []Filter{
		{Value: "default", ExactMatch: true},
		{Key: FieldNetwork, Value: "172"},
		{Key: FieldGateway, Value: "nothing"},
	}

	for _, f := range filters {
		m := mustMatcher(t, f)
		found := Find(records, m)
		kept := Delete(records, m)
		if len(found)+len(kept) != len(records) {
			t.Errorf("filter %+v: %d found + %d kept != %d", f, len(found), len(kept), len(records))
		}
		for _, r := range kept {
			if m.Match(r) {
				t.Errorf("filter %+v: Delete kept matching record %q", f, r.Name)
			}
		}
	}
}

func TestNewMatcher_InvalidExpression(t *testing.T) {
	_, err := NewMatcher(Filter{Value: "(unclosed"})
	if !stderrors.Is(err, errors.ErrInvalidOperation) {
		t.Errorf("Expected InvalidOperation, got %v", err)
	}
}

func TestNewMatcher_DefaultsToName(t *testing.T) {
	m := mustMatcher(t, Filter{Value: "x"})
	if m.Filter().Key != FieldName {
		t.Errorf("Expected default key %q, got %q", FieldName, m.Filter().Key)
	}
}

func TestParseIdentityPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    IdentityPolicy
		wantErr bool
	}{
		{"", IdentityNameOrNetwork, false},
		{"name_or_network", IdentityNameOrNetwork, false},
		{"name", IdentityName, false},
		{"network", IdentityNetwork, false},
		{"bogus", "", true},
	}
	for _, tt := range tests {
		got, err := ParseIdentityPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIdentityPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseIdentityPolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindExisting(t *testing.T) {
	byName := &Record{Name: "default", Network: "192.168.0.0", Netmask: "255.255.0.0"}
	byNet := &Record{Name: "renamed", Network: "172.17.67.0", Netmask: "255.255.255.0"}
	both := &Record{Name: "default", Network: "172.17.67.0", Netmask: "255.255.255.0"}
	none := &Record{Name: "new", Network: "10.9.0.0", Netmask: "255.255.0.0"}
	nameOnly := &Record{Name: "b", Gateway: "10.0.0.2"}
	networkNoMask := &Record{Name: "b", Network: "10.1.0.0"}
	nameOnlyStored := []*Record{{Name: "a", Gateway: "10.0.0.1"}, {Name: "c", Options: "table 5"}}
	networkNoMaskStored := []*Record{{Name: "a", Network: "10.1.0.0"}}

	tests := []struct {
		name      string
		records   []*Record
		candidate *Record
		policy    IdentityPolicy
		want      int
	}{
		{"name wins", nil, byName, IdentityNameOrNetwork, 1},
		{"network wins", nil, byNet, IdentityNameOrNetwork, 1},
		{"both match different records", nil, both, IdentityNameOrNetwork, 2},
		{"no match", nil, none, IdentityNameOrNetwork, 0},
		{"name policy ignores network", nil, byNet, IdentityName, 0},
		{"network policy ignores name", nil, byName, IdentityNetwork, 0},
		{"network policy", nil, byNet, IdentityNetwork, 1},
		{"empty network never matches empty", nameOnlyStored, nameOnly, IdentityNameOrNetwork, 0},
		{"empty network under network policy", nameOnlyStored, nameOnly, IdentityNetwork, 0},
		{"empty candidate against set network", nil, nameOnly, IdentityNameOrNetwork, 0},
		{"empty candidate still matches by name", nameOnlyStored, &Record{Name: "a"}, IdentityNameOrNetwork, 1},
		{"network without netmask", networkNoMaskStored, networkNoMask, IdentityNameOrNetwork, 0},
		{"network without netmask against set pair", nil, &Record{Name: "x", Network: "172.17.67.0"}, IdentityNameOrNetwork, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := tt.records
			if records == nil {
				records = validRoutes()
			}
			got := FindExisting(records, tt.candidate, tt.policy)
			if len(got) != tt.want {
				t.Errorf("FindExisting = %v, want %d records", names(got), tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	records := validRoutes()

	t.Run("full match", func(t *testing.T) {
		v, err := Validate(records, validRoutes()[0])
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !v.Valid() || v.Count() != 7 {
			t.Errorf("Expected 7 valid fields, got %v", v)
		}
	})

	t.Run("partial match", func(t *testing.T) {
		input := validRoutes()[0]
		input.Gateway = "10.0.3.3"
		input.Options = "table 300"
		v, err := Validate(records, input)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if v.Valid() {
			t.Error("Expected validation to fail")
		}
		if v.Count() != 5 {
			t.Errorf("Expected 5 valid fields, got %d", v.Count())
		}
		if v[FieldGateway] || v[FieldOptions] {
			t.Errorf("Expected gateway and options to be invalid, got %v", v)
		}
	})

	t.Run("not found", func(t *testing.T) {
		v, err := Validate(records, &Record{Name: "missing", Ensure: "present"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(v) != 2 || v.Count() != 0 {
			t.Errorf("Expected every field invalid, got %v", v)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := Validate(records, &Record{Ensure: "present"})
		if !stderrors.Is(err, errors.ErrInvalidRecord) {
			t.Errorf("Expected InvalidRecord, got %v", err)
		}
	})

	t.Run("duplicate names", func(t *testing.T) {
		dup := append(validRoutes(), &Record{Name: "default"})
		_, err := Validate(dup, &Record{Name: "default"})
		if !stderrors.Is(err, errors.ErrMultipleRecordsFound) {
			t.Errorf("Expected MultipleRecordsFound, got %v", err)
		}
	})
}

func TestValidateBatch(t *testing.T) {
	records := validRoutes()

	results, err := ValidateBatch(records, validRoutes())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Output.Valid() {
			t.Errorf("Expected %q to validate, got %v", r.Input.Name, r.Output)
		}
	}

	_, err = ValidateBatch(records, []*Record{{Name: "missing"}})
	if !stderrors.Is(err, errors.ErrRecordNotFound) {
		t.Errorf("Expected RecordNotFound, got %v", err)
	}

	_, err = ValidateBatch(records, []*Record{{Gateway: "10.0.2.2"}})
	if !stderrors.Is(err, errors.ErrInvalidRecord) {
		t.Errorf("Expected InvalidRecord, got %v", err)
	}
}
