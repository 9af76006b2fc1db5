package routes

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecord_GetSet(t *testing.T) {
	rec := &Record{}
	rec.Set(FieldGateway, "10.0.0.1")
	rec.Set("metric", "100")

	if v, ok := rec.Get(FieldGateway); !ok || v != "10.0.0.1" {
		t.Errorf("Get(gateway) = %q, %v", v, ok)
	}
	if v, ok := rec.Get("metric"); !ok || v != "100" {
		t.Errorf("Get(metric) = %q, %v", v, ok)
	}
	if _, ok := rec.Get(FieldOptions); ok {
		t.Error("Expected empty options to be absent")
	}
	if _, ok := rec.Get("unknown"); ok {
		t.Error("Expected unknown key to be absent")
	}
}

func TestRecord_Fields(t *testing.T) {
	rec := &Record{
		Name:    "r",
		Network: "10.0.0.0",
		Ensure:  "present",
		Extra:   map[string]string{"zeta": "1", "alpha": "2"},
	}
	want := []string{FieldName, FieldEnsure, FieldNetwork, "alpha", "zeta"}
	if got := rec.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestRecord_Merge(t *testing.T) {
	rec := validRoutes()[0]
	rec.Merge(&Record{Gateway: "10.0.9.9", Options: "table 300"})

	if rec.Gateway != "10.0.9.9" || rec.Options != "table 300" {
		t.Errorf("Expected patched fields, got %+v", rec)
	}
	if rec.Name != "172.17.67.0/24" || rec.Interface != "eth0" {
		t.Errorf("Expected untouched fields to stay, got %+v", rec)
	}
}

func TestRecord_MergeClearsSuppliedEmpty(t *testing.T) {
	rec := validRoutes()[0]
	rec.Extra = map[string]string{"metric": "10"}

	patch := &Record{}
	patch.Set(FieldOptions, "")
	patch.Set("metric", "")
	rec.Merge(patch)

	if rec.Options != "" {
		t.Errorf("Expected options to be cleared, got %q", rec.Options)
	}
	if _, ok := rec.Extra["metric"]; ok {
		t.Errorf("Expected metric to be removed, got %v", rec.Extra)
	}
	if rec.Gateway != "10.0.2.2" {
		t.Errorf("Expected unsupplied gateway to stay, got %q", rec.Gateway)
	}
}

func TestRecord_MergeClearsEmptyJSONKeys(t *testing.T) {
	var patch Record
	if err := json.Unmarshal([]byte(`{"name":"172.17.67.0/24","options":""}`), &patch); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	rec := validRoutes()[0]
	rec.Merge(&patch)

	if rec.Options != "" {
		t.Errorf("Expected options to be cleared, got %q", rec.Options)
	}
	if rec.Interface != "eth0" {
		t.Errorf("Expected absent interface key to leave the field, got %q", rec.Interface)
	}
}

func TestRecord_CloneIsDeep(t *testing.T) {
	rec := &Record{Name: "r", Extra: map[string]string{"k": "v"}}
	c := rec.Clone()
	c.Name = "other"
	c.Extra["k"] = "changed"

	if rec.Name != "r" || rec.Extra["k"] != "v" {
		t.Errorf("Clone shares state with original: %+v", rec)
	}
}

func TestRecord_Equal(t *testing.T) {
	a := validRoutes()[0]
	b := validRoutes()[0]
	if !a.Equal(b) {
		t.Error("Expected identical records to be equal")
	}
	b.Options = ""
	if a.Equal(b) {
		t.Error("Expected records with a missing field to differ")
	}
	b.Options = "table 200"
	b.Set("metric", "1")
	if a.Equal(b) {
		t.Error("Expected extra keys to be compared")
	}
}

func TestRecord_JSON(t *testing.T) {
	rec := &Record{Name: "default", Interface: "$appout", Extra: map[string]string{"metric": "5"}}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"name":"default","interface":"$appout","metric":"5"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(rec) {
		t.Errorf("Unmarshal = %+v, want %+v", back, rec)
	}
}

func TestRecord_UnmarshalRejectsNonStrings(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(`{"name": 1}`), &rec); err == nil {
		t.Error("Expected error for a non-string value")
	}
}
