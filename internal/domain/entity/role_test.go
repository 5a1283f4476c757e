package entity

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestNewRoleSet_AlwaysHoldsBaseRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
		want  []string
	}{
		{"empty", nil, []string{"User"}},
		{"doctor only", []Role{RoleDoctor}, []string{"Doctor", "User"}},
		{"duplicates", []Role{RoleAdmin, RoleAdmin, RoleUser, RoleUser}, []string{"Admin", "User"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRoleSet(tt.roles...).Strings()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRoleSet_RejectsUnknown(t *testing.T) {
	_, err := ParseRoleSet([]string{"Doctor", "Janitor"})
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("got %v, want ErrUnknownRole", err)
	}
}

func TestRoleSet_JSONRoundTrip(t *testing.T) {
	var s RoleSet
	if err := json.Unmarshal([]byte(`["Manager","Manager"]`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !s.Has(RoleManager) || !s.Has(RoleUser) || s.Len() != 2 {
		t.Errorf("unexpected set %v", s.Strings())
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["Manager","User"]` {
		t.Errorf("got %s", b)
	}
}

func TestRoleSet_Scan(t *testing.T) {
	var s RoleSet
	if err := s.Scan(`["Doctor"]`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !s.HasAny(RoleAdmin, RoleDoctor) {
		t.Error("expected Doctor in set")
	}
	if err := s.Scan(42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestUser_BeforeSaveAddsBaseRole(t *testing.T) {
	u := &User{Username: "x"}
	if err := u.BeforeSave(nil); err != nil {
		t.Fatal(err)
	}
	if !u.Roles.Has(RoleUser) {
		t.Error("base role missing after BeforeSave")
	}
}
