package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleDoctor  Role = "Doctor"
	RoleUser    Role = "User"
)

// BaseRole is held by every account regardless of what was requested.
const BaseRole = RoleUser

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleDoctor, RoleUser:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// RoleSet is an unordered set of roles. It serializes as a sorted JSON array
// both on the wire and in the roles column.
type RoleSet struct {
	m map[Role]struct{}
}

// NewRoleSet builds a set containing roles plus the base role.
func NewRoleSet(roles ...Role) RoleSet {
	s := RoleSet{m: make(map[Role]struct{}, len(roles)+1)}
	s.Add(BaseRole)
	for _, r := range roles {
		s.Add(r)
	}
	return s
}

// ParseRoleSet converts raw names, rejecting anything that is not a known role.
func ParseRoleSet(names []string) (RoleSet, error) {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return RoleSet{}, err
		}
		roles = append(roles, r)
	}
	return NewRoleSet(roles...), nil
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s.m[r]
	return ok
}

// HasAny reports whether at least one of roles is present.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

func (s *RoleSet) Add(r Role) {
	if s.m == nil {
		s.m = make(map[Role]struct{})
	}
	s.m[r] = struct{}{}
}

func (s RoleSet) Len() int {
	return len(s.m)
}

// Slice returns the members in sorted order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s.m))
	for r := range s.m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s RoleSet) Strings() []string {
	roles := s.Slice()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParseRoleSet(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s RoleSet) Value() (driver.Value, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *RoleSet) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = NewRoleSet()
		return nil
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("failed to scan roles value: %v", value)
	}
}
