package permission

import (
	"net/http"
	"testing"

	"clinic-services/internal/domain/entity"
)

func principal(id int64, roles ...entity.Role) *Principal {
	return &Principal{ID: id, Roles: entity.NewRoleSet(roles...)}
}

func TestIsAdminOrReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		p      *Principal
		method string
		want   bool
	}{
		{"anonymous read", nil, http.MethodGet, false},
		{"user read", principal(1), http.MethodGet, true},
		{"user write", principal(1), http.MethodPost, false},
		{"admin write", principal(1, entity.RoleAdmin), http.MethodDelete, true},
		{"manager write", principal(1, entity.RoleManager), http.MethodPut, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdminOrReadOnly(tt.p, tt.method); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCancelAppointment(t *testing.T) {
	tests := []struct {
		name      string
		p         *Principal
		patientID int64
		want      bool
	}{
		{"owner", principal(7), 7, true},
		{"other patient", principal(8), 7, false},
		{"doctor", principal(8, entity.RoleDoctor), 7, false},
		{"manager", principal(8, entity.RoleManager), 7, true},
		{"admin", principal(8, entity.RoleAdmin), 7, true},
		{"anonymous", nil, 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCancelAppointment(tt.p, tt.patientID); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessDocument(t *testing.T) {
	tests := []struct {
		name   string
		p      *Principal
		method string
		want   bool
	}{
		{"patient reads own", principal(3), http.MethodGet, true},
		{"patient edits own", principal(3), http.MethodPut, false},
		{"stranger reads", principal(4), http.MethodGet, false},
		{"doctor edits", principal(4, entity.RoleDoctor), http.MethodPut, true},
		{"manager reads", principal(4, entity.RoleManager), http.MethodGet, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessDocument(tt.p, 3, tt.method); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanReadPatientHistory(t *testing.T) {
	if !CanReadPatientHistory(principal(3), 3) {
		t.Error("patient denied own history")
	}
	if CanReadPatientHistory(principal(4, entity.RoleManager), 3) {
		t.Error("manager allowed to read history")
	}
	if !CanReadPatientHistory(principal(4, entity.RoleDoctor), 3) {
		t.Error("doctor denied history")
	}
}

func TestIsAdminOrManagerOrReadOnly(t *testing.T) {
	if !IsAdminOrManagerOrReadOnly(principal(1), http.MethodGet) {
		t.Error("read denied")
	}
	if IsAdminOrManagerOrReadOnly(principal(1, entity.RoleDoctor), http.MethodDelete) {
		t.Error("doctor allowed to delete")
	}
	if !IsAdminOrManagerOrReadOnly(principal(1, entity.RoleManager), http.MethodDelete) {
		t.Error("manager denied delete")
	}
}

func TestCanWriteDocument(t *testing.T) {
	tests := []struct {
		name string
		p    *Principal
		want bool
	}{
		{"anonymous", nil, false},
		{"user", principal(3), false},
		{"doctor", principal(4, entity.RoleDoctor), true},
		{"manager", principal(4, entity.RoleManager), true},
		{"admin", principal(4, entity.RoleAdmin), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWriteDocument(tt.p); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
