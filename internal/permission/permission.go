// Package permission holds the authorization rules shared by all services.
// Every check is a pure function of the caller and, where relevant, the
// owner of the resource and the request method.
package permission

import (
	"net/http"

	"clinic-services/internal/domain/entity"
)

// Principal is the authenticated caller.
type Principal struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Roles     entity.RoleSet
}

func (p *Principal) authenticated() bool {
	return p != nil && p.ID != 0
}

func (p *Principal) Is(id int64) bool {
	return p.authenticated() && p.ID == id
}

// IsSafeMethod reports whether method only reads state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func HasAny(p *Principal, roles ...entity.Role) bool {
	return p.authenticated() && p.Roles.HasAny(roles...)
}

func IsAdmin(p *Principal) bool {
	return HasAny(p, entity.RoleAdmin)
}

// IsAdminOrReadOnly allows any authenticated read and admin writes.
func IsAdminOrReadOnly(p *Principal, method string) bool {
	return p.authenticated() && (IsSafeMethod(method) || IsAdmin(p))
}

func IsAdminOrManager(p *Principal) bool {
	return HasAny(p, entity.RoleAdmin, entity.RoleManager)
}

func IsStaff(p *Principal) bool {
	return HasAny(p, entity.RoleAdmin, entity.RoleManager, entity.RoleDoctor)
}

// IsAdminOrManagerOrReadOnly guards timetable writes.
func IsAdminOrManagerOrReadOnly(p *Principal, method string) bool {
	return p.authenticated() && (IsSafeMethod(method) || IsAdminOrManager(p))
}

// CanCancelAppointment allows the patient who booked it or an admin or manager.
func CanCancelAppointment(p *Principal, patientID int64) bool {
	return p.Is(patientID) || IsAdminOrManager(p)
}

// CanWriteDocument allows the roles that create and edit documents.
func CanWriteDocument(p *Principal) bool {
	return IsStaff(p)
}

// CanAccessDocument lets staff read and write, and lets the patient only read.
func CanAccessDocument(p *Principal, patientID int64, method string) bool {
	if IsStaff(p) {
		return true
	}
	return IsSafeMethod(method) && p.Is(patientID)
}

// CanReadPatientHistory allows doctors and the patient themselves.
func CanReadPatientHistory(p *Principal, patientID int64) bool {
	return HasAny(p, entity.RoleDoctor) || p.Is(patientID)
}
