package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"clinic-services/internal/domain/entity"
)

// EntityExistenceChecker validates references held across service boundaries.
type EntityExistenceChecker interface {
	HospitalExists(ctx context.Context, id int64) (bool, error)
	HospitalRoomExists(ctx context.Context, id int64, room string) (bool, error)
	DoctorExists(ctx context.Context, id int64) (bool, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

type HTTPExistenceChecker struct {
	accounts  *ServiceClient
	hospitals *ServiceClient
}

func NewHTTPExistenceChecker(accounts, hospitals *ServiceClient) *HTTPExistenceChecker {
	return &HTTPExistenceChecker{accounts: accounts, hospitals: hospitals}
}

func (c *HTTPExistenceChecker) HospitalExists(ctx context.Context, id int64) (bool, error) {
	return c.hospitals.exists(ctx, fmt.Sprintf("/api/Hospitals/Exists/%d", id))
}

func (c *HTTPExistenceChecker) HospitalRoomExists(ctx context.Context, id int64, room string) (bool, error) {
	return c.hospitals.exists(ctx, fmt.Sprintf("/api/Hospitals/RoomExists/%d/%s", id, url.PathEscape(room)))
}

func (c *HTTPExistenceChecker) DoctorExists(ctx context.Context, id int64) (bool, error) {
	return c.accounts.exists(ctx, fmt.Sprintf("/api/Accounts/Exists/%s/%d", entity.RoleDoctor, id))
}

func (c *HTTPExistenceChecker) UserExists(ctx context.Context, id int64) (bool, error) {
	return c.accounts.exists(ctx, fmt.Sprintf("/api/Accounts/Exists/%s/%d", entity.RoleUser, id))
}

// MemoryExistenceChecker answers from in-process maps. Setting Err makes
// every call fail with it.
type MemoryExistenceChecker struct {
	mu        sync.RWMutex
	hospitals map[int64][]string
	doctors   map[int64]bool
	users     map[int64]bool
	Err       error
}

func NewMemoryExistenceChecker() *MemoryExistenceChecker {
	return &MemoryExistenceChecker{
		hospitals: make(map[int64][]string),
		doctors:   make(map[int64]bool),
		users:     make(map[int64]bool),
	}
}

func (m *MemoryExistenceChecker) AddHospital(id int64, rooms ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hospitals[id] = rooms
}

// AddDoctor registers a doctor, who is also a user.
func (m *MemoryExistenceChecker) AddDoctor(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doctors[id] = true
	m.users[id] = true
}

func (m *MemoryExistenceChecker) AddUser(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = true
}

func (m *MemoryExistenceChecker) HospitalExists(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.hospitals[id]
	return ok, nil
}

func (m *MemoryExistenceChecker) HospitalRoomExists(ctx context.Context, id int64, room string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return false, m.Err
	}
	for _, r := range m.hospitals[id] {
		if r == room {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryExistenceChecker) DoctorExists(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return false, m.Err
	}
	return m.doctors[id], nil
}

func (m *MemoryExistenceChecker) UserExists(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return false, m.Err
	}
	return m.users[id], nil
}
