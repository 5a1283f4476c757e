package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-services/config"
	"clinic-services/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var testBreaker = config.BreakerConfig{
	MaxRequests:  1,
	Interval:     time.Minute,
	Timeout:      time.Minute,
	MinRequests:  3,
	FailureRatio: 0.6,
}

func newClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *ServiceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewServiceClient("hospital", srv.URL, timeout, testBreaker, logrus.New())
}

func TestHTTPExistenceChecker_Answers(t *testing.T) {
	svc := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/Hospitals/Exists/1":
			w.Write([]byte(`{"exists":true}`))
		case "/api/Hospitals/Exists/2":
			w.Write([]byte(`{"exists":false}`))
		case "/api/Hospitals/RoomExists/1/Room A":
			w.Write([]byte(`{"exists":true}`))
		default:
			http.NotFound(w, r)
		}
	}, time.Second)
	checker := NewHTTPExistenceChecker(svc, svc)

	tests := []struct {
		name string
		call func() (bool, error)
		want bool
	}{
		{"hospital exists", func() (bool, error) { return checker.HospitalExists(context.Background(), 1) }, true},
		{"hospital flagged absent", func() (bool, error) { return checker.HospitalExists(context.Background(), 2) }, false},
		{"hospital 404", func() (bool, error) { return checker.HospitalExists(context.Background(), 3) }, false},
		{"room with space", func() (bool, error) { return checker.HospitalRoomExists(context.Background(), 1, "Room A") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPExistenceChecker_ServerErrorIsUnavailable(t *testing.T) {
	svc := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, time.Second)
	checker := NewHTTPExistenceChecker(svc, svc)

	_, err := checker.HospitalExists(context.Background(), 1)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Errorf("got %v, want ErrDependencyUnavailable", err)
	}
}

func TestHTTPExistenceChecker_Timeout(t *testing.T) {
	svc := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"exists":true}`))
	}, 20*time.Millisecond)
	checker := NewHTTPExistenceChecker(svc, svc)

	_, err := checker.DoctorExists(context.Background(), 1)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Errorf("got %v, want ErrDependencyUnavailable", err)
	}
}

func TestServiceClient_BreakerOpens(t *testing.T) {
	calls := 0
	svc := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}, time.Second)

	for i := 0; i < 5; i++ {
		if _, err := svc.exists(context.Background(), "/api/Hospitals/Exists/1"); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("call %d: got %v", i, err)
		}
	}
	if calls != 3 {
		t.Errorf("server saw %d calls, want 3 before the circuit opened", calls)
	}
}

func TestServiceClient_CallerCancelDoesNotTrip(t *testing.T) {
	svc := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"exists":true}`))
	}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, err := svc.exists(ctx, "/api/Hospitals/Exists/1")
		if !errors.Is(err, context.Canceled) || errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("call %d: got %v, want context.Canceled", i, err)
		}
	}
	if state := svc.cb.State(); state != gobreaker.StateClosed {
		t.Fatalf("breaker %s after caller cancellations", state)
	}

	ok, err := svc.exists(context.Background(), "/api/Hospitals/Exists/1")
	if err != nil || !ok {
		t.Errorf("exists = %v, %v", ok, err)
	}
}

func TestAccountClient_Me(t *testing.T) {
	svc := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":4,"username":"doc","firstName":"D","lastName":"R","roles":["Doctor","User"]}`))
	}, time.Second)
	accounts := NewAccountClient(svc)

	p, err := accounts.Me(context.Background(), "good")
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if p.ID != 4 || !p.Roles.Has(entity.RoleDoctor) {
		t.Errorf("unexpected principal %+v", p)
	}

	if _, err := accounts.Me(context.Background(), "bad"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("got %v, want ErrUnauthenticated", err)
	}
}

func TestMemoryExistenceChecker(t *testing.T) {
	m := NewMemoryExistenceChecker()
	m.AddHospital(1, "101")
	m.AddDoctor(2)

	if ok, _ := m.HospitalRoomExists(context.Background(), 1, "102"); ok {
		t.Error("unknown room reported")
	}
	if ok, _ := m.UserExists(context.Background(), 2); !ok {
		t.Error("doctor should also be a user")
	}

	m.Err = ErrDependencyUnavailable
	if _, err := m.DoctorExists(context.Background(), 2); !errors.Is(err, ErrDependencyUnavailable) {
		t.Errorf("got %v", err)
	}
}
