// Package client talks to sibling services.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"clinic-services/config"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var (
	// ErrDependencyUnavailable means the sibling could not answer: timeout,
	// transport failure, 5xx, unreadable body or an open circuit. It is never
	// returned for an entity that simply does not exist.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUnauthenticated       = errors.New("credentials rejected by account service")
)

// ServiceClient issues JSON GET requests to one sibling service through a
// circuit breaker. Only dependency failures count against the breaker; 4xx
// answers are results.
type ServiceClient struct {
	name    string
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	log     *logrus.Logger
}

func NewServiceClient(name, baseURL string, timeout time.Duration, bc config.BreakerConfig, log *logrus.Logger) *ServiceClient {
	minRequests := bc.MinRequests
	ratio := bc.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= ratio
		},
		// A caller that went away says nothing about the dependency.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"dependency": name,
				"from":       from.String(),
				"to":         to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &ServiceClient{
		name:    name,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cb:      cb,
		log:     log,
	}
}

type reply struct {
	status int
	body   []byte
}

// get performs GET baseURL+path. A non-nil error is ErrDependencyUnavailable,
// or context.Canceled when the caller gave up first.
func (c *ServiceClient) get(ctx context.Context, path string, header http.Header) (*reply, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range header {
			req.Header[k] = v
		}

		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		if err != nil {
			return nil, err
		}
		if res.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%s responded %d", c.name, res.StatusCode)
		}
		return &reply{status: res.StatusCode, body: body}, nil
	})
	if err != nil && errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil, fmt.Errorf("%s %s: %w", c.name, path, ctx.Err())
	}
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"dependency": c.name,
			"path":       path,
		}).Warnf("Dependency call failed: %v", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, c.name, err)
	}
	return result.(*reply), nil
}

type existsBody struct {
	Exists bool `json:"exists"`
}

// exists asks an {exists} endpoint. Any non-200 answer below 500 means false.
func (c *ServiceClient) exists(ctx context.Context, path string) (bool, error) {
	r, err := c.get(ctx, path, nil)
	if err != nil {
		return false, err
	}
	if r.status != http.StatusOK {
		return false, nil
	}

	var body existsBody
	if err := json.Unmarshal(r.body, &body); err != nil {
		return false, fmt.Errorf("%w: %s: malformed exists body: %v", ErrDependencyUnavailable, c.name, err)
	}
	return body.Exists, nil
}
