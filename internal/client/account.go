package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-services/internal/domain/entity"
	"clinic-services/internal/permission"
)

// AccountClient resolves bearer tokens through the account service.
type AccountClient struct {
	svc *ServiceClient
}

func NewAccountClient(svc *ServiceClient) *AccountClient {
	return &AccountClient{svc: svc}
}

type meBody struct {
	ID        int64          `json:"id"`
	Username  string         `json:"username"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Roles     entity.RoleSet `json:"roles"`
}

// Me returns the caller behind accessToken.
func (c *AccountClient) Me(ctx context.Context, accessToken string) (*permission.Principal, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)

	r, err := c.svc.get(ctx, "/api/Accounts/Me", header)
	if err != nil {
		return nil, err
	}
	if r.status != http.StatusOK {
		return nil, ErrUnauthenticated
	}

	var body meBody
	if err := json.Unmarshal(r.body, &body); err != nil {
		return nil, fmt.Errorf("%w: account: malformed profile: %v", ErrDependencyUnavailable, err)
	}
	if body.ID == 0 {
		return nil, ErrUnauthenticated
	}

	return &permission.Principal{
		ID:        body.ID,
		Username:  body.Username,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Roles:     body.Roles,
	}, nil
}
