// Package session persists the signed-in user between console restarts,
// the way a browser keeps it in local storage: two string keys, one for
// the token and one for the user as JSON.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"clinic-console-api/internal/model"
)

const (
	TokenKey = "amsc_auth_token"
	UserKey  = "amsc_user_data"
)

// Storage is a string key-value store. Get reports ok=false for a
// missing key; Remove of a missing key is not an error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

func Save(ctx context.Context, st Storage, s model.Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := st.Set(ctx, TokenKey, s.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := st.Set(ctx, UserKey, string(user)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Clear removes both keys, attempting each even if the first fails.
func Clear(ctx context.Context, st Storage) error {
	return errors.Join(st.Remove(ctx, TokenKey), st.Remove(ctx, UserKey))
}

// Bootstrap restores a stored session without contacting any service.
// When either key is missing or empty, or the user JSON does not decode
// to an object, both keys are cleared and ok is false.
func Bootstrap(ctx context.Context, st Storage) (s model.Session, ok bool, err error) {
	token, hasToken, err := st.Get(ctx, TokenKey)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("read token: %w", err)
	}
	raw, hasUser, err := st.Get(ctx, UserKey)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("read user: %w", err)
	}
	if hasToken && hasUser && token != "" && raw != "" {
		var u *model.User
		if json.Unmarshal([]byte(raw), &u) == nil && u != nil {
			return model.Session{User: *u, Token: token}, true, nil
		}
	}
	if err := Clear(ctx, st); err != nil {
		return model.Session{}, false, err
	}
	return model.Session{}, false, nil
}
