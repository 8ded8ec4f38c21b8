package cart

import (
	"context"
	"fmt"

	"github.com/choppersalon/platform/internal/storage"
)

// Store persists cart state in the key-value store, one blob per session.
type Store struct {
	kv storage.Store
}

// NewStore creates a cart store.
func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Get loads the cart for a session, empty when absent.
func (s *Store) Get(ctx context.Context, sessionID string) (*State, error) {
	var state State
	found, err := s.kv.GetJSON(ctx, cartKey(sessionID), &state)
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	if !found {
		return &State{}, nil
	}
	return &state, nil
}

// Put writes the cart immediately, so it survives reloads.
func (s *Store) Put(ctx context.Context, sessionID string, state *State) error {
	if err := s.kv.SetJSON(ctx, cartKey(sessionID), state); err != nil {
		return fmt.Errorf("cart: save: %w", err)
	}
	return nil
}
