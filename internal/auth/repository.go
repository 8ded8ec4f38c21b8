package auth

import (
	"context"
	"sync"

	"github.com/choppersalon/platform/internal/storage"
)

// Repository defines the interface for credential storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	Insert(ctx context.Context, cred *Credential) error
	List(ctx context.Context) ([]Credential, error)
}

// credentialDB is the serialized shape of the mock credential database: a
// single JSON blob holding every record.
type credentialDB struct {
	Users []Credential `json:"users"`
}

// KVRepository keeps the credential records as one JSON blob in the
// persisted key-value store, preserving the storefront's mock-database
// layout.
type KVRepository struct {
	kv  storage.Store
	key string

	mu sync.Mutex
}

// NewKVRepository creates a repository persisting under the given key.
func NewKVRepository(kv storage.Store, key string) *KVRepository {
	if key == "" {
		key = "authdb"
	}
	return &KVRepository{kv: kv, key: key}
}

func (r *KVRepository) load(ctx context.Context) (*credentialDB, error) {
	var db credentialDB
	if _, err := r.kv.GetJSON(ctx, r.key, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// GetByEmail finds the record with exactly this email. The match is
// case-sensitive.
func (r *KVRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	db, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range db.Users {
		if db.Users[i].Email == email {
			cred := db.Users[i]
			return &cred, nil
		}
	}
	return nil, ErrUserNotFound
}

// Insert appends a record, enforcing email uniqueness.
func (r *KVRepository) Insert(ctx context.Context, cred *Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range db.Users {
		if db.Users[i].Email == cred.Email {
			return ErrEmailTaken
		}
	}
	db.Users = append(db.Users, *cred)
	return r.kv.SetJSON(ctx, r.key, db)
}

// List returns every stored record.
func (r *KVRepository) List(ctx context.Context) ([]Credential, error) {
	db, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return db.Users, nil
}
