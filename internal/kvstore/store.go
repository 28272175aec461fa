// Package kvstore provides the durable key-to-document medium underlying
// all entity repositories. A document is an opaque JSON payload; the
// backends (file, redis, postgres) only move bytes.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Well-known document keys shared by the entity repositories.
const (
	KeyProducts    = "products"
	KeyOrders      = "orders"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"

	// CartKeyPrefix prefixes the per-identity cart keys.
	CartKeyPrefix = "cart_"
)

// ErrKeyNotFound is returned by Read when no document exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the persisted key-value contract. Write replaces the whole
// document for a key; there are no partial or incremental writes.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, doc []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CartKey returns the document key holding the cart for one identity.
func CartKey(customerID string) string {
	return CartKeyPrefix + customerID
}

// Load reads and decodes the document at key into v. Missing keys,
// unreadable media and undecodable payloads all report false: callers
// fall back to default/empty state rather than propagating a fault,
// since there is no alternative medium to fail over to.
func Load(ctx context.Context, s Store, key string, v interface{}) bool {
	doc, err := s.Read(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(doc, v); err != nil {
		return false
	}
	return true
}

// Save encodes v and writes it as the whole document for key.
func Save(ctx context.Context, s Store, key string, v interface{}) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Write(ctx, key, doc)
}
