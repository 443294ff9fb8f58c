package statestore

import (
	"context"
	"time"
)

// Data is what a login attempt parks under its state token until the
// provider redirects back.
type Data struct {
	Nonce     string    `json:"nonce"`
	ReturnTo  string    `json:"return_to"`
	CreatedAt time.Time `json:"created_at"`
}

type Store interface {
	Put(ctx context.Context, state string, data Data) error

	// Get returns false when the state is unknown or expired. An expired
	// entry is removed on read.
	Get(ctx context.Context, state string) (Data, bool, error)

	Delete(ctx context.Context, state string) error
}
