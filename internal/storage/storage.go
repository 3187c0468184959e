package storage

import (
	"context"
	"errors"
)

// Kind partitions the key space by record type
type Kind string

const (
	KindReading Kind = "reading"
	KindAlert   Kind = "alert"
	KindTrend   Kind = "trend"
)

var (
	// ErrNotFound is returned when a key has no record
	ErrNotFound = errors.New("record not found")

	// ErrDecode is returned when a stored value cannot be decoded
	ErrDecode = errors.New("record decode failed")
)

// Record is one stored entry. Value holds the JSON encoding of the domain
// record; CreatedAt is unix nanoseconds and defines list order.
type Record struct {
	Key       string
	Kind      Kind
	Value     []byte
	CreatedAt int64
}

// Store is an append-only keyed store partitioned by record kind. Appending
// an existing key overwrites it; List returns records in creation order.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Get(ctx context.Context, kind Kind, key string) (Record, error)
	List(ctx context.Context, kind Kind) ([]Record, error)
	Ping(ctx context.Context) error
	Close() error
}
