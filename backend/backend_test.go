package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakePool records the key it was asked for and fails with a sentinel,
// which stops Run before it would need a live client.
type fakePool struct {
	lastKey string
	err     error
}

func (f *fakePool) Acquire(_ context.Context, key string) (*mongo.Client, error) {
	f.lastKey = key
	return nil, f.err
}
func (f *fakePool) Len() int     { return 0 }
func (f *fakePool) Close() error { return nil }

var errStop = errors.New("stop before backend call")

// Run must validate before touching the pool.
func TestService_Run_ValidatesFirst(t *testing.T) {
	t.Parallel()

	p := &fakePool{err: errStop}
	svc := NewService(p, "mongodb://default:27017", zerolog.Nop())

	_, err := svc.Run(context.Background(), &Request{Op: OpFindOne, DB: "appdb", Collection: "users"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Empty(t, p.lastKey, "pool must not be touched for invalid requests")
}

// A request without mongodbUri falls back to the configured default.
func TestService_Run_DefaultURI(t *testing.T) {
	t.Parallel()

	p := &fakePool{err: errStop}
	svc := NewService(p, "mongodb://default:27017", zerolog.Nop())

	_, err := svc.Run(context.Background(), &Request{
		Op: OpFind, DB: "appdb", Collection: "users",
	})
	require.ErrorIs(t, err, errStop)
	require.Equal(t, "mongodb://default:27017", p.lastKey)
}

// A request naming a backend uses it verbatim as the pool key.
func TestService_Run_ExplicitURI(t *testing.T) {
	t.Parallel()

	p := &fakePool{err: errStop}
	svc := NewService(p, "mongodb://default:27017", zerolog.Nop())

	_, err := svc.Run(context.Background(), &Request{
		Op: OpFindOne, DB: "appdb", Collection: "users",
		URI:    "mongodb://tenant-7:27017",
		Filter: bson.M{"name": "ada"},
	})
	require.ErrorIs(t, err, errStop)
	require.Equal(t, "mongodb://tenant-7:27017", p.lastKey)
}

// Pool errors propagate untouched so the HTTP layer can classify them.
func TestService_Run_PoolErrorPassthrough(t *testing.T) {
	t.Parallel()

	p := &fakePool{err: errStop}
	svc := NewService(p, "mongodb://default:27017", zerolog.Nop())

	_, err := svc.Run(context.Background(), &Request{
		Op: OpDeleteOne, DB: "appdb", Collection: "users",
		Filter: bson.M{"name": "ada"},
	})
	require.ErrorIs(t, err, errStop)
}
