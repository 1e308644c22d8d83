// Package backend executes proxied operations against MongoDB through
// connections borrowed from the pool.
package backend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/DoubleNemesis/mongo-test/internal/util"
	"github.com/DoubleNemesis/mongo-test/pool"
)

const (
	dialTimeout       = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

// Dial establishes a client for uri and verifies it with a ping, so a
// pooled entry is live by the time it is published. Shaped for use as
// the pool's DialFunc.
func Dial(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(dialTimeout))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Releaser returns an OnEvict callback that disconnects evicted clients
// in the background. The pool invokes callbacks under its lock, so the
// actual disconnect runs in a goroutine.
func Releaser(log zerolog.Logger) func(key string, c *mongo.Client, reason pool.EvictReason) {
	return func(key string, c *mongo.Client, reason pool.EvictReason) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
			defer cancel()
			if err := c.Disconnect(ctx); err != nil {
				log.Warn().
					Err(err).
					Str("uri", util.Fingerprint(key)).
					Msg("disconnect evicted client")
			}
		}()
	}
}

// Service runs validated requests against the backend selected by each
// request's URI, borrowing connections from the pool.
type Service struct {
	pool       pool.Pool[*mongo.Client]
	defaultURI string
	log        zerolog.Logger
}

// NewService constructs a Service. defaultURI is used when a request
// does not name a backend.
func NewService(p pool.Pool[*mongo.Client], defaultURI string, log zerolog.Logger) *Service {
	return &Service{pool: p, defaultURI: defaultURI, log: log}
}

// Run validates req, acquires the backend connection, and dispatches
// the operation. The returned payload is ready for JSON encoding.
// Failures surface as *ValidationError, pool errors, *DuplicateKeyError
// or *OperationError; nothing is swallowed and nothing is retried here.
func (s *Service) Run(ctx context.Context, req *Request) (any, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	uri := req.URI
	if uri == "" {
		uri = s.defaultURI
	}
	client, err := s.pool.Acquire(ctx, uri)
	if err != nil {
		return nil, err
	}
	coll := client.Database(req.DB).Collection(req.Collection)

	s.log.Debug().
		Str("op", string(req.Op)).
		Str("db", req.DB).
		Str("collection", req.Collection).
		Str("uri", util.Fingerprint(uri)).
		Msg("dispatch")

	switch req.Op {
	case OpFindOne:
		return s.findOne(ctx, coll, req)
	case OpFind:
		return s.find(ctx, coll, req)
	case OpInsertOne:
		return s.insertOne(ctx, coll, req)
	case OpInsertMany:
		return s.insertMany(ctx, coll, req)
	case OpUpdateOne:
		return s.updateOne(ctx, coll, req)
	case OpDeleteOne:
		return s.deleteOne(ctx, coll, req)
	case OpFindOneAndUpdate:
		return s.findOneAndUpdate(ctx, coll, req)
	}
	// Validate rejects unknown ops before dispatch.
	return nil, &ValidationError{Msg: "unknown operation"}
}

func (s *Service) findOne(ctx context.Context, coll *mongo.Collection, req *Request) (any, error) {
	var doc bson.M
	err := coll.FindOne(ctx, req.filterOrAll(), req.Options.findOneOpts()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return FindOneResult{}, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return FindOneResult{Doc: doc}, nil
}

func (s *Service) find(ctx context.Context, coll *mongo.Collection, req *Request) (any, error) {
	cur, err := coll.Find(ctx, req.filterOrAll(), req.Options.findOpts())
	if err != nil {
		return nil, translate(err)
	}
	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}
	return FindResult{Docs: docs}, nil
}

func (s *Service) insertOne(ctx context.Context, coll *mongo.Collection, req *Request) (any, error) {
	res, err := coll.InsertOne(ctx, req.Document)
	if err != nil {
		return nil, translate(err)
	}
	return InsertOneResult{InsertedID: res.InsertedID}, nil
}

func (s *Service) insertMany(ctx context.Context, coll *mongo.Collection, req *Request) (any, error) {
	docs := make([]any, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = d
	}
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, translate(err)
	}
	return InsertManyResult{
		InsertedIDs:   res.InsertedIDs,
		InsertedCount: len(res.InsertedIDs),
	}, nil
}

func (s *Service) updateOne(ctx context.Context, coll *mongo.Collection, req *Request) (any, error) {
	res, err := coll.UpdateOne(ctx, req.Filter, req.Update, req.Options.updateOpts())
	if err != nil {
		return nil, translate(err)
	}
	return UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (s *Service) deleteOne(ctx context.Context, coll *mongo.Collection, req *Request) (any, error) {
	res, err := coll.DeleteOne(ctx, req.Filter)
	if err != nil {
		return nil, translate(err)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (s *Service) findOneAndUpdate(ctx context.Context, coll *mongo.Collection, req *Request) (any, error) {
	var doc bson.M
	err := coll.FindOneAndUpdate(ctx, req.Filter, req.Update, req.Options.findOneAndUpdateOpts()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return FindOneAndUpdateResult{}, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return FindOneAndUpdateResult{Value: doc}, nil
}
