package backend

import "go.mongodb.org/mongo-driver/bson"

// Per-operation response payloads. Field names follow the wire
// contract; `doc` and `value` are serialized even when null so clients
// can distinguish "no match" from a malformed response.

type FindOneResult struct {
	Doc bson.M `json:"doc"`
}

type FindResult struct {
	Docs []bson.M `json:"docs"`
}

type InsertOneResult struct {
	InsertedID any `json:"insertedId"`
}

type InsertManyResult struct {
	InsertedIDs   []any `json:"insertedIds"`
	InsertedCount int   `json:"insertedCount"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedID    any   `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

type FindOneAndUpdateResult struct {
	Value bson.M `json:"value"`
}
