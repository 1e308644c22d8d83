package backend

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Op identifies a backend operation. The zero value is invalid; use
// ParseOp on the path segment from the HTTP layer.
type Op string

const (
	OpFindOne          Op = "findOne"
	OpInsertOne        Op = "insertOne"
	OpUpdateOne        Op = "updateOne"
	OpDeleteOne        Op = "deleteOne"
	OpFind             Op = "find"
	OpFindOneAndUpdate Op = "findOneAndUpdate"
	OpInsertMany       Op = "insertMany"
)

var ops = map[string]Op{
	"findOne":          OpFindOne,
	"insertOne":        OpInsertOne,
	"updateOne":        OpUpdateOne,
	"deleteOne":        OpDeleteOne,
	"find":             OpFind,
	"findOneAndUpdate": OpFindOneAndUpdate,
	"insertMany":       OpInsertMany,
}

// ParseOp maps an operation name to its Op, reporting whether the name
// is known.
func ParseOp(s string) (Op, bool) {
	op, ok := ops[s]
	return op, ok
}

// Request is the decoded JSON body of a proxy call, discriminated by Op.
// Which fields are required depends on the operation; Validate enforces
// that before dispatch so handlers never probe properties ad hoc.
type Request struct {
	Op Op `json:"-"`

	// URI selects the backend; empty means the configured default.
	URI        string `json:"mongodbUri"`
	DB         string `json:"db"`
	Collection string `json:"collection"`

	Filter    bson.M        `json:"filter"`
	Document  bson.M        `json:"document"`
	Documents []bson.M      `json:"documents"`
	Update    bson.M        `json:"update"`
	Options   *QueryOptions `json:"options"`
}

// Validate checks the operation-specific required fields.
// It returns a *ValidationError (mapped to 400 at the HTTP boundary)
// on the first missing field.
func (r *Request) Validate() error {
	if r.DB == "" {
		return missingField("db")
	}
	if r.Collection == "" {
		return missingField("collection")
	}
	switch r.Op {
	case OpFind:
		// filter is optional and defaults to match-all
	case OpFindOne, OpDeleteOne:
		if r.Filter == nil {
			return missingField("filter")
		}
	case OpUpdateOne, OpFindOneAndUpdate:
		if r.Filter == nil {
			return missingField("filter")
		}
		if r.Update == nil {
			return missingField("update")
		}
	case OpInsertOne:
		if r.Document == nil {
			return missingField("document")
		}
	case OpInsertMany:
		if len(r.Documents) == 0 {
			return missingField("documents")
		}
	default:
		return &ValidationError{Msg: "unknown operation"}
	}
	return nil
}

// filterOrAll returns the request filter, defaulting to match-all.
func (r *Request) filterOrAll() bson.M {
	if r.Filter == nil {
		return bson.M{}
	}
	return r.Filter
}

// QueryOptions carries the optional `options` object of a request.
// All fields are optional; a nil *QueryOptions behaves like the empty
// object.
type QueryOptions struct {
	Limit          *int64 `json:"limit"`
	Skip           *int64 `json:"skip"`
	Sort           bson.M `json:"sort"`
	Projection     bson.M `json:"projection"`
	Upsert         *bool  `json:"upsert"`
	ReturnDocument string `json:"returnDocument"` // "before" (default) or "after"
}

func (q *QueryOptions) findOpts() *options.FindOptions {
	fo := options.Find()
	if q == nil {
		return fo
	}
	if q.Limit != nil {
		fo.SetLimit(*q.Limit)
	}
	if q.Skip != nil {
		fo.SetSkip(*q.Skip)
	}
	if q.Sort != nil {
		fo.SetSort(q.Sort)
	}
	if q.Projection != nil {
		fo.SetProjection(q.Projection)
	}
	return fo
}

func (q *QueryOptions) findOneOpts() *options.FindOneOptions {
	fo := options.FindOne()
	if q == nil {
		return fo
	}
	if q.Skip != nil {
		fo.SetSkip(*q.Skip)
	}
	if q.Sort != nil {
		fo.SetSort(q.Sort)
	}
	if q.Projection != nil {
		fo.SetProjection(q.Projection)
	}
	return fo
}

func (q *QueryOptions) updateOpts() *options.UpdateOptions {
	uo := options.Update()
	if q == nil {
		return uo
	}
	if q.Upsert != nil {
		uo.SetUpsert(*q.Upsert)
	}
	return uo
}

func (q *QueryOptions) findOneAndUpdateOpts() *options.FindOneAndUpdateOptions {
	fo := options.FindOneAndUpdate()
	if q == nil {
		return fo
	}
	if q.Upsert != nil {
		fo.SetUpsert(*q.Upsert)
	}
	if q.Projection != nil {
		fo.SetProjection(q.Projection)
	}
	if q.Sort != nil {
		fo.SetSort(q.Sort)
	}
	if q.ReturnDocument == "after" {
		fo.SetReturnDocument(options.After)
	}
	return fo
}
