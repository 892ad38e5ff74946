package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/quantpane/quantpane/pkg/errors"
	"github.com/quantpane/quantpane/pkg/observability"
)

// Collection names in the MongoDB database.
const (
	collPages    = "pages"
	collCharts   = "charts"
	collPartners = "partners"
	collEvents   = "events"
	collSyncJobs = "sync_jobs"
)

// MongoStore is the MongoDB-backed Store used in deployments.
type MongoStore struct {
	client *mongo.Client

	pages    *mongoCollection[Page, *Page]
	charts   *mongoCollection[Chart, *Chart]
	partners *mongoCollection[Partner, *Partner]
	events   *mongoCollection[Event, *Event]
	syncJobs *mongoCollection[SyncJob, *SyncJob]
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	db := client.Database(database)
	return &MongoStore{
		client:   client,
		pages:    newMongoCollection[Page, *Page](db, collPages, errors.ErrCodePageNotFound),
		charts:   newMongoCollection[Chart, *Chart](db, collCharts, errors.ErrCodeChartNotFound),
		partners: newMongoCollection[Partner, *Partner](db, collPartners, errors.ErrCodePartnerNotFound),
		events:   newMongoCollection[Event, *Event](db, collEvents, errors.ErrCodeNotFound),
		syncJobs: newMongoCollection[SyncJob, *SyncJob](db, collSyncJobs, errors.ErrCodeNotFound),
	}, nil
}

func (s *MongoStore) Pages() Collection[Page]       { return s.pages }
func (s *MongoStore) Charts() Collection[Chart]     { return s.charts }
func (s *MongoStore) Partners() Collection[Partner] { return s.partners }
func (s *MongoStore) Events() Collection[Event]     { return s.events }
func (s *MongoStore) SyncJobs() Collection[SyncJob] { return s.syncJobs }

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)

// mongoCollection wraps one MongoDB collection with the Collection contract.
type mongoCollection[T any, PT pentity[T]] struct {
	coll     *mongo.Collection
	name     string
	notFound errors.Code
}

func newMongoCollection[T any, PT pentity[T]](db *mongo.Database, name string, notFound errors.Code) *mongoCollection[T, PT] {
	return &mongoCollection[T, PT]{
		coll:     db.Collection(name),
		name:     name,
		notFound: notFound,
	}
}

// Get retrieves a document by _id.
func (c *mongoCollection[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if err := errors.ValidateEntityID(id); err != nil {
		return nil, err
	}

	start := time.Now()
	var item T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	observability.Store().OnQuery(ctx, c.name, "get", time.Since(start))

	if err == mongo.ErrNoDocuments {
		return nil, errors.New(c.notFound, "%s %s not found", c.name, id)
	}
	if err != nil {
		observability.Store().OnError(ctx, c.name, "get", err)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "get %s %s", c.name, id)
	}
	return &item, nil
}

// List returns all documents ordered by _id.
func (c *mongoCollection[T, PT]) List(ctx context.Context) ([]T, error) {
	start := time.Now()
	cursor, err := c.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		observability.Store().OnError(ctx, c.name, "list", err)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list %s", c.name)
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		observability.Store().OnError(ctx, c.name, "list", err)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode %s", c.name)
	}
	observability.Store().OnQuery(ctx, c.name, "list", time.Since(start))
	return items, nil
}

// Put upserts a document, assigning an ID when missing.
func (c *mongoCollection[T, PT]) Put(ctx context.Context, item *T) error {
	p := PT(item)
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	}
	if err := errors.ValidateEntityID(p.GetID()); err != nil {
		return err
	}
	p.stamp(time.Now().UTC())

	start := time.Now()
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": p.GetID()}, item, options.Replace().SetUpsert(true))
	if err != nil {
		observability.Store().OnError(ctx, c.name, "put", err)
		return errors.Wrap(errors.ErrCodeStore, err, "put %s %s", c.name, p.GetID())
	}
	observability.Store().OnWrite(ctx, c.name, "put", time.Since(start))
	return nil
}

// Delete removes a document by _id.
func (c *mongoCollection[T, PT]) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateEntityID(id); err != nil {
		return err
	}

	start := time.Now()
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		observability.Store().OnError(ctx, c.name, "delete", err)
		return errors.Wrap(errors.ErrCodeStore, err, "delete %s %s", c.name, id)
	}
	if res.DeletedCount == 0 {
		return errors.New(c.notFound, "%s %s not found", c.name, id)
	}
	observability.Store().OnWrite(ctx, c.name, "delete", time.Since(start))
	return nil
}
