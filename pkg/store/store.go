// Package store persists the admin platform entities: pages, charts,
// partners, ingestion events, and sync jobs.
//
// Two backends implement the same Store interface: a MongoDB store for
// deployments and an in-memory store for tests and local preview. Documents
// carry bson tags alongside json so the same types serve both the wire and
// the database.
package store

import (
	"context"
	"time"

	"github.com/quantpane/quantpane/pkg/layout"
)

// Page is a report page: an ordered vertical stack of blocks owned by a
// partner. Each block is a complete layout input so pages can be re-solved
// without joins.
type Page struct {
	ID        string                    `json:"id" bson:"_id"`
	PartnerID string                    `json:"partner_id" bson:"partner_id"`
	Title     string                    `json:"title" bson:"title"`
	Blocks    []layout.BlockLayoutInput `json:"blocks" bson:"blocks"`
	CreatedAt time.Time                 `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at" bson:"updated_at"`
}

// Chart is a reusable cell definition referenced by pages.
type Chart struct {
	ID          string              `json:"id" bson:"_id"`
	Title       string              `json:"title" bson:"title"`
	Subtitle    string              `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	BodyType    layout.BodyType     `json:"body_type" bson:"body_type"`
	AspectRatio layout.AspectRatio  `json:"aspect_ratio,omitempty" bson:"aspect_ratio,omitempty"`
	Content     *layout.ContentInfo `json:"content,omitempty" bson:"content,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}

// Partner is a tenant of the reporting platform.
type Partner struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Event is an ingestion event recorded against a partner.
type Event struct {
	ID         string         `json:"id" bson:"_id"`
	PartnerID  string         `json:"partner_id" bson:"partner_id"`
	Kind       string         `json:"kind" bson:"kind"`
	Payload    map[string]any `json:"payload,omitempty" bson:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at" bson:"occurred_at"`
}

// Sync job states.
const (
	SyncPending   = "pending"
	SyncRunning   = "running"
	SyncSucceeded = "succeeded"
	SyncFailed    = "failed"
)

// SyncJob tracks a partner data synchronization run.
type SyncJob struct {
	ID         string     `json:"id" bson:"_id"`
	PartnerID  string     `json:"partner_id" bson:"partner_id"`
	Status     string     `json:"status" bson:"status"`
	Error      string     `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

// Collection is the uniform CRUD surface shared by every entity.
type Collection[T any] interface {
	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*T, error)

	// List returns all documents ordered by ID.
	List(ctx context.Context) ([]T, error)

	// Put inserts or replaces a document. A missing ID gets a generated one;
	// timestamps are stamped on every write.
	Put(ctx context.Context, item *T) error

	// Delete removes a document. Deleting a missing ID is an error.
	Delete(ctx context.Context, id string) error
}

// Store groups the entity collections behind one handle.
type Store interface {
	Pages() Collection[Page]
	Charts() Collection[Chart]
	Partners() Collection[Partner]
	Events() Collection[Event]
	SyncJobs() Collection[SyncJob]

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// =============================================================================
// Entity plumbing shared by backends
// =============================================================================

// entity is the constraint backends rely on for ID assignment and
// timestamping. All stored documents implement it with pointer receivers.
type entity interface {
	GetID() string
	SetID(id string)
	stamp(now time.Time)
}

// pentity ties the pointer type to its value type for generic collections.
type pentity[T any] interface {
	entity
	*T
}

func (p *Page) GetID() string   { return p.ID }
func (p *Page) SetID(id string) { p.ID = id }
func (p *Page) stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (c *Chart) GetID() string   { return c.ID }
func (c *Chart) SetID(id string) { c.ID = id }
func (c *Chart) stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (p *Partner) GetID() string   { return p.ID }
func (p *Partner) SetID(id string) { p.ID = id }
func (p *Partner) stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (e *Event) GetID() string   { return e.ID }
func (e *Event) SetID(id string) { e.ID = id }
func (e *Event) stamp(now time.Time) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = now
	}
}

func (j *SyncJob) GetID() string   { return j.ID }
func (j *SyncJob) SetID(id string) { j.ID = id }
func (j *SyncJob) stamp(now time.Time) {
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now
}
