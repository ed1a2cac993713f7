package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Action keys recorded for administrative changes.
const (
	ActionServiceUnlock       = "service.unlock"
	ActionServiceLock         = "service.lock"
	ActionServiceConfigUpdate = "service.config.update"
)

// Entity types referenced by audit entries.
const (
	EntityUser    = "user"
	EntityService = "service"
)

var ErrActionRequired = errors.New("audit action is required")

// Log is an append-only record of one administrative action.
type Log struct {
	id         string
	actorID    string
	action     string
	entityType string
	entityID   string
	metadata   map[string]any
	createdAt  time.Time
}

func NewLog(actorID, action, entityType, entityID string, metadata map[string]any) (*Log, error) {
	if action == "" {
		return nil, ErrActionRequired
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Log{
		id:         uuid.NewString(),
		actorID:    actorID,
		action:     action,
		entityType: entityType,
		entityID:   entityID,
		metadata:   metadata,
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructLog(id, actorID, action, entityType, entityID string, metadata map[string]any, createdAt time.Time) *Log {
	return &Log{
		id:         id,
		actorID:    actorID,
		action:     action,
		entityType: entityType,
		entityID:   entityID,
		metadata:   metadata,
		createdAt:  createdAt,
	}
}

func (l *Log) ID() string               { return l.id }
func (l *Log) ActorID() string          { return l.actorID }
func (l *Log) Action() string           { return l.action }
func (l *Log) EntityType() string       { return l.entityType }
func (l *Log) EntityID() string         { return l.entityID }
func (l *Log) Metadata() map[string]any { return l.metadata }
func (l *Log) CreatedAt() time.Time     { return l.createdAt }

// Repository only appends; entries are never updated or removed.
type Repository interface {
	Append(ctx context.Context, l *Log) error
	ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*Log, error)
}
