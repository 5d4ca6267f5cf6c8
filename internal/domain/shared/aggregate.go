package shared

// BaseAggregateRoot extends BaseEntity with a version counter used for
// optimistic locking. Aggregates bump the version on every state change.
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// NewBaseAggregateRoot returns an aggregate root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// IncrementVersion records a state change for optimistic locking
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}
