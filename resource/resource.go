package resource

import "context"

// Kind tags the variant held by a Resource.
type Kind uint8

const (
	// KindLocal is a materialized value owned by the local pool.
	KindLocal Kind = iota + 1
	// KindRemote is a stub whose value lives in another pool.
	KindRemote
)

// String returns "local" or "remote".
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Connector provides cluster-wide discovery and remote value resolution.
//
// Implementations must be safe for concurrent use. ReadResource reports
// false on any resolution failure (unknown id, unreachable peer, decode
// mismatch, cancelled context).
type Connector interface {
	// GetAllResources returns remote stubs for every resource the connector
	// knows about, possibly including the caller's own.
	GetAllResources(ctx context.Context) (*Set, error)
	// ReadResource fetches the current value of id from its owning pool.
	ReadResource(ctx context.Context, id ID) (any, bool)
}

// Resource is either a local value or a remote stub.
//
// The zero value is not usable; construct with NewLocal or NewRemote.
type Resource struct {
	id        ID
	kind      Kind
	value     any
	connector Connector
}

// NewLocal returns a resource holding value.
func NewLocal(id ID, value any) Resource {
	return Resource{id: id, kind: KindLocal, value: value}
}

// NewRemote returns a stub that resolves id through c on every access.
// The stub does not own c and cannot be re-bound to another connector.
func NewRemote(id ID, c Connector) Resource {
	return Resource{id: id, kind: KindRemote, connector: c}
}

// ID returns the resource identity.
func (r Resource) ID() ID { return r.id }

// Kind returns the variant tag.
func (r Resource) Kind() Kind { return r.kind }

// IsLocal reports whether r holds a local value.
func (r Resource) IsLocal() bool { return r.kind == KindLocal }

// IsRemote reports whether r is a remote stub.
func (r Resource) IsRemote() bool { return r.kind == KindRemote }

// Value returns the resource value.
//
// Remote stubs are not cached: each call performs a fresh read through the
// connector that produced the stub. Callers that need a stable value should
// resolve once and keep the result.
func (r Resource) Value(ctx context.Context) (any, bool) {
	switch r.kind {
	case KindLocal:
		return r.value, true
	case KindRemote:
		if r.connector == nil {
			return nil, false
		}
		if err := ctx.Err(); err != nil {
			return nil, false
		}
		return r.connector.ReadResource(ctx, r.id)
	default:
		return nil, false
	}
}
