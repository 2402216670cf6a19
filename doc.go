// Package respool provides named-object resource pools that share values
// across processes.
//
// A Pool owns a durable local store of name→value resources and resolves
// names it does not hold by asking peer pools through a pluggable
// resource.Connector.
//
// # Quick Start
//
// Two pools in one process, connected through a hub:
//
//	h := hub.New()
//	a, _ := respool.New("a", blobstore.NewLocalStore("./data"), h)
//	b, _ := respool.New("b", blobstore.NewMemoryStore(), h)
//	_ = h.Join(a)
//	_ = h.Join(b)
//
//	_ = a.Put(ctx, "model", map[string]any{"layers": 3})
//	v, ok := b.Get(ctx, "model") // read from pool a
//
// Pools in different processes share a backing medium instead:
//
//	blobs := s3.NewStore(client, "pools", "prod/")
//	p, _ := respool.New("worker-1", blobs, shared.New(blobs))
//
// or build everything from configuration:
//
//	cfg, _ := config.Load("pool.yaml")
//	p, _ := respool.Open(ctx, cfg, conn)
//	defer p.Close()
//
// # Lookup
//
// Get consults the local store first. On a miss it fetches the connector's
// directory, prefers an entry of this pool, and otherwise takes the first
// entry with the same name. Remote reads are bounded by WithRemoteTimeout
// and never fail loudly: an unreachable peer is a miss.
//
// # Typed Access
//
// Values read back from storage have their generic decoded form
// (map[string]any, float64, ...). GetAs converts them:
//
//	type Model struct {
//	    Layers int `json:"layers"`
//	}
//	m, ok := respool.GetAs[Model](ctx, p, "model")
//
// # Errors
//
// Put and Remove return errors matching ErrStorage; serialization failures
// also match ErrSerialization. Get, GetFrom and GetAll never return errors.
package respool
