// Package keycache caches objects derived from render state, keyed by
// [rstate.SortKey].
//
// A renderer typically builds one backend object per distinct combination
// of state, for example a pipeline for each shader, blend and depth
// triple. Atoms that share that state share a sort key, so the key is a
// ready-made cache key:
//
//	pipelines := keycache.New[*Pipeline](256, keycache.WithEvict(
//	    func(_ rstate.SortKey, p *Pipeline) { p.Destroy() }))
//
//	p, err := pipelines.GetOrCreate(atom.Key(), func() (*Pipeline, error) {
//	    return device.CreatePipeline(...)
//	})
//
// The cache is sharded by key hash and evicts per shard in least recently
// used order.
package keycache
