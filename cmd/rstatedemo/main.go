// Command rstatedemo builds a synthetic scene, sorts it by render state and
// reports how many state changes sorting saves.
//
// Usage:
//
//	rstatedemo [-scene scene.yaml] [-atoms n] [-workers n] [-format text|yaml]
//
// Flags given on the command line override values from the scene file.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/gogpu/gputypes"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/rstate"
	"github.com/gogpu/rstate/keycache"
	"github.com/gogpu/rstate/state"
)

// pipeline stands in for a backend pipeline object.
type pipeline struct {
	key rstate.SortKey
}

func main() {
	scene := defaultScene()
	var (
		scenePath = flag.String("scene", "", "YAML scene description")
		format    = flag.String("format", "text", "report format: text or yaml")
		logFile   = flag.String("logfile", "", "write JSON logs to this file, rotated")
		logLevel  = flag.String("loglevel", "info", "log level: debug, info, warn or error")
		cacheCap  = flag.Int("pipelines", keycache.DefaultCapacity, "pipeline cache capacity per shard")
	)
	flag.IntVar(&scene.Atoms, "atoms", scene.Atoms, "number of atoms in the scene")
	flag.IntVar(&scene.Shaders, "shaders", scene.Shaders, "distinct shader programs")
	flag.IntVar(&scene.Materials, "materials", scene.Materials, "distinct materials")
	flag.IntVar(&scene.Textures, "textures", scene.Textures, "distinct textures")
	flag.Uint64Var(&scene.Seed, "seed", scene.Seed, "random seed")
	flag.IntVar(&scene.Workers, "workers", scene.Workers, "goroutines building the scene")
	flag.Parse()

	if *scenePath != "" {
		explicit := make(map[string]string)
		flag.Visit(func(f *flag.Flag) {
			explicit[f.Name] = f.Value.String()
		})
		if err := LoadScene(*scenePath, &scene); err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
		for name, value := range explicit {
			_ = flag.Set(name, value)
		}
	}
	if err := scene.validate(); err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}

	if *logFile != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(*logLevel)); err != nil {
			log.Fatalf("Invalid log level: %v", err)
		}
		w := &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    16, // MB
			MaxBackups: 2,
		}
		defer w.Close()
		rstate.SetLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})))
	}

	reg := rstate.NewRegistry()
	tables, err := state.RegisterStandard(reg)
	if err != nil {
		log.Fatalf("Failed to register categories: %v", err)
	}
	reg.Seal()

	atoms, err := buildScene(context.Background(), tables, scene)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	bucket := rstate.NewBucket(len(atoms))
	for _, a := range atoms {
		bucket.Add(a)
	}

	r := report{Atoms: bucket.Len()}
	r.ChangesBefore = bucket.Transitions()
	bucket.Sort()
	r.ChangesAfter = bucket.Transitions()
	r.DistinctKeys = len(bucket.Runs())

	for _, s := range tables.Stats() {
		r.Tables = append(r.Tables, tableReport{
			Category: s.Name,
			Entries:  s.Len,
			Refs:     s.Refs,
			Interns:  s.Hits + s.Misses,
			HitRate:  s.HitRate,
		})
	}

	changes := make(map[rstate.Category]int)
	bucket.Walk(func(_ *rstate.Atom, changed rstate.CategorySet) bool {
		changed.Each(func(c rstate.Category) { changes[c]++ })
		return true
	})
	for _, c := range reg.Categories() {
		if n := changes[c]; n > 0 {
			r.PerCategory = append(r.PerCategory, categoryChanges{Category: reg.Name(c), Changes: n})
		}
	}

	r.Pipelines = bindPipelines(bucket, tables, *cacheCap)

	if err := r.write(os.Stdout, *format); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	rstate.Logger().Info("rstatedemo: done",
		slog.Int("atoms", r.Atoms),
		slog.Int("before", r.ChangesBefore),
		slog.Int("after", r.ChangesAfter))
}

// buildScene creates atoms with randomly chosen shared state, split across
// scene.Workers goroutines that intern into the same tables. Ids depend on
// goroutine scheduling; the set of distinct keys does not.
func buildScene(ctx context.Context, ts *state.Tables, scene Scene) ([]*rstate.Atom, error) {
	palette, fogColor := scene.colors()
	atoms := make([]*rstate.Atom, scene.Atoms)
	chunk := (len(atoms) + scene.Workers - 1) / scene.Workers

	eg, ctx := errgroup.WithContext(ctx)
	for w := range scene.Workers {
		lo := min(w*chunk, len(atoms))
		hi := min(lo+chunk, len(atoms))
		eg.Go(func() error {
			rng := rand.New(rand.NewPCG(scene.Seed, uint64(w)))
			for i := lo; i < hi; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				atoms[i] = buildAtom(rng, ts, scene, i, palette, fogColor)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return atoms, nil
}

// buildAtom binds a shader, a material and texture unit 0; some atoms also
// bind a second texture, alpha blending or fog.
func buildAtom(rng *rand.Rand, ts *state.Tables, scene Scene, i int, palette []state.RGBA, fogColor state.RGBA) *rstate.Atom {
	a := rstate.NewAtom(i)

	s := strconv.Itoa(rng.IntN(scene.Shaders))
	ts.SetShader(a, state.NewShader("shader"+s, []byte("vertex "+s), []byte("fragment "+s)))

	ts.SetTexture(a, 0, state.NewTextureUnit(uint64(rng.IntN(scene.Textures))+1, gputypes.TextureFormatRGBA8Unorm))
	if rng.IntN(4) == 0 {
		ts.SetTexture(a, 1, state.NewTextureUnit(uint64(rng.IntN(scene.Textures))+1, gputypes.TextureFormatRGBA8Unorm))
	}

	m := state.DefaultMaterial()
	v := rng.IntN(scene.Materials)
	m.Diffuse = palette[v%len(palette)]
	m.Shininess = float32(v / len(palette))
	ts.SetMaterial(a, m)

	if rng.IntN(8) == 0 {
		ts.SetBlend(a, state.AlphaBlend())
		ts.SetDepth(a, state.Depth{Test: true, Func: gputypes.CompareFunctionLess})
	} else {
		ts.SetBlend(a, state.Opaque())
		ts.SetDepth(a, state.DefaultDepth())
	}
	ts.SetRaster(a, state.DefaultRaster())
	if rng.IntN(2) == 0 {
		ts.SetFog(a, state.LinearFog(fogColor, 10, 200))
	}
	return a
}

// bindPipelines walks the sorted bucket and binds one pipeline per change
// of pipeline state, building pipelines through a key cache.
func bindPipelines(b *rstate.Bucket, ts *state.Tables, capacity int) pipelineReport {
	// A pipeline depends on shader, blend, depth and raster state only.
	pipelineState := rstate.CategorySet(0).
		Add(ts.Shader.Category()).
		Add(ts.Blend.Category()).
		Add(ts.Depth.Category()).
		Add(ts.Raster.Category())

	var r pipelineReport
	pipelines := keycache.New(capacity, keycache.WithEvict(func(rstate.SortKey, *pipeline) {
		r.Destroyed++
	}))
	var current *pipeline
	b.Walk(func(a *rstate.Atom, changed rstate.CategorySet) bool {
		if current != nil && changed.Intersect(pipelineState).Empty() {
			return true
		}
		pk := a.Key().Mask(pipelineState)
		current, _ = pipelines.GetOrCreate(pk, func() (*pipeline, error) {
			return &pipeline{key: pk}, nil
		})
		r.Binds++
		return true
	})

	s := pipelines.Stats()
	r.Built = s.Misses
	r.Cached = s.Len
	return r
}
