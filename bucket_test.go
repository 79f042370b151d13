package rstate

import (
	"math/rand/v2"
	"strconv"
	"testing"
)

// bucketFixture is a registry with shader, texture and material categories.
type bucketFixture struct {
	shaders   *Table[color]
	textures  *Table[color]
	materials *Table[color]
}

func newBucketFixture() *bucketFixture {
	reg := NewRegistry()
	return &bucketFixture{
		shaders:   NewTable[color](reg, reg.MustRegister("shader")),
		textures:  NewTable[color](reg, reg.MustRegister("texture0")),
		materials: NewTable[color](reg, reg.MustRegister("material")),
	}
}

func (f *bucketFixture) atom(name, shader, texture, material string) *Atom {
	a := NewAtom(name)
	SetState(a, f.shaders, color{name: shader})
	SetState(a, f.textures, color{name: texture})
	SetState(a, f.materials, color{name: material})
	return a
}

func names(atoms []*Atom) []string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.Payload.(string)
	}
	return out
}

// Atoms sharing material and shader but differing in texture binding end
// up adjacent to other atoms with that material and shader.
func TestBucketSortGroupsSharedState(t *testing.T) {
	f := newBucketFixture()
	b := NewBucket(8)

	b.Add(f.atom("a", "phong", "brick", "stone"))
	b.Add(f.atom("b", "flat", "grass", "dirt"))
	b.Add(f.atom("c", "phong", "wood", "stone"))
	b.Add(f.atom("d", "flat", "grass", "dirt"))
	b.Add(f.atom("e", "phong", "brick", "stone"))

	b.Sort()

	got := names(b.Atoms())
	// phong (id 0) before flat (id 1); within phong, brick (0) before wood (2).
	want := []string{"a", "e", "c", "b", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", got, want)
		}
	}

	runs := b.Runs()
	if len(runs) != 3 || runs[0] != 2 || runs[1] != 1 || runs[2] != 2 {
		t.Errorf("Runs() = %v, want [2 1 2]", runs)
	}
}

func TestBucketSortIsStable(t *testing.T) {
	f := newBucketFixture()
	b := NewBucket(0)

	for i := range 20 {
		b.Add(f.atom(strconv.Itoa(i), "s", "t", "m"))
	}
	b.Sort()

	for i, name := range names(b.Atoms()) {
		if name != strconv.Itoa(i) {
			t.Fatalf("equal keys reordered: position %d holds %s", i, name)
		}
	}
}

func TestBucketWalk(t *testing.T) {
	f := newBucketFixture()
	b := NewBucket(4)

	b.Add(f.atom("a", "phong", "brick", "stone"))
	b.Add(f.atom("b", "phong", "wood", "stone"))
	b.Add(f.atom("c", "phong", "wood", "stone"))
	b.Add(f.atom("d", "flat", "wood", "dirt"))

	var changes []CategorySet
	b.Walk(func(_ *Atom, changed CategorySet) bool {
		changes = append(changes, changed)
		return true
	})

	tex := f.textures.Category()
	want := []CategorySet{
		CategorySet(0b111),
		CategorySet(0).Add(tex),
		0,
		CategorySet(0).Add(f.shaders.Category()).Add(f.materials.Category()),
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("atom %d changed %s, want %s", i, changes[i], want[i])
		}
	}
	if got := b.Transitions(); got != 6 {
		t.Errorf("Transitions() = %d, want 6", got)
	}

	visited := 0
	b.Walk(func(*Atom, CategorySet) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("Walk must stop when fn returns false, visited %d", visited)
	}
}

func TestBucketSortReducesTransitions(t *testing.T) {
	f := newBucketFixture()
	b := NewBucket(500)
	rng := rand.New(rand.NewPCG(7, 8))

	for i := range 500 {
		b.Add(f.atom(strconv.Itoa(i),
			"s"+strconv.Itoa(rng.IntN(4)),
			"t"+strconv.Itoa(rng.IntN(10)),
			"m"+strconv.Itoa(rng.IntN(6))))
	}

	before := b.Transitions()
	b.Sort()
	after := b.Transitions()

	if after >= before {
		t.Errorf("sorting did not reduce state changes: %d -> %d", before, after)
	}

	// Every distinct key must form exactly one run.
	distinct := make(map[SortKey]bool)
	for _, a := range b.Atoms() {
		distinct[a.Key()] = true
	}
	if got := len(b.Runs()); got != len(distinct) {
		t.Errorf("got %d runs for %d distinct keys", got, len(distinct))
	}

	for i := 1; i < b.Len(); i++ {
		if b.Atoms()[i].Key().Less(b.Atoms()[i-1].Key()) {
			t.Fatalf("atoms %d and %d out of order", i-1, i)
		}
	}
}

func TestBucketRecomposesStaleKeys(t *testing.T) {
	f := newBucketFixture()
	b := NewBucket(2)

	x := f.atom("x", "s1", "t", "m")
	y := f.atom("y", "s2", "t", "m")
	b.Add(y)
	b.Add(x)
	b.Sort()
	if got := names(b.Atoms()); got[0] != "x" {
		t.Fatalf("expected x first (shader id 0), got %v", got)
	}

	// Move x to a newer shader; its key must be recomposed before sorting.
	SetState(x, f.shaders, color{name: "s3"})
	b.Sort()
	if got := names(b.Atoms()); got[0] != "y" {
		t.Errorf("stale key was not recomposed: order %v", got)
	}
}

func TestBucketReset(t *testing.T) {
	f := newBucketFixture()
	b := NewBucket(4)
	b.Add(f.atom("a", "s", "t", "m"))

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("expected empty bucket, got %d", b.Len())
	}
	if cap(b.Atoms()) < 4 {
		t.Error("Reset must keep capacity")
	}
	if b.Transitions() != 0 || len(b.Runs()) != 0 {
		t.Error("empty bucket must report no transitions and no runs")
	}
}

func BenchmarkBucketSort(b *testing.B) {
	f := newBucketFixture()
	rng := rand.New(rand.NewPCG(9, 10))
	atoms := make([]*Atom, 1000)
	for i := range atoms {
		atoms[i] = f.atom("a",
			"s"+strconv.Itoa(rng.IntN(8)),
			"t"+strconv.Itoa(rng.IntN(32)),
			"m"+strconv.Itoa(rng.IntN(16)))
	}
	bucket := NewBucket(len(atoms))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bucket.Reset()
		for _, a := range atoms {
			bucket.Add(a)
		}
		bucket.Sort()
	}
}
