package rstate

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"testing"
)

func TestNewTable(t *testing.T) {
	table := newColorTable(t)

	if table.Len() != 0 {
		t.Errorf("expected empty table, got %d entries", table.Len())
	}
	if table.Name() != "color" {
		t.Errorf("expected name %q, got %q", "color", table.Name())
	}
	stats := table.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.NextID != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestNewTableUnknownCategory(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("color")

	expectPanic(t, ErrUnknownCategory, func() {
		NewTable[color](reg, 5)
	})
}

// Intern {red, green, red, blue} into an empty table.
func TestTableInternScenario(t *testing.T) {
	table := newColorTable(t)

	want := map[string]ID{"red": 0, "green": 1, "blue": 2}
	for _, name := range []string{"red", "green", "red", "blue"} {
		e := table.Intern(color{name: name})
		if e.ID() != want[name] {
			t.Errorf("Intern(%s).ID() = %d, want %d", name, e.ID(), want[name])
		}
	}

	if table.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", table.Len())
	}
	if e := table.Intern(color{name: "red"}); e.ID() != 0 {
		t.Errorf("expected red to keep id 0, got %d", e.ID())
	}
}

func TestTableInternReturnsSameEntry(t *testing.T) {
	table := newColorTable(t)

	e1 := table.Intern(color{name: "red"})
	e2 := table.Intern(color{name: "red"})
	if e1 != e2 {
		t.Error("expected the same entry instance for equal fragments")
	}
	if e1.Refs() != 2 {
		t.Errorf("expected 2 refs, got %d", e1.Refs())
	}

	stats := table.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got hits=%d misses=%d", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("expected hit rate 0.5, got %f", stats.HitRate)
	}
}

func TestTableIgnoresFieldsOutsideComparator(t *testing.T) {
	table := newColorTable(t)

	e1 := table.Intern(color{name: "red", shade: 1})
	e2 := table.Intern(color{name: "red", shade: 9})
	if e1 != e2 {
		t.Fatal("fragments equal by Compare must share one entry")
	}
	if got := e2.Value().shade; got != 1 {
		t.Errorf("expected the first interned value to be kept, got shade %d", got)
	}
}

func TestTableOwnsDeepCopy(t *testing.T) {
	reg := NewRegistry()
	cat := reg.MustRegister("palette")
	table := NewTable[palette](reg, cat)

	src := palette{Colors: []string{"red", "green"}}
	e := table.Intern(src)

	src.Colors[0] = "black"
	if got := e.Value().Colors[0]; got != "red" {
		t.Errorf("owned copy changed with the caller's value: got %q", got)
	}

	if _, ok := table.Lookup(palette{Colors: []string{"red", "green"}}); !ok {
		t.Error("expected lookup of the original value to hit")
	}
}

func TestTableWithClone(t *testing.T) {
	calls := 0
	table := newColorTable(t, WithClone(func(c color) color {
		calls++
		return c
	}))

	table.Intern(color{name: "red"})
	table.Intern(color{name: "red"})
	table.Intern(color{name: "blue"})

	if calls != 2 {
		t.Errorf("expected clone to run once per new entry (2), got %d", calls)
	}
}

func TestTableLookup(t *testing.T) {
	table := newColorTable(t)

	if _, ok := table.Lookup(color{name: "red"}); ok {
		t.Error("expected miss on empty table")
	}
	if table.Len() != 0 {
		t.Error("Lookup must not insert")
	}

	e := table.Intern(color{name: "red"})
	got, ok := table.Lookup(color{name: "red"})
	if !ok || got != e {
		t.Error("expected Lookup to return the interned entry")
	}
	if e.Refs() != 1 {
		t.Errorf("Lookup must not change refs, got %d", e.Refs())
	}
}

func TestTableRelease(t *testing.T) {
	table := newColorTable(t)

	e := table.Intern(color{name: "red"})
	table.Intern(color{name: "red"})

	table.Release(e)
	if e.Refs() != 1 {
		t.Errorf("expected 1 ref after release, got %d", e.Refs())
	}
	table.Release(e)
	table.Release(e) // underflow is clamped
	if e.Refs() != 0 {
		t.Errorf("expected refs clamped at 0, got %d", e.Refs())
	}

	// Entries are never evicted.
	if got, ok := table.Lookup(color{name: "red"}); !ok || got != e {
		t.Error("released entry must stay in the table")
	}
	if e2 := table.Intern(color{name: "red"}); e2.ID() != 0 {
		t.Errorf("re-interned value must keep id 0, got %d", e2.ID())
	}

	table.Release(nil)
}

func TestTableReleaseCategoryMismatch(t *testing.T) {
	reg := NewRegistry()
	a := NewTable[color](reg, reg.MustRegister("a"))
	b := NewTable[color](reg, reg.MustRegister("b"))

	e := a.Intern(color{name: "red"})
	expectPanic(t, ErrCategoryMismatch, func() {
		b.Release(e)
	})
}

func TestTableByID(t *testing.T) {
	table := newColorTable(t)

	names := []string{"red", "green", "blue"}
	for _, n := range names {
		table.Intern(color{name: n})
	}

	for i, n := range names {
		e, ok := table.ByID(ID(i))
		if !ok {
			t.Fatalf("ByID(%d) not found", i)
		}
		if e.Value().name != n {
			t.Errorf("ByID(%d) = %q, want %q", i, e.Value().name, n)
		}
	}
	if _, ok := table.ByID(3); ok {
		t.Error("expected ByID past the end to fail")
	}
}

func TestTableAscendAndEntries(t *testing.T) {
	table := newColorTable(t)

	for _, n := range []string{"red", "green", "blue"} {
		table.Intern(color{name: n})
	}

	var ordered []string
	table.Ascend(func(e *Entry[color]) bool {
		ordered = append(ordered, e.Value().name)
		return true
	})
	want := []string{"blue", "green", "red"}
	if fmt.Sprint(ordered) != fmt.Sprint(want) {
		t.Errorf("Ascend order = %v, want %v", ordered, want)
	}

	var first []string
	table.Ascend(func(e *Entry[color]) bool {
		first = append(first, e.Value().name)
		return false
	})
	if len(first) != 1 {
		t.Errorf("expected Ascend to stop after one entry, got %d", len(first))
	}

	entries := table.Entries()
	for i, e := range entries {
		if e.ID() != ID(i) {
			t.Errorf("Entries()[%d].ID() = %d", i, e.ID())
		}
	}
}

func TestTableComparatorChecks(t *testing.T) {
	reg := NewRegistry()
	cat := reg.MustRegister("unstable")

	checked := NewTable(reg, cat, WithComparatorChecks[unstable](true))
	expectPanic(t, ErrInconsistentComparator, func() {
		checked.Intern(unstable{n: 1})
	})
}

func TestTableComparatorChecksClone(t *testing.T) {
	table := newColorTable(t,
		WithComparatorChecks[color](true),
		WithClone(func(c color) color {
			c.name += "-copy"
			return c
		}),
	)

	expectPanic(t, ErrInconsistentComparator, func() {
		table.Intern(color{name: "red"})
	})
}

func TestTableIDSpaceExhausted(t *testing.T) {
	table := newColorTable(t)
	table.idLimit = 2

	table.Intern(color{name: "a"})
	table.Intern(color{name: "b"})
	table.Intern(color{name: "a"}) // hits still work

	expectPanic(t, ErrIDSpaceExhausted, func() {
		table.Intern(color{name: "c"})
	})
}

func TestTableResetStats(t *testing.T) {
	table := newColorTable(t)
	table.Intern(color{name: "red"})
	table.Intern(color{name: "red"})

	table.ResetStats()
	stats := table.Stats()
	if stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("expected zero counters, got hits=%d misses=%d", stats.Hits, stats.Misses)
	}
	if stats.Len != 1 || stats.Refs != 2 {
		t.Errorf("ResetStats must keep entries, got len=%d refs=%d", stats.Len, stats.Refs)
	}
}

func TestTableDedupProperty(t *testing.T) {
	table := newColorTable(t)
	rng := rand.New(rand.NewPCG(1, 2))

	ids := make(map[string]ID)
	for range 2000 {
		name := "c" + strconv.Itoa(rng.IntN(50))
		id := table.Intern(color{name: name, shade: rng.IntN(10)}).ID()
		if prev, ok := ids[name]; ok && prev != id {
			t.Fatalf("%s interned as %d and %d", name, prev, id)
		}
		if _, ok := ids[name]; !ok && int(id) != len(ids) {
			t.Fatalf("new value %s got id %d, want next id %d", name, id, len(ids))
		}
		ids[name] = id
	}
	if table.Len() != len(ids) {
		t.Errorf("expected %d entries, got %d", len(ids), table.Len())
	}
}

func TestTablePermutationProperty(t *testing.T) {
	const n = 40
	names := make([]string, n)
	for i := range names {
		names[i] = "v" + strconv.Itoa(i)
	}

	for seed := range uint64(5) {
		rng := rand.New(rand.NewPCG(seed, seed*7+1))
		rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

		table := newColorTable(t)
		seen := make(map[ID]bool)
		for _, name := range names {
			id := table.Intern(color{name: name}).ID()
			if id >= n {
				t.Errorf("seed %d: id %d out of range [0, %d)", seed, id, n)
			}
			if seen[id] {
				t.Errorf("seed %d: id %d assigned twice", seed, id)
			}
			seen[id] = true
		}
	}
}

func TestTableIDStability(t *testing.T) {
	table := newColorTable(t)
	red := table.Intern(color{name: "red"})

	for i := range 500 {
		table.Intern(color{name: strconv.Itoa(i)})
	}

	if red.ID() != 0 {
		t.Errorf("id changed to %d", red.ID())
	}
	if e, _ := table.Lookup(color{name: "red"}); e != red {
		t.Error("lookup returned a different entry after growth")
	}
}

func TestTableConcurrentIntern(t *testing.T) {
	table := newColorTable(t)

	const goroutines = 8
	const values = 100

	results := make([][values]ID, goroutines)
	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range values {
				v := (i + g*13) % values
				results[g][v] = table.Intern(color{name: strconv.Itoa(v)}).ID()
			}
		}(g)
	}
	wg.Wait()

	if table.Len() != values {
		t.Fatalf("expected %d entries, got %d", values, table.Len())
	}
	for g := 1; g < goroutines; g++ {
		if results[g] != results[0] {
			t.Fatalf("goroutine %d saw different ids than goroutine 0", g)
		}
	}

	stats := table.Stats()
	if stats.Refs != goroutines*values {
		t.Errorf("expected %d refs, got %d", goroutines*values, stats.Refs)
	}
}

func BenchmarkTableInternHit(b *testing.B) {
	table := newColorTable(b)
	for i := range 1000 {
		table.Intern(color{name: strconv.Itoa(i)})
	}
	probe := color{name: "500"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Intern(probe)
	}
}

func BenchmarkTableInternMiss(b *testing.B) {
	names := make([]string, b.N)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	table := newColorTable(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Intern(color{name: names[i]})
	}
}
