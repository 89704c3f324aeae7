package sortedvec

import (
	"errors"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type entity struct {
	id    uint8
	value string
}

func (e entity) Key() uint8 { return e.id }

type named struct {
	name  string
	count int
}

func (n named) Key() string { return n.name }

func traceToTest(t *testing.T) {
	t.Helper()
	gtrace.CoreTracer = gotestingadapter.New(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	t.Cleanup(func() { gtrace.CoreTracer = gtrace.NoOpTrace })
}

func keysOf(v *Vec[uint8, entity]) []uint8 {
	var keys []uint8
	v.ForEach(func(e entity) bool {
		keys = append(keys, e.id)
		return true
	})
	return keys
}

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for %s", what)
		}
	}()
	fn()
}

func TestInsertThirdIsFirst(t *testing.T) {
	v := New[uint8, entity]()
	for _, id := range []uint8{5, 4, 3, 1, 2} {
		v.InsertOrReplace(entity{id: id})
		if err := v.Check(); err != nil {
			t.Fatalf("after inserting %d: %v", id, err)
		}
	}
	if got := keysOf(v); !slices.Equal(got, []uint8{1, 2, 3, 4, 5}) {
		t.Fatalf("unexpected key order %v", got)
	}
}

func TestInsertOrReplaceSameKey(t *testing.T) {
	v := New[uint8, entity]()
	v.InsertOrReplace(entity{id: 1, value: "a"})
	i1, _, replaced := v.InsertOrReplace(entity{id: 3, value: "first"})
	if replaced {
		t.Fatalf("fresh key reported as replaced")
	}
	i2, old, replaced := v.InsertOrReplace(entity{id: 3, value: "second"})
	if !replaced || old.value != "first" {
		t.Fatalf("expected replacement of 'first', got %v/%+v", replaced, old)
	}
	if i1 != i2 {
		t.Fatalf("index changed on replace: %d != %d", i1, i2)
	}
	if v.Len() != 2 {
		t.Fatalf("expected len 2, got %d", v.Len())
	}
	if e, ok := v.Get(3); !ok || e.value != "second" {
		t.Fatalf("expected 'second', got %+v", e)
	}
}

func TestLookupMisses(t *testing.T) {
	v := New[uint8, entity]()
	if _, ok := v.Get(1); ok {
		t.Errorf("Get on empty vector reported a hit")
	}
	if v.GetRef(1) != nil || v.Contains(1) {
		t.Errorf("empty vector reports an entry")
	}
	if _, ok := v.Remove(1); ok {
		t.Errorf("Remove on empty vector reported a hit")
	}
	if _, ok := v.First(); ok {
		t.Errorf("First on empty vector reported a hit")
	}
	if _, ok := v.RemoveAt(0); ok {
		t.Errorf("RemoveAt on empty vector reported a hit")
	}
	if !v.IsEmpty() {
		t.Errorf("expected empty vector")
	}
}

func TestRemoveAndPositions(t *testing.T) {
	v := NewWithCapacity[uint8, entity](8)
	for _, id := range []uint8{10, 20, 30, 40} {
		v.InsertOrReplace(entity{id: id})
	}
	if e, ok := v.Remove(20); !ok || e.id != 20 {
		t.Fatalf("expected to remove 20, got %+v", e)
	}
	if e, ok := v.RemoveAt(0); !ok || e.id != 10 {
		t.Fatalf("expected to remove 10 at 0, got %+v", e)
	}
	if e, ok := v.At(1); !ok || e.id != 40 {
		t.Fatalf("expected 40 at 1, got %+v", e)
	}
	first, _ := v.First()
	last, _ := v.Last()
	if first.id != 30 || last.id != 40 {
		t.Fatalf("unexpected first/last %d/%d", first.id, last.id)
	}
	if i, found := v.Index(35); found || i != 1 {
		t.Fatalf("expected insertion point 1 for 35, got %d/%v", i, found)
	}
}

func TestGetRefMutatesInPlace(t *testing.T) {
	v := New[uint8, entity]()
	v.InsertOrReplace(entity{id: 7, value: "old"})
	v.GetRef(7).value = "new"
	if e, _ := v.Get(7); e.value != "new" {
		t.Fatalf("expected in-place change, got %+v", e)
	}
	v.ForEachRef(func(e *entity) bool {
		e.value = strings.ToUpper(e.value)
		return true
	})
	if e, _ := v.Get(7); e.value != "NEW" {
		t.Fatalf("expected ForEachRef change, got %+v", e)
	}
}

func TestInsertOrUpdateHandles(t *testing.T) {
	traceToTest(t)
	v := New[uint8, entity]()
	ins, upd := v.InsertOrUpdate(4)
	if ins == nil || upd != nil {
		t.Fatalf("expected insert handle for absent key")
	}
	if ins.Key() != 4 || ins.Index() != 0 {
		t.Fatalf("unexpected insert handle %d@%d", ins.Key(), ins.Index())
	}
	ins.Insert(entity{id: 4, value: "four"})
	ins, upd = v.InsertOrUpdate(4)
	if ins != nil || upd == nil {
		t.Fatalf("expected update handle for present key")
	}
	if upd.Item().value != "four" {
		t.Fatalf("update handle sees %+v", upd.Item())
	}
	old := upd.Set(entity{id: 4, value: "FOUR"})
	if old.value != "four" {
		t.Fatalf("expected old value 'four', got %q", old.value)
	}
	if e, _ := v.Get(4); e.value != "FOUR" {
		t.Fatalf("update not stored: %+v", e)
	}
	expectPanic(t, "second Set", func() { upd.Set(entity{id: 4}) })
}

func TestInsertIfNotExists(t *testing.T) {
	v := New[uint8, entity]()
	ins, ok := v.InsertIfNotExists(2)
	if !ok {
		t.Fatalf("expected key 2 to be insertable")
	}
	if v.Len() != 0 {
		t.Fatalf("search must not insert a placeholder")
	}
	ins.Insert(entity{id: 2})
	if _, ok = v.InsertIfNotExists(2); ok {
		t.Fatalf("expected key 2 to exist")
	}
}

func TestGetMutOrCreate(t *testing.T) {
	v := New[uint8, entity]()
	ref, ins := v.GetMutOrCreate(9)
	if ref != nil || ins == nil {
		t.Fatalf("expected create branch")
	}
	ins.Insert(entity{id: 9, value: "x"})
	ref, ins = v.GetMutOrCreate(9)
	if ref == nil || ins != nil {
		t.Fatalf("expected get-mut branch")
	}
	ref.value = "y"
	if e, _ := v.Get(9); e.value != "y" {
		t.Fatalf("expected 'y', got %q", e.value)
	}
}

func TestUpsert(t *testing.T) {
	v := New[uint8, entity]()
	bump := func(old entity, exists bool) entity {
		if !exists {
			return entity{id: 1, value: "1"}
		}
		return entity{id: 1, value: old.value + "1"}
	}
	v.Upsert(1, bump)
	v.Upsert(1, bump)
	if e, _ := v.Get(1); e.value != "11" || v.Len() != 1 {
		t.Fatalf("unexpected upsert result %+v, len=%d", e, v.Len())
	}
	expectPanic(t, "key change in upsert", func() {
		v.Upsert(1, func(entity, bool) entity { return entity{id: 2} })
	})
}

func TestEntryHandleContract(t *testing.T) {
	v := New[uint8, entity]()
	ins, _ := v.InsertIfNotExists(3)
	expectPanic(t, "wrong key", func() { ins.Insert(entity{id: 4}) })
	ins.Insert(entity{id: 3})
	expectPanic(t, "double insert", func() { ins.Insert(entity{id: 3}) })

	stale, _ := v.InsertIfNotExists(5)
	v.InsertOrReplace(entity{id: 1})
	expectPanic(t, "stale insert entry", func() { stale.Insert(entity{id: 5}) })

	_, upd := v.InsertOrUpdate(3)
	v.Remove(1)
	expectPanic(t, "stale update entry", func() { upd.Item() })
	if err := v.Check(); err != nil {
		t.Fatalf("contract violations corrupted the vector: %v", err)
	}
}

func TestRangeAnchoring(t *testing.T) {
	v := New[uint8, entity]()
	for _, id := range []uint8{2, 4, 6, 8} {
		v.InsertOrReplace(entity{id: id})
	}
	all := keysOf(v)
	for k := uint8(0); k <= 9; k++ {
		up := v.GetFromKeyToUp(k)
		down := v.GetFromBottomToKey(k)
		var joined []uint8
		for _, e := range down {
			joined = append(joined, e.id)
		}
		for _, e := range up {
			if v.Contains(k) && e.id == k {
				continue // counted in down already
			}
			joined = append(joined, e.id)
		}
		if !slices.Equal(joined, all) {
			t.Fatalf("key %d: halves %v do not reconstruct %v", k, joined, all)
		}
	}
	if got := v.Range(3, 6); len(got) != 2 || got[0].id != 4 || got[1].id != 6 {
		t.Fatalf("expected [4 6] for Range(3,6), got %+v", got)
	}
	if got := v.Range(6, 3); len(got) != 0 {
		t.Fatalf("expected empty range for reversed bounds, got %+v", got)
	}
}

func TestReturnedViewsAreClipped(t *testing.T) {
	v := NewWithCapacity[uint8, entity](16)
	for _, id := range []uint8{1, 2, 3} {
		v.InsertOrReplace(entity{id: id})
	}
	view := v.GetFromBottomToKey(1)
	_ = append(view, entity{id: 99})
	if e, _ := v.At(1); e.id != 2 {
		t.Fatalf("appending to a view clobbered the vector: %+v", e)
	}
}

func TestClear(t *testing.T) {
	traceToTest(t)
	v := New[uint8, entity]()
	v.InsertOrReplace(entity{id: 1})
	v.Clear(32)
	if !v.IsEmpty() || v.Cap() < 32 {
		t.Fatalf("expected empty vector with capacity >= 32, got len=%d cap=%d", v.Len(), v.Cap())
	}
	v.Clear(0)
	if v.Cap() != 0 {
		t.Fatalf("expected released storage, got cap=%d", v.Cap())
	}
}

type span struct {
	lo, hi int
}

type spanned struct {
	s span
}

func (s spanned) Key() span { return s.s }

func compareSpan(a, b span) int {
	if a.lo != b.lo {
		return a.lo - b.lo
	}
	return a.hi - b.hi
}

func TestNewFuncCustomKey(t *testing.T) {
	v := NewFunc[span, spanned](compareSpan)
	v.InsertOrReplace(spanned{span{3, 4}})
	v.InsertOrReplace(spanned{span{1, 9}})
	v.InsertOrReplace(spanned{span{1, 2}})
	if err := v.Check(); err != nil {
		t.Fatal(err)
	}
	first, _ := v.First()
	if first.s != (span{1, 2}) {
		t.Fatalf("unexpected first key %+v", first.s)
	}
	if !v.Contains(span{1, 9}) {
		t.Fatalf("expected span {1,9}")
	}
}

func TestStrVecWithPrefix(t *testing.T) {
	v := NewStr[named]()
	for _, n := range []string{"apple", "apricot", "banana", "ap", "b", "avocado"} {
		v.InsertOrReplace(named{name: n})
	}
	var got []string
	for _, n := range v.WithPrefix("ap") {
		got = append(got, n.name)
	}
	if !slices.Equal(got, []string{"ap", "apple", "apricot"}) {
		t.Fatalf("unexpected prefix run %v", got)
	}
	if run := v.WithPrefix("c"); len(run) != 0 {
		t.Fatalf("expected empty prefix run, got %v", run)
	}
	if run := v.WithPrefix(""); len(run) != v.Len() {
		t.Fatalf("empty prefix should match everything, got %d", len(run))
	}
}

func TestCheckDetectsDisorder(t *testing.T) {
	v := New[uint8, entity]()
	v.InsertOrReplace(entity{id: 1})
	v.InsertOrReplace(entity{id: 2})
	v.GetRef(1).id = 5 // breaks the key invariant on purpose
	if err := v.Check(); !errors.Is(err, ErrUnordered) {
		t.Fatalf("expected ErrUnordered, got %v", err)
	}
}

func TestVecRandomizedAgainstModel(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	v := NewStr[named]()
	model := map[string]int{}
	for step := 0; step < 5000; step++ {
		key := string(rune('a'+r.Intn(26))) + string(rune('a'+r.Intn(26)))
		switch r.Intn(4) {
		case 0, 1:
			v.InsertOrReplace(named{name: key, count: step})
			model[key] = step
		case 2:
			_, ok := v.Remove(key)
			_, want := model[key]
			if ok != want {
				t.Fatalf("step %d: Remove(%q) = %v, model says %v", step, key, ok, want)
			}
			delete(model, key)
		case 3:
			n, ok := v.Get(key)
			want, wantOK := model[key]
			if ok != wantOK || (ok && n.count != want) {
				t.Fatalf("step %d: Get(%q) = %+v/%v, model says %d/%v", step, key, n, ok, want, wantOK)
			}
		}
		if v.Len() != len(model) {
			t.Fatalf("step %d: len %d, model %d", step, v.Len(), len(model))
		}
	}
	if err := v.Check(); err != nil {
		t.Fatal(err)
	}
	keys := make([]string, 0, len(model))
	for k := range model {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for i, n := range v.All() {
		if n.name != keys[i] {
			t.Fatalf("iteration order differs at %d: %q != %q", i, n.name, keys[i])
		}
	}
}
