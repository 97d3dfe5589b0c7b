package analyzer

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBench struct{ err error }

func (b failingBench) GrowToSize(*listSubject, int, *rand.Rand) error { return b.err }
func (failingBench) ExecuteOperation(*listSubject, *rand.Rand) error { return nil }

type panickingBench struct{}

func (panickingBench) GrowToSize(*listSubject, int, *rand.Rand) error { panic("grow exploded") }
func (panickingBench) ExecuteOperation(*listSubject, *rand.Rand) error { return nil }

// cancellingBench cancels the run's context after growing.
type cancellingBench struct {
	appendBench
	cancel context.CancelFunc
}

func (b *cancellingBench) ExecuteOperation(s *listSubject, rng *rand.Rand) error {
	b.cancel()
	return b.appendBench.ExecuteOperation(s, rng)
}

func leaf(name string) *Analyzer[*listSubject] {
	return New(name, &listSubject{}, &appendBench{}, WithClock(newFakeClock(time.Nanosecond)))
}

func TestComposite_RunsChildrenInOrder(t *testing.T) {
	c := NewComposite("suite")
	require.NoError(t, c.Add(leaf("a"), leaf("b"), leaf("c")))

	results := c.Run(context.Background(), []int{1, 10})

	assert.Equal(t, []string{"a", "b", "c"}, results.Names())
	for _, o := range results {
		assert.NoError(t, o.Err)
		assert.Len(t, o.Samples, 2)
	}
	assert.NoError(t, results.Err())
	assert.Empty(t, results.Failed())
}

func TestComposite_FailureIsolation(t *testing.T) {
	c := NewComposite("suite")
	bad := New("a", &listSubject{}, failingBench{err: errors.New("grow failed")})
	require.NoError(t, c.Add(bad, leaf("b")))

	results := c.Run(context.Background(), []int{1, 10, 100})
	require.Len(t, results, 2)

	a, ok := results.Get("a")
	require.True(t, ok)
	assert.ErrorContains(t, a.Err, "grow failed")

	b, ok := results.Get("b")
	require.True(t, ok)
	assert.NoError(t, b.Err)
	assert.Len(t, b.Samples, 3)

	assert.Equal(t, []string{"a"}, results.Failed().Names())
	assert.ErrorContains(t, results.Err(), "a: ")
}

func TestComposite_PanicIsolation(t *testing.T) {
	c := NewComposite("suite")
	require.NoError(t, c.Add(New("boom", &listSubject{}, panickingBench{}), leaf("ok")))

	results := c.Run(context.Background(), []int{1})
	require.Len(t, results, 2)

	boom, _ := results.Get("boom")
	var perr *PanicError
	require.ErrorAs(t, boom.Err, &perr)
	assert.Equal(t, "grow exploded", perr.Value)
	assert.NotEmpty(t, perr.Stack)

	ok, _ := results.Get("ok")
	assert.NoError(t, ok.Err)
}

func TestComposite_NestedQualifiedNames(t *testing.T) {
	hash := NewComposite("hash")
	require.NoError(t, hash.Add(leaf("access"), leaf("insert")))

	matrix := NewComposite("matrix")
	inner := NewComposite("contiguous")
	require.NoError(t, inner.Add(leaf("access")))
	require.NoError(t, matrix.Add(inner, leaf("determinant")))

	root := NewComposite("root")
	require.NoError(t, root.Add(hash, matrix))

	want := []string{
		"hash/access",
		"hash/insert",
		"matrix/contiguous/access",
		"matrix/determinant",
	}

	results := root.Run(context.Background(), []int{1})
	assert.Equal(t, want, results.Names())
	assert.Equal(t, len(want), root.Len())

	var walked []string
	root.Walk(func(name string) { walked = append(walked, name) })
	assert.Equal(t, want, walked)

	// Names are relative to the composite that was run.
	sub := matrix.Run(context.Background(), []int{1})
	assert.Equal(t, []string{"contiguous/access", "determinant"}, sub.Names())
}

func TestComposite_OneOutcomePerLeafWithNestedFailures(t *testing.T) {
	group := NewComposite("group")
	require.NoError(t, group.Add(
		New("panics", &listSubject{}, panickingBench{}),
		New("fails", &listSubject{}, failingBench{err: errors.New("nope")}),
		leaf("works"),
	))
	root := NewComposite("root")
	require.NoError(t, root.Add(group, leaf("after")))

	results := root.Run(context.Background(), []int{2})
	assert.Equal(t, []string{"group/panics", "group/fails", "group/works", "after"}, results.Names())
	assert.Len(t, results.Failed(), 2)
	assert.Len(t, results.Map(), 4)
}

func TestComposite_EmptyRun(t *testing.T) {
	c := NewComposite("empty")

	results := c.Run(context.Background(), []int{1, 2})
	assert.Empty(t, results)
	assert.NoError(t, results.Err())
	assert.Zero(t, c.Len())
}

func TestComposite_Add(t *testing.T) {
	t.Run("duplicate sibling name", func(t *testing.T) {
		c := NewComposite("suite")
		require.NoError(t, c.Add(leaf("a")))

		err := c.Add(leaf("b"), leaf("a"))
		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.Len(t, c.Children(), 1, "nothing added on error")
	})

	t.Run("duplicate within one call", func(t *testing.T) {
		c := NewComposite("suite")
		assert.ErrorIs(t, c.Add(leaf("a"), leaf("a")), ErrDuplicateName)
	})

	t.Run("same name under different parents", func(t *testing.T) {
		x := NewComposite("x")
		y := NewComposite("y")
		require.NoError(t, x.Add(leaf("access")))
		require.NoError(t, y.Add(leaf("access")))

		root := NewComposite("root")
		assert.NoError(t, root.Add(x, y))
	})

	t.Run("nil child", func(t *testing.T) {
		c := NewComposite("suite")
		var missing *Analyzer[*listSubject]
		assert.Error(t, c.Add(nil))
		assert.Error(t, c.Add(missing))
		assert.Empty(t, c.Children())
	})

	t.Run("name containing separator", func(t *testing.T) {
		group := NewComposite("a")
		require.NoError(t, group.Add(leaf("b")))

		root := NewComposite("root")
		err := root.Add(group, leaf("a"+Separator+"b"))
		assert.ErrorIs(t, err, ErrInvalidName)
		assert.Empty(t, root.Children(), "nothing added on error")

		require.NoError(t, root.Add(group, leaf("c")))
		results := root.Run(context.Background(), []int{1})
		assert.Len(t, results.Map(), len(results), "qualified names are unique")

		assert.ErrorIs(t, root.Add(NewComposite("x"+Separator+"y")), ErrInvalidName)
	})

	t.Run("self and ancestors", func(t *testing.T) {
		root := NewComposite("root")
		mid := NewComposite("mid")
		inner := NewComposite("inner")
		require.NoError(t, root.Add(mid))
		require.NoError(t, mid.Add(inner))

		assert.ErrorIs(t, root.Add(root), ErrCycle)
		assert.ErrorIs(t, inner.Add(inner), ErrCycle)
		assert.ErrorIs(t, inner.Add(mid), ErrCycle)
		assert.ErrorIs(t, inner.Add(root), ErrCycle)
		assert.Zero(t, root.Len())
	})

	t.Run("node owned by another composite", func(t *testing.T) {
		shared := leaf("shared")
		x := NewComposite("x")
		y := NewComposite("y")
		require.NoError(t, x.Add(shared))

		err := y.Add(leaf("other"), shared)
		assert.ErrorIs(t, err, ErrAlreadyAdded)
		assert.Empty(t, y.Children(), "nothing added on error")

		var other []string
		require.NoError(t, y.Add(leaf("other")))
		y.Walk(func(name string) { other = append(other, name) })
		assert.Equal(t, []string{"other"}, other)
	})

	t.Run("failed add leaves children unowned", func(t *testing.T) {
		free := leaf("free")
		c := NewComposite("suite")
		require.Error(t, c.Add(free, nil))

		d := NewComposite("other")
		assert.NoError(t, d.Add(free))
	})
}

func TestComposite_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := New("first", &listSubject{}, &cancellingBench{cancel: cancel}, WithClock(newFakeClock(time.Nanosecond)))
	group := NewComposite("group")
	require.NoError(t, group.Add(leaf("x"), leaf("y")))

	c := NewComposite("suite")
	require.NoError(t, c.Add(first, group, leaf("last")))

	results := c.Run(ctx, []int{1, 2, 3})
	require.Equal(t, []string{"first", "group/x", "group/y", "last"}, results.Names())

	// The size in flight completes; the next one sees the cancellation.
	f, _ := results.Get("first")
	assert.Len(t, f.Samples, 1)
	assert.ErrorIs(t, f.Err, context.Canceled)

	for _, name := range []string{"group/x", "group/y", "last"} {
		o, _ := results.Get(name)
		assert.ErrorIs(t, o.Err, context.Canceled, name)
		assert.Empty(t, o.Samples, name)
	}
}
