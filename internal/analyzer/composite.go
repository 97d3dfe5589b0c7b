package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"runtime/debug"
	"strings"
	"time"
)

// Separator joins ancestor names into a qualified leaf name.
const Separator = "/"

// Node is an analyzer or a composite of analyzers.
//
// The interface is sealed: only *Analyzer and *Composite implement it.
type Node interface {
	Name() string

	parent() *Composite
	setParent(c *Composite)
	collect(ctx context.Context, sizes []int, prefix string, out *Results)
	walk(prefix string, fn func(name string))
	leaves() int
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + Separator + name
}

// Outcome is the result of running one leaf analyzer.
type Outcome struct {
	// Name is the leaf name qualified by its ancestors below the composite
	// that was run.
	Name string

	// Samples holds the samples measured before any failure.
	Samples []Sample

	// Err is nil when every size was measured.
	Err error

	Elapsed time.Duration
}

// Results holds outcomes in the order the leaves ran.
type Results []Outcome

// Get returns the outcome with the given qualified name.
func (r Results) Get(name string) (Outcome, bool) {
	for _, o := range r {
		if o.Name == name {
			return o, true
		}
	}
	return Outcome{}, false
}

// Map returns the measured samples keyed by qualified name.
func (r Results) Map() map[string][]Sample {
	m := make(map[string][]Sample, len(r))
	for _, o := range r {
		m[o.Name] = o.Samples
	}
	return m
}

// Failed returns the outcomes that carry an error.
func (r Results) Failed() Results {
	var failed Results
	for _, o := range r {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Names returns the qualified names in run order.
func (r Results) Names() []string {
	names := make([]string, len(r))
	for i, o := range r {
		names[i] = o.Name
	}
	return names
}

// Err joins the errors of every failed outcome. It returns nil when all
// leaves succeeded.
func (r Results) Err() error {
	var errs []error
	for _, o := range r {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Name, o.Err))
		}
	}
	return errors.Join(errs...)
}

// CompositeOption configures a Composite.
type CompositeOption func(*Composite)

// WithCompositeLogger sets the logger used to report child progress.
func WithCompositeLogger(l *slog.Logger) CompositeOption {
	return func(c *Composite) {
		if l != nil {
			c.logger = l
		}
	}
}

// Composite is a named, ordered group of nodes run as a unit.
type Composite struct {
	name     string
	children []Node
	logger   *slog.Logger
	owner    *Composite
}

var _ Node = (*Composite)(nil)

// NewComposite creates an empty composite.
func NewComposite(name string, opts ...CompositeOption) *Composite {
	c := &Composite{
		name:   name,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the composite's name.
func (c *Composite) Name() string {
	return c.name
}

// Add appends children in order and takes ownership of them. A node belongs
// to at most one composite.
//
// Nothing is added if any child is nil, has a name containing Separator, is
// already owned, is c or one of its ancestors, or has a name already taken
// by a sibling.
func (c *Composite) Add(children ...Node) error {
	seen := make(map[string]struct{}, len(c.children)+len(children))
	for _, child := range c.children {
		seen[child.Name()] = struct{}{}
	}

	for i, child := range children {
		if isNil(child) {
			return fmt.Errorf("composite %s: child %d is nil", c.name, i)
		}
		name := child.Name()
		if strings.Contains(name, Separator) {
			return fmt.Errorf("composite %s: %w: %q contains %q", c.name, ErrInvalidName, name, Separator)
		}
		if c.hasAncestor(child) {
			return fmt.Errorf("composite %s: %w: %q", c.name, ErrCycle, name)
		}
		if p := child.parent(); p != nil {
			return fmt.Errorf("composite %s: %w: %q is a child of %s", c.name, ErrAlreadyAdded, name, p.name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("composite %s: %w: %q", c.name, ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
	}

	for _, child := range children {
		child.setParent(c)
	}
	c.children = append(c.children, children...)
	return nil
}

// hasAncestor reports whether n is c or one of c's ancestors.
func (c *Composite) hasAncestor(n Node) bool {
	for p := c; p != nil; p = p.owner {
		if Node(p) == n {
			return true
		}
	}
	return false
}

// Children returns the direct children in registration order.
func (c *Composite) Children() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

// Len returns the number of leaf analyzers in the subtree.
func (c *Composite) Len() int {
	return c.leaves()
}

// Walk calls fn with the qualified name of every leaf in run order.
func (c *Composite) Walk(fn func(name string)) {
	for _, child := range c.children {
		child.walk("", fn)
	}
}

// Run runs every leaf in the subtree exactly once, depth-first in
// registration order, and returns one outcome per leaf.
//
// A failing or panicking child does not stop its siblings. Once ctx is done
// the leaves not yet run are reported with ctx.Err().
func (c *Composite) Run(ctx context.Context, sizes []int) Results {
	out := make(Results, 0, c.leaves())
	c.collectChildren(ctx, sizes, "", &out)
	return out
}

func (c *Composite) collect(ctx context.Context, sizes []int, prefix string, out *Results) {
	c.collectChildren(ctx, sizes, qualify(prefix, c.name), out)
}

func (c *Composite) collectChildren(ctx context.Context, sizes []int, prefix string, out *Results) {
	for _, child := range c.children {
		if err := ctx.Err(); err != nil {
			child.walk(prefix, func(name string) {
				*out = append(*out, Outcome{Name: name, Err: err})
			})
			continue
		}
		c.runChild(ctx, child, sizes, prefix, out)
	}
}

// runChild runs one child and converts a panic into outcomes for the leaves
// the child had not yet reported.
func (c *Composite) runChild(ctx context.Context, child Node, sizes []int, prefix string, out *Results) {
	name := qualify(prefix, child.Name())
	before := len(*out)
	start := time.Now()

	c.logger.Debug("running analyzer", "name", name, "sizes", len(sizes))

	defer func() {
		if r := recover(); r != nil {
			perr := &PanicError{Value: r, Stack: debug.Stack()}
			c.logger.Warn("analyzer panicked", "name", name, "panic", r)

			reported := make(map[string]struct{}, len(*out)-before)
			for _, o := range (*out)[before:] {
				reported[o.Name] = struct{}{}
			}
			child.walk(prefix, func(leaf string) {
				if _, ok := reported[leaf]; ok {
					return
				}
				*out = append(*out, Outcome{Name: leaf, Err: perr, Elapsed: time.Since(start)})
			})
		}
	}()

	child.collect(ctx, sizes, prefix, out)

	// Nested composites log their own children.
	if _, ok := child.(*Composite); ok {
		return
	}
	for _, o := range (*out)[before:] {
		if o.Err != nil {
			c.logger.Warn("analyzer failed", "name", o.Name, "error", o.Err)
		}
	}
}

func (c *Composite) parent() *Composite { return c.owner }
func (c *Composite) setParent(p *Composite) { c.owner = p }

func (c *Composite) walk(prefix string, fn func(name string)) {
	for _, child := range c.children {
		child.walk(qualify(prefix, c.name), fn)
	}
}

func (c *Composite) leaves() int {
	n := 0
	for _, child := range c.children {
		n += child.leaves()
	}
	return n
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
