package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/unitext"
)

// DefaultTimeout bounds a single DoString or DoFile call.
const DefaultTimeout = 5 * time.Second

// Runner owns one Lua state.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes calls
// from Go, so a Runner may be shared but scripts never run in parallel.
type Runner struct {
	L *lua.LState

	mu      sync.Mutex
	out     io.Writer
	timeout time.Duration
	textOps []unitext.Option
	closed  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects print. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithTimeout bounds each execution. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithTextOptions applies opts to every Text a script constructs.
func WithTextOptions(opts ...unitext.Option) Option {
	return func(r *Runner) {
		r.textOps = append(r.textOps, opts...)
	}
}

// New creates a sandboxed Runner with the unitext module installed.
func New(opts ...Option) *Runner {
	r := &Runner{
		out:     os.Stdout,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug and package stay closed; drop the loaders base opened.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(r.print))

	r.L = L
	registerModule(L, r.textOps)
	return r
}

// DoString executes a chunk of Lua source.
func (r *Runner) DoString(ctx context.Context, code string) error {
	return r.run(ctx, func() error { return r.L.DoString(code) })
}

// DoFile executes the Lua file at path.
func (r *Runner) DoFile(ctx context.Context, path string) error {
	return r.run(ctx, func() error { return r.L.DoFile(path) })
}

func (r *Runner) run(ctx context.Context, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()

	if err := fn(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return err
	}
	return nil
}

// Close releases the Lua state. Further calls return ErrClosed.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.closed {
		r.L.Close()
		r.closed = true
	}
}

// print writes its arguments tab-separated, like the stock print.
func (r *Runner) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
