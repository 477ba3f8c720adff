// Package hooks runs user scripts when the gallery changes.
//
// Scripts live in {hooks_dir}/{hook point}/ and run in name order. Only
// executable files are considered. Each script receives HOOK_POINT,
// HOOK_TIMESTAMP and the event variables (CAMTRAY_REF, CAMTRAY_COUNT) in its
// environment.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/cristianoliveira/camtray/internal/logging"
)

// Failure modes.
const (
	FailureWarn   = "warn"
	FailureIgnore = "ignore"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxAsync = 10
	hookWaitDelay   = 500 * time.Millisecond
)

// ErrTooManyPending is returned when the async limit is reached.
var ErrTooManyPending = errors.New("hooks: too many pending async hooks")

// Runner executes hook scripts.
type Runner struct {
	dir         string
	failureMode string
	async       bool
	timeout     time.Duration
	maxAsync    int
	logger      logging.Logger
	now         func() time.Time

	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

// Option configures a Runner.
type Option func(*Runner)

// WithAsync runs scripts in the background. Wait blocks until they finish.
func WithAsync(async bool) Option {
	return func(r *Runner) { r.async = async }
}

// WithTimeout bounds each script run.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithFailureMode selects whether failures are logged as warnings or ignored.
func WithFailureMode(mode string) Option {
	return func(r *Runner) {
		if mode == FailureWarn || mode == FailureIgnore {
			r.failureMode = mode
		}
	}
}

// WithLogger sets the runner logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner for scripts under dir.
func NewRunner(dir string, opts ...Option) *Runner {
	r := &Runner{
		dir:         dir,
		failureMode: FailureWarn,
		timeout:     defaultTimeout,
		maxAsync:    defaultMaxAsync,
		logger:      logging.With("component", "hooks"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromConfig creates a Runner from the hooks_* configuration keys.
func NewFromConfig() *Runner {
	return NewRunner(config.Get("hooks_dir", ""),
		WithAsync(config.GetBool("hooks_async", false)),
		WithTimeout(config.GetSeconds("hooks_timeout", defaultTimeout)),
		WithFailureMode(config.Get("hooks_failure_mode", FailureWarn)),
	)
}

// Dir returns the hooks root directory.
func (r *Runner) Dir() string {
	return r.dir
}

// Run executes every script for point. A missing directory means no hooks.
// In sync mode every script runs and the failures are joined; in async
// mode only start failures are reported.
func (r *Runner) Run(ctx context.Context, point string, env map[string]string) error {
	scripts := r.scripts(point)
	if len(scripts) == 0 {
		return nil
	}
	r.logger.Debug("running hooks", "point", point, "scripts", len(scripts), "async", r.async)

	environ := r.environ(point, env)
	var errs []error
	for _, script := range scripts {
		if r.async {
			if err := r.startAsync(script, environ); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := r.runScript(ctx, script, environ); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until every async script has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Pending returns the number of async scripts still running.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

func (r *Runner) scripts(point string) []string {
	if r.dir == "" {
		return nil
	}
	dir := filepath.Join(r.dir, point)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, e.Name()))
	}
	sort.Strings(scripts)
	return scripts
}

func (r *Runner) environ(point string, env map[string]string) []string {
	environ := append(os.Environ(),
		"HOOK_POINT="+point,
		"HOOK_TIMESTAMP="+r.now().Format(time.RFC3339),
	)
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+env[k])
	}
	return environ
}

func (r *Runner) command(ctx context.Context, script string, environ []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	cmd.WaitDelay = hookWaitDelay
	return cmd
}

func (r *Runner) runScript(ctx context.Context, script string, environ []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	output, err := r.command(ctx, script, environ).CombinedOutput()
	return r.report(script, time.Since(start), strings.TrimSpace(string(output)), err)
}

func (r *Runner) startAsync(script string, environ []string) error {
	r.mu.Lock()
	if r.pending >= r.maxAsync {
		r.mu.Unlock()
		r.logger.Warn("skipping hook, too many pending", "script", filepath.Base(script), "max", r.maxAsync)
		return fmt.Errorf("%w: %s", ErrTooManyPending, filepath.Base(script))
	}
	r.pending++
	r.wg.Add(1)
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	cmd := r.command(ctx, script, environ)
	start := time.Now()
	if err := cmd.Start(); err != nil {
		cancel()
		r.done()
		return r.report(script, 0, "", err)
	}
	go func() {
		defer r.done()
		defer cancel()
		err := cmd.Wait()
		_ = r.report(script, time.Since(start), "", err)
	}()
	return nil
}

func (r *Runner) done() {
	r.mu.Lock()
	r.pending--
	r.mu.Unlock()
	r.wg.Done()
}

func (r *Runner) report(script string, took time.Duration, output string, err error) error {
	name := filepath.Base(script)
	if err == nil {
		r.logger.Debug("hook completed", "script", name, "duration", took.String())
		return nil
	}
	if r.failureMode == FailureWarn {
		r.logger.Warn("hook failed", "script", name, "error", err, "output", output)
	}
	return fmt.Errorf("hook %s: %w", name, err)
}
