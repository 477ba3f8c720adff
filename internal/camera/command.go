package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/camtray/internal/colors"
	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/google/uuid"
)

// FileURLPrefix is the path prefix ConvertFileSrc uses for served files.
const FileURLPrefix = "/_capture_file_"

const (
	commandWaitDelay      = 500 * time.Millisecond
	defaultCommandTimeout = 15 * time.Second
)

const (
	exitCodeCannotExecute = 126
	exitCodeInterrupted   = 130
)

// CommandConfig configures a CommandCapability.
//
// CaptureCommand and PickerCommand are shell snippets run with "sh -c". The
// placeholders {output}, {direction}, {width}, {height}, {quality} and
// {library_dir} are replaced with shell-quoted values before running.
type CommandConfig struct {
	CaptureCommand string
	PickerCommand  string
	PhotosDir      string
	LibraryDir     string
	// FileBaseURL, when set, makes ConvertFileSrc return URLs served by the
	// file server instead of file:// URIs.
	FileBaseURL string
	// Timeout bounds a single command run. Zero means no limit.
	Timeout time.Duration
}

// CommandConfigFromGlobal builds a CommandConfig from the loaded configuration.
func CommandConfigFromGlobal() CommandConfig {
	cfg := CommandConfig{
		CaptureCommand: config.Get("capture_command", ""),
		PickerCommand:  config.Get("picker_command", ""),
		PhotosDir:      config.Get("photos_dir", ""),
		LibraryDir:     config.Get("library_dir", ""),
		Timeout:        config.GetSeconds("capture_timeout", defaultCommandTimeout),
	}
	if config.GetBool("fileserver_enabled", false) {
		cfg.FileBaseURL = FileBaseURL(config.Get("fileserver_addr", ""))
	}
	return cfg
}

// FileBaseURL turns a listen address into the URL clients reach it at. An
// empty or unspecified host becomes the loopback address.
func FileBaseURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// CommandCapability implements Capability by running external programs.
type CommandCapability struct {
	cfg      CommandConfig
	lookPath func(file string) (string, error)
	newID    func() string
	run      func(ctx context.Context, script string) (stdout, stderr string, err error)
}

// NewCommandCapability creates a CommandCapability.
func NewCommandCapability(cfg CommandConfig) *CommandCapability {
	return &CommandCapability{
		cfg:      cfg,
		lookPath: exec.LookPath,
		newID:    uuid.NewString,
		run:      runShell,
	}
}

func runShell(ctx context.Context, script string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	// Children of the shell may keep the output pipes open after it is killed.
	cmd.WaitDelay = commandWaitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	start := time.Now()
	err := cmd.Run()
	colors.Debug(fmt.Sprintf("camera command finished in %.2fs: %v", time.Since(start).Seconds(), err))
	return stdout.String(), stderr.String(), err
}

// CheckPermissions derives the permission state from the local environment:
// a resolvable program and a usable directory per source.
func (c *CommandCapability) CheckPermissions(ctx context.Context) (PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return PermissionStatus{}, err
	}
	if strings.TrimSpace(c.cfg.CaptureCommand) == "" && strings.TrimSpace(c.cfg.PickerCommand) == "" {
		return PermissionStatus{}, errors.New("camera: no capture or picker command configured")
	}
	return PermissionStatus{
		Camera: c.permissionFor(c.cfg.CaptureCommand, c.cfg.PhotosDir, true),
		Photos: c.permissionFor(c.cfg.PickerCommand, c.cfg.LibraryDir, false),
	}, nil
}

func (c *CommandCapability) permissionFor(command, dir string, needWrite bool) PermissionState {
	program := firstWord(command)
	if program == "" {
		return PermissionDenied
	}
	if _, err := c.lookPath(program); err != nil {
		return PermissionDenied
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return PermissionPrompt
	}
	if needWrite && !dirWritable(dir) {
		return PermissionDenied
	}
	return PermissionGranted
}

// RequestPermissions creates the photos directory, then re-checks.
func (c *CommandCapability) RequestPermissions(ctx context.Context) (PermissionStatus, error) {
	if c.cfg.PhotosDir != "" {
		if err := os.MkdirAll(c.cfg.PhotosDir, config.FileModeDir); err != nil {
			return PermissionStatus{}, fmt.Errorf("camera: create photos directory: %w", err)
		}
	}
	return c.CheckPermissions(ctx)
}

// GetPhoto runs the capture or picker command for opts.Source.
func (c *CommandCapability) GetPhoto(ctx context.Context, opts Options) (Photo, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	switch opts.Source {
	case SourceLibrary:
		return c.pick(ctx, opts)
	case SourceCamera, "":
		return c.capture(ctx, opts)
	default:
		return Photo{}, fmt.Errorf("camera: unknown source %q", opts.Source)
	}
}

func (c *CommandCapability) capture(ctx context.Context, opts Options) (Photo, error) {
	if strings.TrimSpace(c.cfg.CaptureCommand) == "" {
		return Photo{}, fmt.Errorf("%w: no capture command configured", ErrPermissionDenied)
	}
	output := filepath.Join(c.cfg.PhotosDir, c.newID()+".jpg")
	script := c.expand(c.cfg.CaptureCommand, opts, output)
	_, stderr, err := c.run(ctx, script)
	if err != nil {
		return Photo{}, classifyRunError(ctx, err, stderr, "")
	}
	if _, err := os.Stat(output); err != nil {
		// The command succeeded without producing a file.
		return Photo{}, nil
	}
	return Photo{Path: output}, nil
}

func (c *CommandCapability) pick(ctx context.Context, opts Options) (Photo, error) {
	if strings.TrimSpace(c.cfg.PickerCommand) == "" {
		return Photo{}, fmt.Errorf("%w: no picker command configured", ErrPermissionDenied)
	}
	script := c.expand(c.cfg.PickerCommand, opts, "")
	stdout, stderr, err := c.run(ctx, script)
	selected := firstLine(stdout)
	if err != nil {
		return Photo{}, classifyRunError(ctx, err, stderr, selected)
	}
	if selected == "" {
		return Photo{}, ErrCancelled
	}
	if isURL(selected) {
		return Photo{WebPath: selected}, nil
	}
	if !filepath.IsAbs(selected) {
		selected = filepath.Join(c.cfg.LibraryDir, selected)
	}
	if _, err := os.Stat(selected); err != nil {
		return Photo{}, nil
	}
	return Photo{Path: selected}, nil
}

// classifyRunError maps a failed command run onto the boundary errors.
func classifyRunError(ctx context.Context, err error, stderr, stdout string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		switch code := exitErr.ExitCode(); {
		case code == exitCodeInterrupted:
			return ErrCancelled
		case code == exitCodeCannotExecute:
			return fmt.Errorf("%w: %s", ErrPermissionDenied, strings.TrimSpace(stderr))
		case code == 1 && stdout == "" && strings.TrimSpace(stderr) == "":
			// Dialog pickers exit 1 with no output when dismissed.
			return ErrCancelled
		}
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("camera command failed: %w: %s", err, msg)
	}
	return fmt.Errorf("camera command failed: %w", err)
}

func (c *CommandCapability) expand(command string, opts Options, output string) string {
	direction := DirectionRear
	if opts.Direction != nil {
		direction = *opts.Direction
	}
	replacer := strings.NewReplacer(
		"{output}", shellQuote(output),
		"{direction}", string(direction),
		"{width}", strconv.Itoa(opts.Width),
		"{height}", strconv.Itoa(opts.Height),
		"{quality}", strconv.Itoa(opts.Quality),
		"{library_dir}", shellQuote(c.cfg.LibraryDir),
	)
	return replacer.Replace(command)
}

// ConvertFileSrc turns a filesystem path into a URL the UI can display.
func (c *CommandCapability) ConvertFileSrc(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	escaped := (&url.URL{Path: filepath.ToSlash(abs)}).EscapedPath()
	if base := strings.TrimRight(c.cfg.FileBaseURL, "/"); base != "" {
		return base + FileURLPrefix + escaped
	}
	return "file://" + escaped
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func firstWord(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "file", "blob", "data":
		return true
	}
	return false
}

func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".write_test-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
