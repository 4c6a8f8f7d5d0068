// Package daemon implements the lifecycle subcommands of SPEC_FULL §4.9:
// start/stop/status/restart, backed by a PID file guarded with
// github.com/gofrs/flock so a second `start` fails fast instead of racing
// a live instance.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
)

// PIDFileName is the lock/PID file's name inside os.TempDir().
const PIDFileName = "lexiserve.pid"

// ReexecEnvVar is set in the child process's environment when --daemon
// re-execs the current binary to detach it from the launching terminal.
const ReexecEnvVar = "LEXISERVE_DAEMONIZED"

// Lock wraps the PID file lock for the lifecycle subcommands.
type Lock struct {
	path string
	fl   *flock.Flock
}

// NewLock returns a Lock over the default PID file path.
func NewLock() *Lock {
	path := filepath.Join(os.TempDir(), PIDFileName)
	return &Lock{path: path, fl: flock.New(path)}
}

// Path returns the PID file's path.
func (l *Lock) Path() string { return l.path }

// Start acquires the lock (failing if another daemon already holds it)
// and records the current process's PID in the file.
func (l *Lock) Start() error {
	acquired, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire PID lock: %w", err)
	}
	if !acquired {
		pid, _ := l.readPID()
		return fmt.Errorf("lexiserve is already running (pid %d)", pid)
	}
	if err := os.WriteFile(l.path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		l.fl.Unlock()
		return fmt.Errorf("write PID file: %w", err)
	}
	return nil
}

// Stop sends SIGTERM to the PID recorded in the lock file.
func (l *Lock) Stop() error {
	pid, err := l.readPID()
	if err != nil {
		return fmt.Errorf("no running daemon found: %w", err)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal process %d: %w", pid, err)
	}
	return nil
}

// Status reports whether the lock is currently held and by which PID.
func (l *Lock) Status() (running bool, pid int) {
	locked, err := l.fl.TryLock()
	if err != nil {
		return false, 0
	}
	if locked {
		l.fl.Unlock()
		p, _ := l.readPID()
		return false, p
	}
	p, _ := l.readPID()
	return true, p
}

// Release releases the lock, leaving the PID file in place for a later
// Status call to report the last-known PID.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}

func (l *Lock) readPID() (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// IsDaemonized reports whether the current process is the re-exec'd
// child spawned by a --daemon start.
func IsDaemonized() bool {
	return os.Getenv(ReexecEnvVar) == "1"
}

// Daemonize re-execs the current binary with ReexecEnvVar set and
// stdio redirected to /dev/null, detaching it from the launching
// terminal, the way small Go services fork without an init-system
// integration.
func Daemonize(args []string) (*os.Process, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open devnull: %w", err)
	}
	defer devNull.Close()

	proc, err := os.StartProcess(exe, append([]string{exe}, args...), &os.ProcAttr{
		Env:   append(os.Environ(), ReexecEnvVar+"=1"),
		Files: []*os.File{devNull, devNull, devNull},
	})
	if err != nil {
		return nil, fmt.Errorf("re-exec daemon: %w", err)
	}
	return proc, nil
}
