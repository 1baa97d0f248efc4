// Package shell runs hook commands through the system shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HookRunner = (*Runner)(nil)

// defaultShell is used when no sh is found on PATH.
const defaultShell = "/bin/sh"

// Runner implements ports.HookRunner with `sh -c`.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner reporting command output to logger.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes command in cwd and waits for it. Stdout lines are logged at
// info level and stderr lines at warn level.
func (r *Runner) Run(ctx context.Context, cwd, command string, env []string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}

	cmdEnv := resolveEnvironment(os.Environ(), env)

	shell := defaultShell
	if lp, err := lookPath("sh", cmdEnv); err == nil {
		shell = lp
	}

	stdout := &logWriter{emit: r.logger.Info}
	stderr := &logWriter{emit: r.logger.Warn}

	cmd := exec.CommandContext(ctx, shell, "-c", command) //nolint:gosec // hook commands come from the project config
	cmd.Dir = cwd
	cmd.Env = cmdEnv
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	_ = stdout.Close()
	_ = stderr.Close()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.Wrap(err, domain.ErrHookFailed.Error())
		err = zerr.With(err, "command", command)
		return zerr.With(err, "exit_code", exitCode)
	}
	return nil
}

// logWriter forwards complete lines to emit.
type logWriter struct {
	emit func(string)
	buf  []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	w.emit(strings.TrimSuffix(string(line), "\r"))
}

// resolveEnvironment overlays the hook variables on the process environment.
// Later entries win; keys keep their first position.
func resolveEnvironment(sysEnv, hookEnv []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(hookEnv))
	order := make([]string, 0, len(sysEnv)+len(hookEnv))

	for _, entries := range [][]string{sysEnv, hookEnv} {
		for _, entry := range entries {
			k, v, ok := strings.Cut(entry, "=")
			if !ok {
				continue
			}
			if _, seen := envMap[k]; !seen {
				order = append(order, k)
			}
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
