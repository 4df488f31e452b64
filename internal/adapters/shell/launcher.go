// Package shell launches processes on the local machine.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/npmwrap/internal/core/domain"
	"go.trai.ch/npmwrap/internal/core/ports"
	"go.trai.ch/zerr"
)

type ptyProcess struct {
	cmd    *exec.Cmd
	ioDone <-chan struct{}
}

// Wait blocks until the command exits and its output has been drained.
func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()
	<-p.ioDone

	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	failErr := zerr.Wrap(err, domain.ErrCommandFailed.Error())
	return zerr.With(failErr, "exit_code", exitCode)
}

// Launcher implements ports.Launcher on the local machine using a pty.
type Launcher struct {
	logger  ports.Logger
	environ func() []string
}

// NewLauncher creates a new Launcher. Output of requests without a Stdout
// writer is line-logged through logger.
func NewLauncher(logger ports.Logger) *Launcher {
	return &Launcher{
		logger:  logger,
		environ: os.Environ,
	}
}

// Launch starts req.Command in a pty. The child sees the process environment
// overlaid with req.Env, and the executable is looked up on that PATH.
func (l *Launcher) Launch(ctx context.Context, req *domain.LaunchRequest) (ports.Process, error) {
	if len(req.Command) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	name := req.Command[0]
	args := req.Command[1:]

	cmdEnv := resolveEnvironment(l.environ(), req.Env)

	executable := name
	if !strings.ContainsRune(name, filepath.Separator) && !strings.ContainsRune(name, '/') {
		path, _ := cmdEnv.Get(domain.PathVar)
		lp, err := lookPath(name, path)
		if err != nil {
			notFound := zerr.With(domain.ErrCommandNotFound, "command", name)
			return nil, zerr.With(notFound, "path", path)
		}
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// Keep the name as invoked in argv[0].
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = req.Dir
	cmd.Env = cmdEnv.Lines()

	var outLog *logWriter
	stdout := req.Stdout
	if stdout == nil {
		outLog = &logWriter{logger: l.logger}
		stdout = outLog
	}

	// pty.Start leaves a preset Stderr alone, so a separate writer keeps its own stream.
	if req.Stderr != nil {
		cmd.Stderr = req.Stderr
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		startErr := zerr.Wrap(err, domain.ErrCommandStartFailed.Error())
		return nil, zerr.With(startErr, "command", name)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		if outLog != nil {
			defer func() { _ = outLog.Close() }()
		}
		_, _ = io.Copy(stdout, ptmx)
	}()

	return &ptyProcess{cmd: cmd, ioDone: ioDone}, nil
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
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
	// PTYs may introduce \r.
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}

// resolveEnvironment overlays the request's lines on the process environment.
func resolveEnvironment(sysEnv, reqEnv []string) *domain.Environment {
	env := domain.EnvironmentFromLines(sysEnv)
	for _, line := range reqEnv {
		env.AddLine(line)
	}
	return env
}

// lookPath searches for an executable in the directories named by path.
func lookPath(file, path string) (string, error) {
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
