// Package dotproc spawns the Graphviz `dot` binary as a child process to
// rasterize DOT text into PNG output (spec §5, §6: the --debug pipeline's
// three checkpoint images). The child runs in its own process group, set
// via syscall.SysProcAttr the way clientserver/server.go isolates its bash
// subcommand's session, and golang.org/x/sys/unix.Kill is used to tear the
// group down if the write half of the pipe stalls past the deadline, rather
// than leaving an orphaned dot process behind.
package dotproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// ErrDotNotFound is returned when the configured dot binary cannot be
// located or executed.
var ErrDotNotFound = errors.New("dotproc: dot binary not found or not executable")

// RenderTimeout bounds how long a single dot invocation may run before its
// process group is killed.
const RenderTimeout = 10 * time.Second

// RenderPNG pipes dotSource into `<dotPath> -Tpng` and returns the rendered
// PNG bytes. dotPath is typically "dot" (resolved via PATH).
func RenderPNG(dotPath, dotSource string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), RenderTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, dotPath, "-Tpng")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	cmd.Stdin = bytes.NewBufferString(dotSource)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDotNotFound, err)
	}

	waitErr := cmd.Wait()
	if ctx.Err() == context.DeadlineExceeded {
		killGroup(cmd.Process.Pid)
		return nil, fmt.Errorf("dotproc: dot did not finish within %s", RenderTimeout)
	}
	if waitErr != nil {
		return nil, fmt.Errorf("dotproc: dot exited with error: %w: %s", waitErr, stderr.String())
	}

	return stdout.Bytes(), nil
}

// killGroup sends SIGKILL to the process group rooted at pid, cleaning up a
// dot invocation that outlived its deadline.
func killGroup(pid int) {
	_ = unix.Kill(-pid, syscall.SIGKILL)
}
