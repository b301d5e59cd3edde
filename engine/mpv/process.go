package mpv

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/playman-cli/playman/log"
	"github.com/playman-cli/playman/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// process manages one mpv OS process and its IPC socket lifetime.
type process struct {
	binary string
	ipc    *transport
	cmd    *exec.Cmd
	exited chan struct{} // closed when mpv exits
}

func newProcess(binary string) *process {
	if binary == "" {
		binary = "mpv"
	}
	return &process{
		binary: binary,
		ipc:    &transport{},
		exited: make(chan struct{}),
	}
}

// spawn launches mpv idle-paused on the given media target and waits until the
// IPC socket accepts connections. If mpv is already running, the new target is
// loaded into the existing instance instead.
func (p *process) spawn(rawURL string, title string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	safeTitle := sanitizeTitle(title)

	if p.running() {
		_, err := p.ipc.send([]interface{}{"loadfile", safeURL, "replace"})
		return err
	}

	// Generate a random socket path under the application socket directory.
	if p.ipc.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		p.ipc.socketPath = filepath.Join(where.Sockets(), fmt.Sprintf("engine-%x.sock", randomBytes))
	}

	// Pass only the socket, title and target. No --vo, --profile or --hwdec:
	// the user's mpv.conf stays authoritative.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", p.ipc.socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle), // Some mpv builds only respect --title
		"--force-window=yes",
		"--idle=yes",
		"--pause",
		safeURL,
	}

	p.cmd = exec.Command(p.binary, args...)

	// Detach from parent process group to prevent cascading shell panics.
	p.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	p.cmd.Stdout = nil
	p.cmd.Stderr = nil
	p.cmd.Stdin = nil

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.binary, err)
	}

	// Background goroutine to reap the process and prevent zombies
	p.exited = make(chan struct{})
	go func() {
		_ = p.cmd.Wait()
		close(p.exited)
	}()

	if err := p.waitForSocket(); err != nil {
		// If the socket never became ready, kill the orphaned process
		if p.cmd.Process != nil {
			select {
			case <-p.exited:
				// Already exited
			default:
				log.Warnf("killing %s: socket never became ready", p.binary)
				_ = p.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("%s socket not ready: %w", p.binary, err)
	}

	return nil
}

// wait returns a channel that is closed when the engine process exits.
func (p *process) wait() <-chan struct{} {
	return p.exited
}

// waitForSocket polls until the IPC socket is accepting connections.
func (p *process) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		// Check if process already exited
		select {
		case <-p.exited:
			return fmt.Errorf("%s exited before socket was ready", p.binary)
		default:
		}

		conn, err := net.Dial("unix", p.ipc.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", p.ipc.socketPath, socketWaitRetries)
}

// running reports whether the engine process is responding to IPC commands.
func (p *process) running() bool {
	if p.ipc.socketPath == "" || p.cmd == nil {
		return false
	}

	// Fast check: process already exited?
	select {
	case <-p.exited:
		return false
	default:
	}

	_, err := p.ipc.send([]interface{}{"get_property", "pid"})
	return err == nil
}

// close shuts down the engine process and cleans up resources.
func (p *process) close() {
	if p.ipc.socketPath == "" {
		return
	}

	// Try graceful quit via IPC
	_, _ = p.ipc.send([]interface{}{"quit"})

	// Wait for process to exit (with timeout)
	select {
	case <-p.exited:
		// Clean exit
	case <-time.After(3 * time.Second):
		// Force kill if graceful quit didn't work
		_ = killProcess(p.cmd)
	}

	// Clean up the socket file
	_ = os.Remove(p.ipc.socketPath)
}

// getFloat retrieves a float64 mpv property via IPC.
func (p *process) getFloat(name string) (float64, error) {
	data, err := p.ipc.send([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// getBool retrieves a boolean mpv property via IPC.
func (p *process) getBool(name string) (bool, error) {
	data, err := p.ipc.send([]interface{}{"get_property", name})
	if err != nil {
		return false, err
	}
	val, _ := data.(bool)
	return val, nil
}

// set assigns an mpv property via IPC.
func (p *process) set(property string, value interface{}) error {
	_, err := p.ipc.send([]interface{}{"set_property", property, value})
	return err
}

// sanitizeMediaTarget validates that a URL is safe to pass to the engine binary.
// Prevents flag injection from untrusted playlist feeds.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up the window title for the engine binary.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	// Remove null bytes
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
