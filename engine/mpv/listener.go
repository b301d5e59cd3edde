package mpv

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/playman-cli/playman/log"
)

// eventCallback is the function signature for mpv event notifications.
type eventCallback func(property string, data interface{})

// listener provides real-time mpv event monitoring via observe_property.
type listener struct {
	socketPath string
	conn       net.Conn
	callback   eventCallback
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
}

// newListener creates a new event listener for the given socket.
func newListener(socketPath string, callback eventCallback) *listener {
	return &listener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
	}
}

// start begins listening for mpv property change events.
// It sets up property observers and starts a dedicated read loop.
func (l *listener) start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listening {
		return nil
	}

	// Subscribe to property change events via IPC.
	// observe_property <id> <property> — mpv sends notifications when they change.
	properties := []struct {
		id   int
		name string
	}{
		{1, "time-pos"},
		{2, "pause"},
		{3, "seeking"},
		{4, "eof-reached"},
		{5, "duration"},
		{6, "volume"},
		{7, "mute"},
		{8, "speed"},
		{9, "fullscreen"},
		{10, "core-idle"},
	}

	for _, prop := range properties {
		_, err := doSendCommand(l.socketPath, []interface{}{"observe_property", prop.id, prop.name})
		if err != nil {
			return fmt.Errorf("observe %s: %w", prop.name, err)
		}
	}

	// Open a persistent connection for the event read loop
	conn, err := net.Dial("unix", l.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}
	l.conn = conn
	l.listening = true

	// Start the event read loop in a background goroutine
	go l.readLoop()

	log.Infof("mpv event listener started on %s", l.socketPath)
	return nil
}

// stop terminates the event listener.
func (l *listener) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.listening {
		return
	}

	close(l.stopCh)
	if l.conn != nil {
		l.conn.Close()
	}
	l.listening = false
}

// readLoop continuously reads events from the persistent mpv connection.
// mpv sends newline-delimited JSON events when observed properties change.
func (l *listener) readLoop() {
	defer func() {
		l.mu.Lock()
		l.listening = false
		l.mu.Unlock()
	}()

	buf := make([]byte, 4096)
	var remainder []byte

	for {
		select {
		case <-l.stopCh:
			return
		default:
		}

		// Set read deadline to avoid blocking forever
		if err := l.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := l.conn.Read(buf)
		if err != nil {
			if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "deadline") {
				continue // timeout is normal, keep listening
			}
			log.Warnf("event listener read error: %v", err)
			return
		}

		// mpv sends multiple JSON objects separated by newlines
		data := append(remainder, buf[:n]...)
		remainder = nil

		lines := strings.Split(string(data), "\n")
		for i, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			// Last incomplete line goes to remainder for next read
			if i == len(lines)-1 && !strings.HasSuffix(string(data), "\n") {
				remainder = []byte(line)
				continue
			}

			l.processEvent(line)
		}
	}
}

// processEvent parses and dispatches a single mpv event JSON line.
func (l *listener) processEvent(line string) {
	var event map[string]interface{}
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return // Skip unparseable lines
	}

	// Property change events have "event": "property-change" and "name" + "data"
	if eventType, ok := event["event"].(string); ok {
		switch eventType {
		case "property-change":
			name, _ := event["name"].(string)
			data := event["data"]
			if name != "" && l.callback != nil {
				l.callback(name, data)
			}
		default:
			// Forward other events (e.g., "playback-restart", "end-file")
			if l.callback != nil {
				l.callback(eventType, event)
			}
		}
	}
}
