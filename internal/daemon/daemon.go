//go:build unix

// Package daemon serves launcher queries over a unix socket so an external
// launcher can use jbp as its JetBrains projects provider.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gurisko/jbp/internal/config"
	"github.com/gurisko/jbp/internal/launcher"
	"github.com/gurisko/jbp/internal/limits"
	"github.com/gurisko/jbp/internal/paths"
)

type Daemon struct {
	socketPath string
	pid        pidFile
	listener   net.Listener
	server     *http.Server
	plugin     *launcher.Plugin
	store      *config.Store
	httpClient *http.Client

	startTime time.Time
}

// Config configures a daemon. Plugin and Store are only needed to serve;
// stop and status work without them.
type Config struct {
	SocketPath string
	PIDFile    string
	Plugin     *launcher.Plugin
	Store      *config.Store
}

func DefaultConfig() *Config {
	return &Config{
		SocketPath: paths.DefaultSocketPath(),
		PIDFile:    paths.DefaultPIDPath(),
	}
}

func New(cfg *Config) *Daemon {
	defaults := DefaultConfig()
	if cfg.SocketPath == "" {
		cfg.SocketPath = defaults.SocketPath
	}
	if cfg.PIDFile == "" {
		cfg.PIDFile = defaults.PIDFile
	}

	socketPath := cfg.SocketPath
	tr := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var nd net.Dialer
			return nd.DialContext(ctx, "unix", socketPath)
		},
	}

	return &Daemon{
		socketPath: socketPath,
		pid:        pidFile(cfg.PIDFile),
		plugin:     cfg.Plugin,
		store:      cfg.Store,
		httpClient: &http.Client{Transport: tr, Timeout: 2 * time.Second},
		startTime:  time.Now().UTC(),
	}
}

// Handler returns the HTTP API without binding a socket.
func (d *Daemon) Handler() http.Handler {
	mux := http.NewServeMux()
	d.setupRoutes(mux)
	return mux
}

// Start serves in the foreground until SIGINT/SIGTERM.
func (d *Daemon) Start() error {
	if d.plugin == nil || d.store == nil {
		return errors.New("daemon started without a plugin")
	}
	if d.IsRunning() {
		pid, _ := d.pid.read()
		return fmt.Errorf("daemon already running (PID: %d)", pid)
	}
	if err := d.listen(); err != nil {
		return err
	}
	defer d.shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	fmt.Printf("jbp daemon started (PID: %d)\n", os.Getpid())
	fmt.Printf("  Socket: %s\n", d.socketPath)
	fmt.Printf("  IDEs:   %d active\n", len(d.plugin.Variants()))
	return d.serve(ctx)
}

// listen claims the pidfile, then binds the owner-only socket. The pidfile
// comes first so a live daemon's socket is never unlinked.
func (d *Daemon) listen() error {
	if err := ensureParentDir(d.socketPath); err != nil {
		return fmt.Errorf("failed to prepare socket directory: %w", err)
	}
	if err := d.pid.acquire(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	if err := removeSocketIfExists(d.socketPath); err != nil {
		d.pid.release()
		return err
	}

	ln, err := net.Listen("unix", d.socketPath)
	if err != nil {
		d.pid.release()
		return fmt.Errorf("failed to create socket: %w", err)
	}
	if err := os.Chmod(d.socketPath, 0o600); err != nil {
		ln.Close()
		d.pid.release()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}
	d.listener = ln
	return nil
}

// serve runs the HTTP server until ctx is done or the server fails.
func (d *Daemon) serve(ctx context.Context) error {
	d.server = &http.Server{
		Handler:      d.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- d.server.Serve(d.listener) }()

	select {
	case <-ctx.Done():
		log.Printf("[INFO] serve: shutting down")
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Printf("[ERROR] serve: %v", err)
		return fmt.Errorf("daemon server failed: %w", err)
	}
}

// Stop signals a running daemon and waits up to 5 seconds for it to exit.
func (d *Daemon) Stop() error {
	pid, err := d.pid.read()
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("daemon not running")
		}
		return fmt.Errorf("failed reading pidfile: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("process not found: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if !d.IsRunning() {
			fmt.Println("jbp daemon stopped")
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("daemon did not stop gracefully")
}

type StatusInfo struct {
	Running      bool
	PID          int
	SocketPath   string
	Uptime       time.Duration
	ErrorMessage string // process exists but does not answer on the socket
}

func (d *Daemon) GetStatus() *StatusInfo {
	info := &StatusInfo{SocketPath: d.socketPath}

	pid, err := d.pid.read()
	if err != nil {
		return info
	}
	info.PID = pid
	if !processAlive(pid) {
		return info
	}

	health, err := d.getHealth()
	if err != nil {
		info.ErrorMessage = err.Error()
		return info
	}
	info.Running = true
	info.Uptime = time.Duration(health.Uptime * float64(time.Second))
	return info
}

// IsRunning requires a live PID and a healthy socket, which guards
// against PID reuse.
func (d *Daemon) IsRunning() bool {
	pid, err := d.pid.read()
	if err != nil || !processAlive(pid) {
		return false
	}
	_, err = d.getHealth()
	return err == nil
}

func (d *Daemon) shutdown() {
	if d.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.server.Shutdown(ctx); err != nil {
			log.Printf("[WARN] shutdown: %v", err)
		}
	}
	d.httpClient.CloseIdleConnections()
	if d.listener != nil {
		d.listener.Close()
	}
	_ = removeSocketIfExists(d.socketPath)
	d.pid.release()
}

type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

func (d *Daemon) getHealth() (*HealthResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health returned HTTP %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, limits.JSON)).Decode(&health); err != nil {
		return nil, err
	}
	return &health, nil
}
