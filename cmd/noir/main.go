package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noircloset/noir/internal/api"
	"github.com/noircloset/noir/internal/auth"
	"github.com/noircloset/noir/internal/gateway"
	"github.com/noircloset/noir/internal/kv"
	"github.com/noircloset/noir/internal/session"
	"github.com/noircloset/noir/internal/wardrobe"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	fs := flag.NewFlagSet("noir", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", "noir.sqlite3", "")
	fs.StringVar(&dbPath, "d", "noir.sqlite3", "")

	var addr string
	fs.StringVar(&addr, "addr", ":8080", "")
	fs.StringVar(&addr, "a", ":8080", "")

	var geminiKey string
	fs.StringVar(&geminiKey, "gemini-key", "", "")
	fs.StringVar(&geminiKey, "g", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: noir [flags]

Flags:
  -d, -db <path>          SQLite database path (default: noir.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -g, -gemini-key <key>   Gemini API key (default: $NOIR_GEMINI_API_KEY)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	if geminiKey == "" {
		geminiKey = os.Getenv("NOIR_GEMINI_API_KEY")
	}
	if geminiKey == "" {
		fmt.Fprintln(os.Stderr, "error: Gemini API key required (-gemini-key or NOIR_GEMINI_API_KEY)")
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	ctx := context.Background()

	store, err := kv.Open(dbPath)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	slog.Info("store ready", "path", dbPath)

	// First run: generate and print the owner password.
	hasPassword, err := auth.HasPassword(ctx, store)
	if err != nil {
		slog.Error("failed to check password", "error", err)
		os.Exit(1)
	}
	if !hasPassword {
		password, err := generatePassword(16)
		if err != nil {
			slog.Error("failed to generate password", "error", err)
			os.Exit(1)
		}
		if err := auth.SetPassword(ctx, store, password); err != nil {
			slog.Error("failed to store password", "error", err)
			os.Exit(1)
		}
		printFirstRun(dbPath, password)
	}

	// JWT signing secret lives in the store, generated on first run.
	jwtSecret, err := auth.Secret(ctx, store)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	ward, err := wardrobe.New(ctx, store)
	if err != nil {
		slog.Error("failed to load wardrobe", "error", err)
		os.Exit(1)
	}

	stylist, err := gateway.NewClient(ctx, geminiKey)
	if err != nil {
		slog.Error("failed to create stylist client", "error", err)
		os.Exit(1)
	}

	// Pick up writes from other processes sharing the database.
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	watcher := kv.NewWatcher(store, kv.DefaultWatchInterval, func() {
		if err := ward.Refresh(watchCtx); err != nil {
			slog.Warn("wardrobe refresh failed", "error", err)
		}
	})
	go watcher.Run(watchCtx)

	handler := api.LoggingMiddleware(api.NewRouter(store, ward, session.New(), stylist, jwtSecret))

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing store")
}

// printFirstRun prints the generated owner password to stdout.
func printFirstRun(dbPath, password string) {
	fmt.Printf("Database created: %s\n", dbPath)
	fmt.Println()
	fmt.Println("Owner account created:")
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password — it cannot be recovered.")
	fmt.Println("It can be changed after logging in.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
