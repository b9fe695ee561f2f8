// Package backupserver is a self-hostable backup endpoint for truflow sync.
// It keeps the most recent snapshot in a single file.
package backupserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xolan/truflow/internal/logging"
)

// MaxSnapshotBytes bounds an uploaded snapshot.
const MaxSnapshotBytes = 64 << 20

// Server stores and serves the latest snapshot.
type Server struct {
	path   string
	logger *slog.Logger
	router *gin.Engine

	mu sync.RWMutex
}

// New creates a server persisting to path.
func New(path string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		path:   path,
		logger: logger.With("component", "backupserver"),
		router: router,
	}
	router.Use(s.logRequests)

	router.GET("/", s.handleGet)
	router.POST("/", s.handlePost)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "file", s.path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleGet(c *gin.Context) {
	s.mu.RLock()
	data, err := os.ReadFile(s.path)
	s.mu.RUnlock()

	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("read failed", "error", err)
		}
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": "No backup found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": json.RawMessage(data)})
}

func (s *Server) handlePost(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxSnapshotBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "failed to read body"})
		return
	}
	if len(data) > MaxSnapshotBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "snapshot too large"})
		return
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "body must be a JSON object"})
		return
	}

	s.mu.Lock()
	err = writeFileAtomic(s.path, data)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("write failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to store backup"})
		return
	}

	s.logger.Info("stored snapshot", "bytes", len(data))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start))
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}
