package websocket

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/usecase"
)

//go:embed index.html
var indexHTML []byte

// roomRegistry is the slice of the registry the transport needs.
type roomRegistry interface {
	Create(conn usecase.Conn) string
	Join(code string, conn usecase.Conn) (int, error)
	MakeTurn(code string, slot int, conn usecase.Conn, board, cell int) error
	Rematch(code string, slot int, conn usecase.Conn) error
	Disconnect(code string, slot int, conn usecase.Conn)
}

type Server struct {
	logger *slog.Logger
	rooms  roomRegistry

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, rooms roomRegistry) *Server {
	return &Server{
		logger: logger,
		rooms:  rooms,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler - one endpoint hosts the client asset, the health check and the
// websocket upgrade.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", that.handleIndex)
	mux.HandleFunc("/ping", that.handlePing)
	mux.HandleFunc("/ws", that.handleWS)

	return mux
}

// Start - starts the server and shuts it down when the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		that.logger.Error("failed to write index", "error", err)
	}
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
