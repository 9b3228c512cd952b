package api

import (
	"net/http"
	"time"

	"Sternentyp/internal/usecase"
	xhttp "Sternentyp/pkg/http"
	xlogger "Sternentyp/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// SkyStreamHandler pushes live sky snapshots over WebSocket. Each
// connected client gets a snapshot immediately and then one per tick.
type SkyStreamHandler struct {
	logger       *xlogger.Logger
	watcher      *usecase.SkyWatcher
	interval     time.Duration
	pingInterval time.Duration
	upgrader     websocket.Upgrader
}

func NewSkyStreamHandler(logger *xlogger.Logger, watcher *usecase.SkyWatcher, interval, pingInterval time.Duration) *SkyStreamHandler {
	if interval <= 0 {
		interval = time.Minute
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &SkyStreamHandler{
		logger:       logger,
		watcher:      watcher,
		interval:     interval,
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// streamIntervals resolves per-connection tick intervals. Clients may
// shorten or stretch the configured defaults with ?interval= and ?ping=
// (seconds), floored at one second.
func (h *SkyStreamHandler) streamIntervals(c echo.Context) (time.Duration, time.Duration) {
	interval := xhttp.ParseIntDefault(c.QueryParam("interval"), int(h.interval/time.Second))
	ping := xhttp.ParseIntDefault(c.QueryParam("ping"), int(h.pingInterval/time.Second))
	if interval < 1 {
		interval = 1
	}
	if ping < 1 {
		ping = 1
	}
	return time.Duration(interval) * time.Second, time.Duration(ping) * time.Second
}

func (h *SkyStreamHandler) Stream(c echo.Context) error {
	interval, pingInterval := h.streamIntervals(c)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	// Drain the client side so close frames are processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() error {
		snap, err := h.watcher.Snapshot(ctx, time.Now())
		if err != nil {
			h.logger.Warn("sky snapshot failed", xlogger.Error(err))
			return conn.WriteJSON(map[string]string{"error": "sky data unavailable"})
		}
		return conn.WriteJSON(snap)
	}

	if err := send(); err != nil {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	pinger := time.NewTicker(pingInterval)
	defer pinger.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case <-pinger.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-ticker.C:
			if err := send(); err != nil {
				return nil
			}
		}
	}
}
