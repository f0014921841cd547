package web

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrz1836/stakeview/internal/chain/solana"
	"github.com/mrz1836/stakeview/internal/notify"
	"github.com/mrz1836/stakeview/internal/output"
	"github.com/mrz1836/stakeview/internal/service/holdings"
	"github.com/mrz1836/stakeview/internal/service/pools"
	"github.com/mrz1836/stakeview/internal/stakepool"
	"github.com/mrz1836/stakeview/internal/view"
	"github.com/mrz1836/stakeview/internal/wallet"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// newLoader creates the per-request loader, recording its notifications.
func (s *Server) newLoader(rec *notify.Recorder) *pools.Loader {
	return pools.NewLoader(&pools.Config{
		Source:          s.source,
		Metadata:        s.metadata,
		Notifier:        rec,
		Logger:          s.logger,
		Metrics:         s.metrics,
		ValidateAddress: solana.ValidateAddress,
	})
}

// mount runs one fetch-and-partition cycle for a request, collecting the
// notifications it produces.
func (s *Server) mount(c *gin.Context) (pools.State, *pools.Loader, []notify.Notification) {
	rec := &notify.Recorder{}
	loader := s.newLoader(rec)
	state := loader.Load(c.Request.Context())
	return state, loader, rec.All()
}

// mountKey mounts only when key could name a pool. Stray paths are rejected
// without a fetch.
func (s *Server) mountKey(c *gin.Context, key string) (pools.State, *pools.Loader, []notify.Notification, error) {
	rec := &notify.Recorder{}
	loader := s.newLoader(rec)
	if err := loader.CheckKey(key); err != nil {
		return pools.State{}, nil, nil, err
	}
	state := loader.Load(c.Request.Context())
	return state, loader, rec.All(), nil
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderHTML(c, http.StatusOK, "index", poolsData{Page: view.Render(pools.State{}, s.cluster)})
}

func (s *Server) handlePoolsFragment(c *gin.Context) {
	state, _, notes := s.mount(c)
	s.renderHTML(c, http.StatusOK, "pools", poolsData{
		Page:          view.Render(state, s.cluster),
		Notifications: notes,
	})
}

func (s *Server) handleDetail(c *gin.Context) {
	key := c.Param("key")
	state, loader, notes, err := s.mountKey(c, key)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if state.Err != nil {
		s.renderError(c, state.Err)
		return
	}

	pool, err := loader.Find(key)
	if err != nil {
		s.renderError(c, err)
		return
	}

	s.renderHTML(c, http.StatusOK, "detail", detailData{
		Page:          chrome(s.cluster),
		Detail:        view.RenderDetail(pool, s.cluster),
		Notifications: notes,
	})
}

// poolsResponse is the JSON form of one mount.
type poolsResponse struct {
	Loaded          bool                  `json:"loaded"`
	Cluster         string                `json:"cluster"`
	WithMetadata    []stakepool.StakePool `json:"with_metadata"`
	WithoutMetadata []stakepool.StakePool `json:"without_metadata"`
	Notifications   []notify.Notification `json:"notifications"`
	Page            view.Page             `json:"page"`
}

func (s *Server) handleAPIPools(c *gin.Context) {
	state, _, notes := s.mount(c)
	if notes == nil {
		notes = []notify.Notification{}
	}
	c.JSON(http.StatusOK, poolsResponse{
		Loaded:          state.Loaded,
		Cluster:         s.cluster.String(),
		WithMetadata:    state.WithMetadata,
		WithoutMetadata: state.WithoutMetadata,
		Notifications:   notes,
		Page:            view.Render(state, s.cluster),
	})
}

func (s *Server) handleAPIPool(c *gin.Context) {
	key := c.Param("key")
	state, loader, _, err := s.mountKey(c, key)
	if err != nil {
		writeError(c, err)
		return
	}
	if state.Err != nil {
		writeError(c, state.Err)
		return
	}
	pool, err := loader.Find(key)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pool":   pool,
		"detail": view.RenderDetail(pool, s.cluster),
	})
}

// walletResponse reports the shared wallet address and, when available,
// its token holdings.
type walletResponse struct {
	Address  string           `json:"address"`
	Changed  *bool            `json:"changed,omitempty"`
	Holdings *holdings.Result `json:"holdings,omitempty"`
}

func (s *Server) handleGetWallet(c *gin.Context) {
	resp := walletResponse{Address: s.wallet.Address()}
	if s.holdings != nil && resp.Address != "" {
		result, err := s.holdings.Holdings(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		resp.Holdings = result
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePostWallet(c *gin.Context) {
	var conn wallet.Connection
	if err := c.ShouldBindJSON(&conn); err != nil {
		writeError(c, sverr.WithCause(sverr.ErrInvalidInput, err))
		return
	}
	changed := s.wallet.Sync(conn)
	if changed {
		s.logger.Debug("wallet address set to %s", conn.PublicKey)
	}
	c.JSON(http.StatusOK, walletResponse{Address: s.wallet.Address(), Changed: &changed})
}

// handleHealth reports liveness and, when a checker is configured, the
// health of the upstream RPC node.
func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{"status": "ok", "cluster": s.cluster.String()}
	if s.health == nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	if err := s.health.Health(c.Request.Context()); err != nil {
		s.logger.Error("rpc health check failed: %v", err)
		resp["status"] = "degraded"
		resp["rpc"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp["rpc"] = "ok"
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

// renderHTML executes a template into a buffer so a template failure never
// leaves a half-written page.
func (s *Server) renderHTML(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, name, data); err != nil {
		s.logger.Error("render %s: %v", name, err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) renderError(c *gin.Context, err error) {
	data := errorData{
		Page:    chrome(s.cluster),
		Title:   "Something went wrong",
		Message: err.Error(),
	}
	var se *sverr.StakeviewError
	if sverr.As(err, &se) {
		data.Message = se.Message
		data.Suggestion = se.Suggestion
		if se.Cause != nil {
			data.Message = se.Message + ": " + se.Cause.Error()
		}
	}
	status := statusFor(err)
	if status == http.StatusNotFound {
		data.Title = "Pool not found"
	}
	s.renderHTML(c, status, "error", data)
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), output.NewErrorOutput(err))
}

// statusFor maps error kinds to HTTP status codes.
func statusFor(err error) int {
	switch sverr.ExitCode(err) {
	case sverr.ExitNotFound:
		return http.StatusNotFound
	case sverr.ExitInput:
		return http.StatusBadRequest
	case sverr.ExitNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
