package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/impact/core"
	"github.com/huangsam/impact/core/chart"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/render"
	"github.com/huangsam/impact/schema"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// requestContext bounds a store lookup by the configured request timeout.
func (s *Server) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = contract.DefaultRequestTimeout
	}
	return context.WithTimeout(parent, timeout)
}

// badRequest answers 400 with the validation error.
func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// fail maps a store error to its response: 404 for a missing snapshot or
// author, 500 for anything else.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, contract.ErrNotFound) {
		s.lggr.Infow("Resource not found", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	s.lggr.Errorw("Request failed",
		"requestID", c.GetString(requestIDKey),
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// handleContributors answers GET /contributors/repo/:repo?page=N[&branch=B].
func (s *Server) handleContributors(c *gin.Context) {
	q := repoQuery{Repo: c.Param("repo"), Branch: c.Query("branch")}
	if err := q.Validate(); err != nil {
		s.badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c.Request.Context())
	defer cancel()

	page, err := core.ContributorsPage(ctx, s.store, q.Repo, q.Branch, c.Query("page"), s.cfg.PerPage)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// handleImpact answers GET /impact/repo/:repo[?branch=B].
func (s *Server) handleImpact(c *gin.Context) {
	q := repoQuery{Repo: c.Param("repo"), Branch: c.Query("branch")}
	if err := q.Validate(); err != nil {
		s.badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c.Request.Context())
	defer cancel()

	data, err := core.ImpactData(ctx, s.store, q.Repo, q.Branch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// handleChart answers GET /impact/repo/:repo/chart.svg and chart.png with the
// rendered chart. width, height and title may be overridden by query.
func (s *Server) handleChart(c *gin.Context) {
	q := chartQuery{
		repoQuery: repoQuery{Repo: c.Param("repo"), Branch: c.Query("branch")},
		Width:     s.cfg.ChartWidth,
		Height:    s.cfg.ChartHeight,
		Title:     c.Query("title"),
	}
	if err := q.parseSize(c.Query("width"), c.Query("height")); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := q.parseFilter(c.Query("filter")); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := q.Validate(); err != nil {
		s.badRequest(c, err)
		return
	}

	format := schema.SVGFormat
	if strings.HasSuffix(c.FullPath(), ".png") {
		format = schema.PNGFormat
	}

	ctx, cancel := s.requestContext(c.Request.Context())
	defer cancel()

	data, err := core.ImpactData(ctx, s.store, q.Repo, q.Branch)
	if err != nil {
		s.fail(c, err)
		return
	}

	noFilter := !q.Filter
	handle := chart.RenderChart(data, chart.ChartConfig{
		Branch:   q.Branch,
		NoFilter: &noFilter,
		Title:    q.Title,
		Width:    float64(q.Width),
		Height:   float64(q.Height),
	})
	c.Status(http.StatusOK)
	c.Header("Content-Type", render.ContentType(format))
	if err := render.Write(c.Writer, handle.Drawing(), format); err != nil {
		// Headers are gone by now
		s.lggr.Errorw("Failed to render chart", "repo", q.Repo, "format", string(format), "error", err)
	}
}

// handleAuthor answers GET /author/:id?repo=R[&branch=B]. Concurrent identical
// lookups share one store read.
func (s *Server) handleAuthor(c *gin.Context) {
	q := authorQuery{
		ID:        c.Param("id"),
		repoQuery: repoQuery{Repo: c.Query("repo"), Branch: c.Query("branch")},
	}
	if err := q.Validate(); err != nil {
		s.badRequest(c, err)
		return
	}
	id, err := strconv.ParseInt(q.ID, 10, 64)
	if err != nil {
		s.badRequest(c, fmt.Errorf("id: %w", err))
		return
	}

	key := q.Repo + "\x00" + q.Branch + "\x00" + q.ID
	v, err, shared := s.details.Do(key, func() (any, error) {
		// Detached so one canceled caller does not fail the others
		ctx, cancel := s.requestContext(context.WithoutCancel(c.Request.Context()))
		defer cancel()
		return core.AuthorDetail(ctx, s.store, q.Repo, q.Branch, id)
	})
	if shared {
		s.metrics.sharedDetails.Inc()
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v.(schema.AuthorDetail))
}
