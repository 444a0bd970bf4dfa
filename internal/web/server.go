package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	html "html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dhabedank/retailer-check/internal/core"
	"github.com/dhabedank/retailer-check/internal/output"
	"github.com/dhabedank/retailer-check/internal/tui"
)

//go:embed templates
var templatesFS embed.FS

const shutdownTimeout = 10 * time.Second

// Searcher runs a single search. *core.Searcher implements it.
type Searcher interface {
	Search(ctx context.Context, retailer string) (*core.SearchResult, error)
}

// Server serves the search page, the JSON API and a health check.
type Server struct {
	searcher Searcher
	log      zerolog.Logger
	tmpl     *html.Template
}

// NewServer parses the embedded page template.
func NewServer(searcher Searcher, log zerolog.Logger) (*Server, error) {
	tmpl, err := html.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Server{searcher: searcher, log: log, tmpl: tmpl}, nil
}

// Routes builds the gin engine.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.log))
	r.SetHTMLTemplate(s.tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", s.index)
	r.POST("/search", s.searchForm)
	r.POST("/api/search", s.searchAPI)

	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("Listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info().Msg("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

type pageData struct {
	Title    string
	Retailer string
	Warning  string
	Error    string
	Result   *core.SearchResult
	Left     []core.DisplayRecord
	Right    []core.DisplayRecord
	Elapsed  string
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{Title: tui.PageTitle})
}

func (s *Server) searchForm(c *gin.Context) {
	retailer := c.PostForm("retailer")
	page := pageData{Title: tui.PageTitle, Retailer: retailer}

	result, err := s.searcher.Search(c.Request.Context(), retailer)
	var inputErr *core.InputError
	switch {
	case errors.As(err, &inputErr):
		page.Warning = inputErr.Message
		c.HTML(http.StatusBadRequest, "index.html", page)
	case err != nil:
		page.Error = err.Error()
		c.HTML(statusFor(err), "index.html", page)
	default:
		page.Result = result
		page.Left, page.Right = core.Columns(result.Records)
		page.Elapsed = result.Elapsed.Round(time.Millisecond).String()
		c.HTML(http.StatusOK, "index.html", page)
	}
}

type searchRequest struct {
	Retailer string `json:"retailer"`
}

func (s *Server) searchAPI(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := s.searcher.Search(c.Request.Context(), req.Retailer)
	var inputErr *core.InputError
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, gin.H{"warning": inputErr.Message})
	case err != nil:
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, output.NewDocument(result, false))
	}
}

func statusFor(err error) int {
	var fault *core.ServiceFault
	if errors.As(err, &fault) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
