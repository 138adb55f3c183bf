package router

import (
	"context"
	"net/http"

	"github.com/mealfeed/backend/config"
	"github.com/mealfeed/backend/pkg/authenticator"
	"github.com/mealfeed/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can extend the context; returning
// an error aborts the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, with the handler error (if
// any) available via xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	db          *gorm.DB
	cfg         config.Configs
	logger      logger.Logger
	tokenEngine authenticator.TokenEngine

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	engine := gin.New()
	return &Router{
		engine:      engine,
		inner:       engine,
		db:          db,
		cfg:         cfg,
		logger:      logger,
		tokenEngine: authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
	}
}

// Branch returns a router sharing the same engine but with an independent
// middleware chain.
func (r *Router) Branch() *Router {
	branched := *r
	branched.befores = make([]MiddlewareFunc, len(r.befores))
	copy(branched.befores, r.befores)
	branched.closers = make([]CloserFunc, len(r.closers))
	copy(branched.closers, r.closers)
	return &branched
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Static(relativePath, root string) {
	r.engine.Static(relativePath, root)
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.inner.GET(pattern, gin.WrapH(handler))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
