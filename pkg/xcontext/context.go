package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/mealfeed/backend/config"
	"github.com/mealfeed/backend/pkg/authenticator"
	"github.com/mealfeed/backend/pkg/logger"

	"gorm.io/gorm"
)

type (
	dbKey          struct{}
	txKey          struct{}
	loggerKey      struct{}
	configsKey     struct{}
	userIDKey      struct{}
	tokenEngineKey struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	errorKey       struct{}
	startTimeKey   struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. If a transaction was begun on this
// context with WithDBTransaction, the transaction is returned instead.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, DB(ctx).Begin())
}

// WithCommitDBTransaction commits the transaction carried by ctx, if any.
func WithCommitDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		tx.Commit()
	}
}

// WithRollbackDBTransaction rollbacks the transaction carried by ctx, if any.
// Calling it after the transaction has been committed has no effect, so it is
// safe to defer right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		tx.Rollback()
	}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r, ok := ctx.Value(httpRequestKey{}).(*http.Request); ok {
		return r
	}

	return nil
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	if w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter); ok {
		return w
	}

	return nil
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	if err, ok := ctx.Value(errorKey{}).(error); ok {
		return err
	}

	return nil
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}

// Detach returns a context carrying the same database handle, logger, and
// configurations as ctx, but detached from its deadline and cancellation.
// Fire-and-forget work dispatched from a request handler runs on a detached
// context so that the response finishing does not cancel the propagation.
// A pending transaction of ctx is not carried over.
func Detach(ctx context.Context) context.Context {
	detached := context.Background()
	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		detached = WithDB(detached, db)
	}

	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		detached = WithLogger(detached, l)
	}

	if cfg, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		detached = WithConfigs(detached, cfg)
	}

	return detached
}
