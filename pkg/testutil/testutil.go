package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mealfeed/backend/config"
	"github.com/mealfeed/backend/migration"
	"github.com/mealfeed/backend/pkg/logger"
	"github.com/mealfeed/backend/pkg/xcontext"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context carrying everything a repository or domain
// needs: an isolated in-memory sqlite database with the full schema, a
// miniredis-backed cache address, and test configurations.
func MockContext(t *testing.T) context.Context {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps concurrent chunk writers from tripping over
	// sqlite's table locks.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	redisServer := miniredis.RunT(t)

	ctx := xcontext.WithDB(context.Background(), db)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.DEBUG))
	ctx = xcontext.WithConfigs(ctx, config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			DefaultLimit: 20,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Redis: config.RedisConfigs{Addr: redisServer.Addr()},
		Feed: config.FeedConfigs{
			// Small on purpose, so a handful of followers already
			// spans multiple chunks.
			FanoutBatchSize: 2,
			PreviewLength:   150,
			AsyncTimeout:    time.Minute,
		},
	})

	require.NoError(t, migration.AutoMigrate(ctx))
	return ctx
}
