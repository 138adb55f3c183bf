package main

import (
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfigs()
	s.loadLogger()
	s.loadDatabase()

	ctx := s.newContext()
	s.migrateDB(ctx)
	s.logger.Infof("Migration completed")
	return nil
}
