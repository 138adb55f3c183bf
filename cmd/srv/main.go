package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	s := &srv{}
	app := &cli.App{
		Name:  "mealfeed",
		Usage: "Follow graph and activity feed service",
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "Start the api server",
				Action: s.startApi,
			},
			{
				Name:   "subscriber",
				Usage:  "Start the content event subscriber",
				Action: s.startSubscriber,
			},
			{
				Name:   "migrate",
				Usage:  "Migrate the database schema and exit",
				Action: s.startMigrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}
}
