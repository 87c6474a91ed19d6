package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var server srv

func main() {
	app := &cli.App{
		Name:  "tokenmart",
		Usage: "token market backend",
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "run the api server",
				Action: server.startApi,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
