package main

import (
	"context"
	"log"

	"github.com/urfave/cli/v3"

	"github.com/pacifichome/smarthome-admin/internal/config"
	"github.com/pacifichome/smarthome-admin/internal/database"
	"github.com/pacifichome/smarthome-admin/internal/models"
)

// runCLI handles maintenance subcommands. Running the binary with no
// arguments starts the HTTP server instead.
func runCLI(cfg config.Config, args []string) {
	cmd := &cli.Command{
		Name:  "smarthome-admin",
		Usage: "admin panel API maintenance commands",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "create or update the database schema",
				Action: func(ctx context.Context, _ *cli.Command) error {
					db, err := database.OpenDB(cfg)
					if err != nil {
						return err
					}
					defer db.Close()
					if err := database.Migrate(db); err != nil {
						return err
					}
					log.Println("migrations applied")
					return nil
				},
			},
			{
				Name:      "create-admin",
				Usage:     "create an admin user",
				ArgsUsage: "<username> <password>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return cli.Exit("usage: create-admin <username> <password>", 1)
					}
					username, plaintext := c.Args().Get(0), c.Args().Get(1)

					var pw models.Password
					if err := pw.Set(plaintext); err != nil {
						return err
					}

					db, err := database.OpenDB(cfg)
					if err != nil {
						return err
					}
					defer db.Close()

					_, err = db.ExecContext(ctx,
						`INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, 'admin', NOW())`,
						username, pw.Hash)
					if err != nil {
						return err
					}
					log.Printf("admin user %q created", username)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}
