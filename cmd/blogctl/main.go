package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/repository"
	"blogapi/internal/service"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "blogctl",
		Usage: "operate the blog API database",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply the SQL schema",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "migration file (defaults to MIGRATIONS_PATH)"},
				},
				Action: migrate,
			},
			{
				Name:  "create-admin",
				Usage: "create an admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
				},
				Action: createAdmin,
			},
			{
				Name:  "promote",
				Usage: "grant the admin role to an existing user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
				},
				Action: promote,
			},
		},
	}
}

func withUsers(fn func(ctx context.Context, users service.UserService) error) error {
	cfg := config.LoadConfig()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	repo := repository.NewRepository(db.DB)
	return fn(context.Background(), service.NewUserService(repo.User))
}

func migrate(c *cli.Context) error {
	cfg := config.LoadConfig()

	path := c.String("file")
	if path == "" {
		path = cfg.MigrationsPath
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	return db.RunMigrations(path)
}

func createAdmin(c *cli.Context) error {
	if len(c.String("password")) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	return withUsers(func(ctx context.Context, users service.UserService) error {
		user, err := users.CreateAdmin(ctx, c.String("name"), c.String("email"), c.String("password"))
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		log.Printf("created admin %s (%s)", user.Email, user.UserID)
		return nil
	})
}

func promote(c *cli.Context) error {
	return withUsers(func(ctx context.Context, users service.UserService) error {
		user, err := users.Promote(ctx, c.String("email"))
		if err != nil {
			return fmt.Errorf("promote %s: %w", c.String("email"), err)
		}
		log.Printf("%s is now %s", user.Email, user.Role)
		return nil
	})
}
