package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/config"
	"github.com/lerthy/Appointlify-Amazon-sub002/migrations"
)

// Применяет встроенные SQL миграции к базе из config.toml.
//
// Использование:
//
//	migrate -config config.toml up
//	migrate -config config.toml down
func main() {
	configPath := flag.String("config", "config.toml", "путь к конфигурационному файлу")
	flag.Parse()

	direction := flag.Arg(0)
	if direction != "up" && direction != "down" {
		fmt.Println("usage: migrate [-config config.toml] up|down")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		fmt.Printf("Failed to load embedded migrations: %v\n", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.DBName, cfg.Database.SSLMode)

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		fmt.Printf("Failed to init migrations: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No pending migrations")
		return
	}

	fmt.Printf("Migrations %s applied successfully\n", direction)
}
