// Command migrate applies or rolls back the schema migrations under
// ./migrations using golang-migrate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		migrationsPath string
		databaseURL    string
		command        string
		steps          int
	)

	flag.StringVar(&migrationsPath, "path", "./migrations", "path to migrations directory")
	flag.StringVar(&databaseURL, "database-url", "", "database connection url")
	flag.StringVar(&command, "command", "up", "migration command: up, down, force, version, drop")
	flag.IntVar(&steps, "steps", 0, "number of steps for up/down (0 = all)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		log.Fatal("database URL is required: use -database-url flag or set DATABASE_URL environment variable")
	}

	args := flag.Args()
	if len(args) > 0 {
		command = args[0]
	}
	if len(args) > 1 {
		var err error
		steps, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("invalid steps argument: %v", err)
		}
	}

	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()
	m.Log = &migrationLogger{}

	switch command {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration up failed: %v", err)
		}
		fmt.Println("migrations applied successfully")

	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration down failed: %v", err)
		}
		fmt.Println("migrations rolled back successfully")

	case "force":
		if len(args) < 2 {
			log.Fatal("force requires a version argument")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("invalid version: %v", err)
		}
		if err := m.Force(version); err != nil {
			log.Fatalf("force failed: %v", err)
		}
		fmt.Printf("forced version to %d\n", version)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("no migrations applied yet")
			} else {
				log.Fatalf("failed to get version: %v", err)
			}
		} else {
			fmt.Printf("current version: %d (dirty: %v)\n", version, dirty)
		}

	case "drop":
		if err := m.Drop(); err != nil {
			log.Fatalf("drop failed: %v", err)
		}
		fmt.Println("all tables dropped successfully")

	default:
		log.Fatalf("unknown command: %s\navailable commands: up, down, force, version, drop", command)
	}
}

type migrationLogger struct{}

func (l *migrationLogger) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func (l *migrationLogger) Verbose() bool {
	return true
}
