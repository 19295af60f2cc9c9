// Command createadmin seeds an admin user for the panel.
//
//	createadmin -email admin@example.com -name "Store Admin" -password secret
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mirastore/catalog_api/internal/config"
	"github.com/mirastore/catalog_api/internal/database"
	"github.com/mirastore/catalog_api/internal/repository"
	"github.com/mirastore/catalog_api/internal/service"
)

func main() {
	email := flag.String("email", "", "admin email address")
	name := flag.String("name", "", "admin display name")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.StoreMode != config.StorePostgres {
		fmt.Fprintln(os.Stderr, "admin users require STORE_MODE=postgres")
		os.Exit(1)
	}

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	svc := service.NewAdminAuthService(repository.NewAdminUserRepository(db))
	if err := svc.CreateAdmin(*email, *password, *name); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("admin user %s created\n", *email)
}
