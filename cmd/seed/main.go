package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ikkim/gestion-empresas-backend/config"
	"github.com/ikkim/gestion-empresas-backend/internal/app/repository"
	"github.com/ikkim/gestion-empresas-backend/internal/app/service"
	"github.com/ikkim/gestion-empresas-backend/internal/db"
	"github.com/ikkim/gestion-empresas-backend/internal/importer"
	"github.com/ikkim/gestion-empresas-backend/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	if cfg.Database.Driver == config.DriverSQLite {
		fmt.Println("Warning: DB_DRIVER=sqlite; an in-memory database is discarded when the import ends.")
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Importing XLSX file: %s\n", filePath)
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	tx := repository.NewTxRunner(db.GetDB())
	imp := importer.New(service.NewEmpresaService(tx), service.NewSedeService(tx))

	result, err := imp.ImportFile(context.Background(), filePath)
	if err != nil {
		log.Fatal("Failed to import XLSX:", err)
	}

	for _, rowErr := range result.Errores {
		fmt.Printf("  skipped: %v\n", rowErr)
	}

	fmt.Println("Import completed!")
	fmt.Printf("Empresas imported: %d\n", result.EmpresasCreadas)
	fmt.Printf("Sedes imported: %d\n", result.SedesCreadas)
	fmt.Printf("Rows skipped: %d\n", len(result.Errores))
}
