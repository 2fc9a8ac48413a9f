package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"GstRecon/internal/appmanager"
)

func main() {
	// Load .env for local dev; real deployments set the variables directly
	_ = godotenv.Load("../.env")

	configPath := os.Getenv("RECON_CONFIG")
	if configPath == "" {
		configPath = "../services.yaml"
	}

	manager := appmanager.NewAppManager()

	servicesCfg, err := appmanager.LoadServiceSequence(configPath)
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}
	if err := manager.AutoRegisterServices(servicesCfg); err != nil {
		log.Fatal("failed to register services:", err)
	}
	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start:", err)
	}

	// Graceful shutdown handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop:", err)
	}
}
