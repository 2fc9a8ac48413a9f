package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// GatewayService serves a router on a port until stopped.
type GatewayService struct {
	name   string
	server *http.Server
}

func NewGatewayService(name string, port int, handler http.Handler) *GatewayService {
	return &GatewayService{
		name: name,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *GatewayService) Name() string {
	return s.name
}

func (s *GatewayService) Start() error {
	go func() {
		log.Printf("[INFO] %s listening on %s", s.name, s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] %s server failed: %v", s.name, err)
		}
	}()
	return nil
}

func (s *GatewayService) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
