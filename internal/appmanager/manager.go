package appmanager

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"GstRecon/api/recon"
	"GstRecon/internal/logger"
	"GstRecon/internal/serviceiface"
)

var serviceConstructors = map[string]func(map[string]interface{}) serviceiface.Service{
	"logger": func(cfg map[string]interface{}) serviceiface.Service {
		return logger.NewLoggerService(cfg)
	},
	"recon": func(cfg map[string]interface{}) serviceiface.Service {
		return recon.NewReconService(cfg)
	},
}

// ------------------- MANAGER -------------------

type AppManager struct {
	services []serviceiface.Service
	started  int
	mu       sync.Mutex
}

func NewAppManager() *AppManager {
	return &AppManager{
		services: make([]serviceiface.Service, 0),
	}
}

func (am *AppManager) RegisterService(s serviceiface.Service) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.services = append(am.services, s)
}

// StartAll starts services in registration order. On failure the services
// already running are stopped again.
func (am *AppManager) StartAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()

	for i, service := range am.services {
		log.Println("Starting service:", service.Name())
		if err := service.Start(); err != nil {
			am.started = i
			am.stopStartedLocked()
			return fmt.Errorf("failed to start service %s: %w", service.Name(), err)
		}
	}
	am.started = len(am.services)
	return nil
}

func (am *AppManager) StopAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	return am.stopStartedLocked()
}

func (am *AppManager) stopStartedLocked() error {
	var first error
	for i := am.started - 1; i >= 0; i-- {
		svc := am.services[i]
		if err := svc.Stop(); err != nil && first == nil {
			first = fmt.Errorf("failed to stop service %s: %w", svc.Name(), err)
		}
	}
	am.started = 0
	return first
}

// ------------------- YAML CONFIG -------------------

type ServiceSequencer struct {
	Services []ServiceConfig `yaml:"services"`
}

type ServiceConfig struct {
	Name       string                 `yaml:"name"`
	StartOrder int                    `yaml:"start_order"`
	Config     map[string]interface{} `yaml:"config"`
}

func LoadServiceSequence(path string) ([]ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seq ServiceSequencer
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, err
	}

	// sort by start_order
	sort.SliceStable(seq.Services, func(i, j int) bool {
		return seq.Services[i].StartOrder < seq.Services[j].StartOrder
	})

	return seq.Services, nil
}

// AutoRegisterServices builds every known service listed in configs. Unknown
// names are an error so a typo in services.yaml does not go unnoticed.
func (am *AppManager) AutoRegisterServices(configs []ServiceConfig) error {
	for _, svc := range configs {
		constructor, ok := serviceConstructors[svc.Name]
		if !ok {
			return fmt.Errorf("unknown service %q in service sequence", svc.Name)
		}
		am.RegisterService(constructor(svc.Config))
	}

	for _, svc := range am.services {
		if l, ok := svc.(*logger.LoggerService); ok {
			logger.SetGlobalLogger(l)
			break
		}
	}
	return nil
}

func (am *AppManager) GetServiceByName(name string) serviceiface.Service {
	for _, svc := range am.services {
		if svc.Name() == name {
			return svc
		}
	}
	return nil
}
