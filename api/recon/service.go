// Package recon exposes the reconciliation engine over HTTP and owns the
// report store and its janitor.
package recon

import (
	"fmt"

	"GstRecon/api"
	"GstRecon/internal/config"
	"GstRecon/internal/jobs"
	"GstRecon/internal/logger"
	"GstRecon/internal/reconcile"
	"GstRecon/internal/resource"
	"GstRecon/internal/serviceiface"
)

type ReconService struct {
	cfg     config.Recon
	err     error
	parts   []serviceiface.Service
	started []serviceiface.Service
}

// NewReconService builds the service from its services.yaml block. A config
// error is reported by Start so the manager fails with the service name.
func NewReconService(cfg map[string]interface{}) serviceiface.Service {
	s := &ReconService{}
	rc, err := config.DecodeRecon(cfg)
	if err != nil {
		s.err = err
		return s
	}
	rc.ApplyEnv()
	if err := rc.Validate(); err != nil {
		s.err = err
		return s
	}
	opts, err := reconcile.OptionsFromConfig(rc)
	if err != nil {
		s.err = err
		return s
	}
	retention, _ := rc.RetentionDuration()

	store := resource.NewReportStore(rc.OutputDir, retention)
	janitor := jobs.NewJanitorService(jobs.JanitorConfig{Schedule: rc.JanitorSchedule, TimeZone: rc.TimeZone}, store)

	router := api.NewRouter()
	RegisterRoutes(router, NewHandler(reconcile.NewAssembler(opts), store, rc.MaxUploadMB))
	gateway := api.NewGatewayService("gateway", rc.Port, router)

	s.cfg = rc
	s.parts = []serviceiface.Service{store, janitor, gateway}
	return s
}

func (s *ReconService) Name() string {
	return "recon"
}

func (s *ReconService) Start() error {
	if s.err != nil {
		return fmt.Errorf("recon config: %w", s.err)
	}
	for _, p := range s.parts {
		if err := p.Start(); err != nil {
			s.Stop()
			return fmt.Errorf("start %s: %w", p.Name(), err)
		}
		s.started = append(s.started, p)
	}
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("recon service started on :%d (tolerance %s, %s coercion)", s.cfg.Port, s.cfg.Tolerance, s.cfg.Coercion))
	}
	return nil
}

func (s *ReconService) Stop() error {
	var first error
	for i := len(s.started) - 1; i >= 0; i-- {
		if err := s.started[i].Stop(); err != nil && first == nil {
			first = fmt.Errorf("stop %s: %w", s.started[i].Name(), err)
		}
	}
	s.started = nil
	return first
}
