// Package doctor runs the environment diagnostics behind the doctor
// command.
package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/ports"
)

// Service runs environment diagnostics. SessionLog carries whatever
// store the container managed to open, nil when opening failed or the
// log is disabled.
type Service struct {
	ConfigProvider ports.ConfigProvider
	SessionLog     ports.SessionLog
	Prompter       ports.ConfirmationPrompter
}

// Run executes all checks. Individual failures do not abort the run;
// callers decide the exit code from the report's Failed method.
func (s *Service) Run(ctx context.Context) domain.HealthReport {
	var checks []domain.HealthCheck

	home, err := os.UserHomeDir()
	if err != nil {
		checks = append(checks, fail("Home directory", err.Error()))
	} else {
		checks = append(checks, ok("Home directory", home))
	}

	var cfg domain.Config
	cfgLoaded := false
	if s.ConfigProvider == nil {
		checks = append(checks, fail("Config file", "config provider not initialized"))
	} else if cfg, err = s.ConfigProvider.Load(ctx); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		cfgLoaded = true
		checks = append(checks, ok("Config file", fmt.Sprintf("%s (precision %d bits, %d digits)",
			s.ConfigProvider.Path(), cfg.GetPrecisionBits(), cfg.GetDisplayDigits())))
	}

	switch {
	case !cfgLoaded:
		checks = append(checks, warn("Session log", "skipped; configuration unavailable"))
	case !cfg.IsSessionLogEnabled():
		checks = append(checks, ok("Session log", "disabled"))
	case s.SessionLog != nil:
		checks = append(checks, ok("Session log", s.SessionLog.Path()))
	default:
		checks = append(checks, fail("Session log", "enabled but could not be opened"))
	}

	if s.Prompter != nil && s.Prompter.Enabled() {
		checks = append(checks, ok("Terminal", fmt.Sprintf("interactive (color %s)", cfg.GetColorMode())))
	} else {
		checks = append(checks, warn("Terminal", "not interactive; pipe mode only"))
	}

	return domain.HealthReport{Checks: checks}
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
