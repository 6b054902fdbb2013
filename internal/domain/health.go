package domain

// HealthStatus grades one doctor check. The string value feeds the
// renderer's status tag.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck is the outcome of inspecting one piece of the
// calculator's environment: the home directory, the config file, the
// session log backend or the terminal.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport lists the checks of one doctor run in the order they
// ran.
type HealthReport struct {
	Checks []HealthCheck
}

// Failed reports whether any check ended in an error. Warnings do not
// fail the report.
func (r HealthReport) Failed() bool {
	for _, check := range r.Checks {
		if check.Status == HealthError {
			return true
		}
	}
	return false
}
