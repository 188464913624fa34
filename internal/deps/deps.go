package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"mvvid/internal/config"
)

// Requirement defines an external dependency mvvid relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the binaries the configured refresh method needs. Only
// the scanner method shells out; http and none have no binary dependencies.
func Requirements(cfg *config.Config) []Requirement {
	if cfg == nil || cfg.Plex.RefreshMethod != config.RefreshScanner {
		return nil
	}
	reqs := []Requirement{{
		Name:        "Plex Media Scanner",
		Command:     cfg.Plex.ScannerPath,
		Description: "Required to rescan library sections",
	}}
	if strings.TrimSpace(cfg.Plex.ServiceUser) == "" {
		return reqs
	}
	reqs = append(reqs, Requirement{
		Name:        "su",
		Command:     "su",
		Description: "Runs the scanner as " + cfg.Plex.ServiceUser,
	})
	// Only the program name is looked up; flags such as "sudo -n" stay with
	// the scanner command line.
	if elevate := strings.Fields(cfg.Plex.ElevateCommand); len(elevate) > 0 {
		reqs = append(reqs, Requirement{
			Name:        elevate[0],
			Command:     elevate[0],
			Description: "Elevates before switching to the service user",
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
