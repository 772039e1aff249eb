// Package registry fixes the set and order of governance checks. Order
// affects display only, never scoring.
package registry

import (
	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/checks/audit"
	"github.com/agentshield/agentshield/internal/checks/dataclass"
	"github.com/agentshield/agentshield/internal/checks/decisions"
	"github.com/agentshield/agentshield/internal/checks/docs"
	"github.com/agentshield/agentshield/internal/checks/errhandling"
	"github.com/agentshield/agentshield/internal/checks/ownership"
	"github.com/agentshield/agentshield/internal/checks/oversight"
	"github.com/agentshield/agentshield/internal/checks/secrets"
)

// DefaultChecks returns every registered check in its stable display order.
// Callers get a fresh slice each time; the descriptors themselves are
// immutable for the process lifetime.
func DefaultChecks() []checks.Check {
	return []checks.Check{
		{ID: secrets.ID, Name: secrets.Name, Icon: secrets.Icon, MaxScore: secrets.MaxScore, Run: secrets.Run},
		{ID: audit.ID, Name: audit.Name, Icon: audit.Icon, MaxScore: audit.MaxScore, Run: audit.Run},
		{ID: oversight.ID, Name: oversight.Name, Icon: oversight.Icon, MaxScore: oversight.MaxScore, Run: oversight.Run},
		{ID: dataclass.ID, Name: dataclass.Name, Icon: dataclass.Icon, MaxScore: dataclass.MaxScore, Run: dataclass.Run},
		{ID: errhandling.ID, Name: errhandling.Name, Icon: errhandling.Icon, MaxScore: errhandling.MaxScore, Run: errhandling.Run},
		{ID: docs.ID, Name: docs.Name, Icon: docs.Icon, MaxScore: docs.MaxScore, Run: docs.Run},
		{ID: decisions.ID, Name: decisions.Name, Icon: decisions.Icon, MaxScore: decisions.MaxScore, Run: decisions.Run},
		{ID: ownership.ID, Name: ownership.Name, Icon: ownership.Icon, MaxScore: ownership.MaxScore, Run: ownership.Run},
	}
}
