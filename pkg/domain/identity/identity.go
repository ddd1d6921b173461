// Package identity models actors, roles and the capability sets gates
// consult. Validators never branch on role strings directly; rule changes
// stay local to the role -> capability mapping here.
package identity

import "fmt"

// Role is the coarse organizational role of an actor.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleCoordinator   Role = "coordinator"
	RoleIndividual    Role = "individual"
)

// Capability is a single permission an actor may hold.
type Capability string

const (
	// CapAdminister allows creating objectives and administrative repair.
	CapAdminister Capability = "administer"
	// CapOwnObjective allows being the owner of an objective.
	CapOwnObjective Capability = "own_objective"
	// CapCreateGoal allows creating goals for direct reports.
	CapCreateGoal Capability = "create_goal"
	// CapLogWork allows creating tasks and logging progress.
	CapLogWork Capability = "log_work"
	// CapOverrideLocked allows editing entities in a locked status.
	CapOverrideLocked Capability = "override_locked"
)

// roleCapabilities maps each role to its capability set.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdministrator: {
		CapAdminister:     true,
		CapOwnObjective:   true,
		CapCreateGoal:     true,
		CapLogWork:        true,
		CapOverrideLocked: true,
	},
	RoleCoordinator: {
		CapOwnObjective: true,
		CapCreateGoal:   true,
		CapLogWork:      true,
	},
	RoleIndividual: {
		CapLogWork: true,
	},
}

// ValidRoles returns all recognized roles.
func ValidRoles() []Role {
	return []Role{RoleAdministrator, RoleCoordinator, RoleIndividual}
}

// IsValid checks if the role is a recognized value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleCoordinator, RoleIndividual:
		return true
	}
	return false
}

// Has returns true if the role grants the capability.
func (r Role) Has(c Capability) bool {
	return roleCapabilities[r][c]
}

// Capabilities returns the full capability set of the role.
func (r Role) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, 0, len(caps))
	for c, ok := range caps {
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// Actor is a member of the organization.
type Actor struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Role       Role   `yaml:"role" json:"role"`
	Department string `yaml:"department" json:"department"`
	ManagerID  string `yaml:"manager_id,omitempty" json:"manager_id,omitempty"`
}

// Can returns true if the actor holds the capability.
func (a *Actor) Can(c Capability) bool {
	if a == nil {
		return false
	}
	return a.Role.Has(c)
}

// IsAdministrator returns true for actors with the elevated role.
func (a *Actor) IsAdministrator() bool {
	return a != nil && a.Role == RoleAdministrator
}

// Directory holds the known actors, loaded from team.yaml in the workspace.
type Directory struct {
	Actors []Actor `yaml:"actors" json:"actors"`
}

// Find returns the actor with the given id, or nil if not found.
func (d *Directory) Find(id string) *Actor {
	for i := range d.Actors {
		if d.Actors[i].ID == id {
			return &d.Actors[i]
		}
	}
	return nil
}

// Add adds an actor or updates the existing entry with the same id.
func (d *Directory) Add(a Actor) error {
	if a.ID == "" {
		return fmt.Errorf("actor id cannot be empty")
	}
	if !a.Role.IsValid() {
		return fmt.Errorf("invalid role: %s", a.Role)
	}
	for i := range d.Actors {
		if d.Actors[i].ID == a.ID {
			d.Actors[i] = a
			return nil
		}
	}
	d.Actors = append(d.Actors, a)
	return nil
}

// Remove removes an actor by id. Returns an error if not found.
func (d *Directory) Remove(id string) error {
	for i := range d.Actors {
		if d.Actors[i].ID == id {
			d.Actors = append(d.Actors[:i], d.Actors[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("actor not found: %s", id)
}

// ReportsTo returns true if actor a reports directly to manager m.
func (d *Directory) ReportsTo(actorID, managerID string) bool {
	a := d.Find(actorID)
	return a != nil && a.ManagerID == managerID
}
