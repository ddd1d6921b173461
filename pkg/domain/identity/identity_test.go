package identity

import "testing"

func TestRole_Has(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		has  bool
	}{
		{RoleAdministrator, CapAdminister, true},
		{RoleAdministrator, CapOverrideLocked, true},
		{RoleAdministrator, CapLogWork, true},
		{RoleCoordinator, CapOwnObjective, true},
		{RoleCoordinator, CapCreateGoal, true},
		{RoleCoordinator, CapAdminister, false},
		{RoleCoordinator, CapOverrideLocked, false},
		{RoleIndividual, CapLogWork, true},
		{RoleIndividual, CapCreateGoal, false},
		{RoleIndividual, CapOwnObjective, false},
		{Role("unknown"), CapLogWork, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"_"+string(tt.cap), func(t *testing.T) {
			if got := tt.role.Has(tt.cap); got != tt.has {
				t.Errorf("Has() = %v, want %v", got, tt.has)
			}
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range ValidRoles() {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("manager").IsValid() {
		t.Error("unknown role should be invalid")
	}
}

func TestActor_Can(t *testing.T) {
	a := &Actor{ID: "dev", Role: RoleIndividual}
	if !a.Can(CapLogWork) {
		t.Error("individual should log work")
	}
	if a.Can(CapOverrideLocked) {
		t.Error("individual should not override locked entities")
	}

	var nilActor *Actor
	if nilActor.Can(CapLogWork) {
		t.Error("nil actor holds no capabilities")
	}
	if nilActor.IsAdministrator() {
		t.Error("nil actor is not an administrator")
	}
}

func TestDirectory(t *testing.T) {
	d := &Directory{}

	if err := d.Add(Actor{ID: "mgr", Role: RoleCoordinator}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := d.Add(Actor{ID: "dev", Role: RoleIndividual, ManagerID: "mgr"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if d.Find("dev") == nil {
		t.Error("expected to find dev")
	}
	if d.Find("nobody") != nil {
		t.Error("expected nil for unknown id")
	}

	if !d.ReportsTo("dev", "mgr") {
		t.Error("dev should report to mgr")
	}
	if d.ReportsTo("mgr", "dev") {
		t.Error("mgr does not report to dev")
	}

	// Add with an existing id updates in place.
	if err := d.Add(Actor{ID: "dev", Role: RoleCoordinator}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := d.Find("dev").Role; got != RoleCoordinator {
		t.Errorf("Role after update = %s, want coordinator", got)
	}
	if len(d.Actors) != 2 {
		t.Errorf("len(Actors) = %d, want 2", len(d.Actors))
	}

	if err := d.Remove("dev"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := d.Remove("dev"); err == nil {
		t.Error("expected error removing missing actor")
	}
}

func TestDirectory_AddRejectsBadInput(t *testing.T) {
	d := &Directory{}
	if err := d.Add(Actor{Role: RoleIndividual}); err == nil {
		t.Error("expected error for empty id")
	}
	if err := d.Add(Actor{ID: "x", Role: "boss"}); err == nil {
		t.Error("expected error for invalid role")
	}
}
