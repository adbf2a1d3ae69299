package router

import "github.com/cwru-rcci/metarootbus/internal/result"

func init() {
	RegisterManager("NoopManager", func() Manager { return &NoopManager{} })
	RegisterManager("FailingManager", func() Manager { return &FailingManager{} })
}

// NoopManager always succeeds; used by router tests and as a template
// for a minimal real manager.
type NoopManager struct{}

// ClassName returns the manager's registry key.
func (m *NoopManager) ClassName() string { return "NoopManager" }

// Initialize is a no-op.
func (m *NoopManager) Initialize() error { return nil }

// Finalize is a no-op.
func (m *NoopManager) Finalize() error { return nil }

// Methods implements every Router action by returning a success Result
// whose response is the action's snake_case name; the arguments are not
// echoed.
func (m *NoopManager) Methods() MethodTable {
	echo := func(action string) func(args []any) (result.Result, error) {
		return func(args []any) (result.Result, error) {
			return result.OK(action), nil
		}
	}
	return MethodTable{
		"addGroup":                   echo("add_group"),
		"getGroup":                   echo("get_group"),
		"listGroups":                 echo("list_groups"),
		"getMembers":                 echo("get_members"),
		"updateGroup":                echo("update_group"),
		"deleteGroup":                echo("delete_group"),
		"existsGroup":                echo("exists_group"),
		"addUser":                    echo("add_user"),
		"updateUser":                 echo("update_user"),
		"getUser":                    echo("get_user"),
		"listUsers":                  echo("list_users"),
		"validateUsers":              echo("validate_users"),
		"rolesUser":                  echo("roles_user"),
		"deleteUser":                 echo("delete_user"),
		"existsUser":                 echo("exists_user"),
		"setUserDefaultGroup":        echo("set_user_default_group"),
		"associateUserToGroup":       echo("associate_user_to_group"),
		"disassociateUserFromGroup":  echo("disassociate_user_from_group"),
		"disassociateUsersFromGroup": echo("disassociate_users_from_group"),
	}
}

// FailingManager returns a fixed non-zero status from every method; used
// to test aggregation and reaction behavior on a failing backend.
type FailingManager struct {
	Status  int
	Message string
}

// ClassName returns the manager's registry key.
func (m *FailingManager) ClassName() string { return "FailingManager" }

// Initialize is a no-op.
func (m *FailingManager) Initialize() error { return nil }

// Finalize is a no-op.
func (m *FailingManager) Finalize() error { return nil }

// Methods implements every Router action by returning Status/Message
// (defaulting to 500/"manager failure" if unset).
func (m *FailingManager) Methods() MethodTable {
	status := m.Status
	if status == 0 {
		status = 500
	}
	message := m.Message
	if message == "" {
		message = "manager failure"
	}

	fail := func(args []any) (result.Result, error) {
		return result.Err(status, message), nil
	}

	return MethodTable{
		"addGroup": fail, "getGroup": fail, "listGroups": fail, "getMembers": fail,
		"updateGroup": fail, "deleteGroup": fail, "existsGroup": fail,
		"addUser": fail, "updateUser": fail, "getUser": fail, "listUsers": fail,
		"validateUsers": fail, "rolesUser": fail, "deleteUser": fail, "existsUser": fail,
		"setUserDefaultGroup": fail, "associateUserToGroup": fail,
		"disassociateUserFromGroup": fail, "disassociateUsersFromGroup": fail,
	}
}
