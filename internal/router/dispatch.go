package router

import (
	"fmt"

	"github.com/cwru-rcci/metarootbus/internal/dispatch"
	"github.com/cwru-rcci/metarootbus/internal/result"
)

// managersOf returns request["managers"], defaulting to "any" when
// absent, per §3's Request envelope definition.
func managersOf(request map[string]any) any {
	if v, ok := request["managers"]; ok {
		return v
	}
	return "any"
}

func str(request map[string]any, key string) (string, error) {
	v, ok := request[key]
	if !ok {
		return "", fmt.Errorf("missing %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string, got %T", key, v)
	}
	return s, nil
}

func mapping(request map[string]any, key string) (map[string]any, error) {
	v, ok := request[key]
	if !ok {
		return nil, fmt.Errorf("missing %q", key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q must be a mapping, got %T", key, v)
	}
	return m, nil
}

func list(request map[string]any, key string) ([]any, error) {
	v, ok := request[key]
	if !ok {
		return nil, fmt.Errorf("missing %q", key)
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%q must be a list, got %T", key, v)
	}
	return l, nil
}

// Registry builds the dispatch.Registry for the Router's nineteen public
// actions, so it can serve directly as a transport.Handler via
// dispatch.Dispatch.
func (r *Router) Registry() dispatch.Registry {
	reg := dispatch.Registry{}

	reg["addGroup"] = dispatch.Action{
		Params: []string{"group_atts"},
		Invoke: func(req map[string]any) (result.Result, error) {
			atts, err := mapping(req, "group_atts")
			if err != nil {
				return result.Result{}, err
			}
			return r.AddGroup(atts, managersOf(req)), nil
		},
	}
	reg["getGroup"] = dispatch.Action{
		Params: []string{"name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			name, err := str(req, "name")
			if err != nil {
				return result.Result{}, err
			}
			return r.GetGroup(name, managersOf(req)), nil
		},
	}
	reg["listGroups"] = dispatch.Action{
		Invoke: func(req map[string]any) (result.Result, error) {
			return r.ListGroups(managersOf(req)), nil
		},
	}
	reg["getMembers"] = dispatch.Action{
		Params: []string{"name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			name, err := str(req, "name")
			if err != nil {
				return result.Result{}, err
			}
			return r.GetMembers(name, managersOf(req)), nil
		},
	}
	reg["updateGroup"] = dispatch.Action{
		Params: []string{"group_atts"},
		Invoke: func(req map[string]any) (result.Result, error) {
			atts, err := mapping(req, "group_atts")
			if err != nil {
				return result.Result{}, err
			}
			return r.UpdateGroup(atts, managersOf(req)), nil
		},
	}
	reg["deleteGroup"] = dispatch.Action{
		Params: []string{"name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			name, err := str(req, "name")
			if err != nil {
				return result.Result{}, err
			}
			return r.DeleteGroup(name, managersOf(req)), nil
		},
	}
	reg["existsGroup"] = dispatch.Action{
		Params: []string{"name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			name, err := str(req, "name")
			if err != nil {
				return result.Result{}, err
			}
			return r.ExistsGroup(name, managersOf(req)), nil
		},
	}
	reg["addUser"] = dispatch.Action{
		Params: []string{"user_atts"},
		Invoke: func(req map[string]any) (result.Result, error) {
			atts, err := mapping(req, "user_atts")
			if err != nil {
				return result.Result{}, err
			}
			return r.AddUser(atts, managersOf(req)), nil
		},
	}
	reg["updateUser"] = dispatch.Action{
		Params: []string{"user_atts"},
		Invoke: func(req map[string]any) (result.Result, error) {
			atts, err := mapping(req, "user_atts")
			if err != nil {
				return result.Result{}, err
			}
			return r.UpdateUser(atts, managersOf(req)), nil
		},
	}
	reg["getUser"] = dispatch.Action{
		Params: []string{"name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			name, err := str(req, "name")
			if err != nil {
				return result.Result{}, err
			}
			return r.GetUser(name, managersOf(req)), nil
		},
	}
	reg["listUsers"] = dispatch.Action{
		Params: []string{"with_default_group"},
		Invoke: func(req map[string]any) (result.Result, error) {
			group, err := str(req, "with_default_group")
			if err != nil {
				return result.Result{}, err
			}
			return r.ListUsers(group, managersOf(req)), nil
		},
	}
	reg["validateUsers"] = dispatch.Action{
		Params: []string{"names"},
		Invoke: func(req map[string]any) (result.Result, error) {
			names, err := list(req, "names")
			if err != nil {
				return result.Result{}, err
			}
			return r.ValidateUsers(names, managersOf(req)), nil
		},
	}
	reg["rolesUser"] = dispatch.Action{
		Params: []string{"name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			name, err := str(req, "name")
			if err != nil {
				return result.Result{}, err
			}
			return r.RolesUser(name, managersOf(req)), nil
		},
	}
	reg["deleteUser"] = dispatch.Action{
		Params: []string{"name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			name, err := str(req, "name")
			if err != nil {
				return result.Result{}, err
			}
			return r.DeleteUser(name, managersOf(req)), nil
		},
	}
	reg["existsUser"] = dispatch.Action{
		Params: []string{"name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			name, err := str(req, "name")
			if err != nil {
				return result.Result{}, err
			}
			return r.ExistsUser(name, managersOf(req)), nil
		},
	}
	reg["setUserDefaultGroup"] = dispatch.Action{
		Params: []string{"user_name", "group_name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			userName, err := str(req, "user_name")
			if err != nil {
				return result.Result{}, err
			}
			groupName, err := str(req, "group_name")
			if err != nil {
				return result.Result{}, err
			}
			return r.SetUserDefaultGroup(userName, groupName, managersOf(req)), nil
		},
	}
	reg["associateUserToGroup"] = dispatch.Action{
		Params: []string{"user_name", "group_name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			userName, err := str(req, "user_name")
			if err != nil {
				return result.Result{}, err
			}
			groupName, err := str(req, "group_name")
			if err != nil {
				return result.Result{}, err
			}
			return r.AssociateUserToGroup(userName, groupName, managersOf(req)), nil
		},
	}
	reg["disassociateUserFromGroup"] = dispatch.Action{
		Params: []string{"user_name", "group_name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			userName, err := str(req, "user_name")
			if err != nil {
				return result.Result{}, err
			}
			groupName, err := str(req, "group_name")
			if err != nil {
				return result.Result{}, err
			}
			return r.DisassociateUserFromGroup(userName, groupName, managersOf(req)), nil
		},
	}
	reg["disassociateUsersFromGroup"] = dispatch.Action{
		Params: []string{"user_names", "group_name"},
		Invoke: func(req map[string]any) (result.Result, error) {
			userNames, err := list(req, "user_names")
			if err != nil {
				return result.Result{}, err
			}
			groupName, err := str(req, "group_name")
			if err != nil {
				return result.Result{}, err
			}
			return r.DisassociateUsersFromGroup(userNames, groupName, managersOf(req)), nil
		},
	}

	return reg
}
