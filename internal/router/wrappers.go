package router

import "github.com/cwru-rcci/metarootbus/internal/result"

// The wrapper methods below forward to safeCall with the literal method
// name and an ordered argument list, per §4.8's nineteen Router methods.

func (r *Router) AddGroup(groupAtts map[string]any, managers any) result.Result {
	return r.safeCall("addGroup", []any{groupAtts}, managers)
}

func (r *Router) GetGroup(name string, managers any) result.Result {
	return r.safeCall("getGroup", []any{name}, managers)
}

func (r *Router) ListGroups(managers any) result.Result {
	return r.safeCall("listGroups", []any{}, managers)
}

func (r *Router) GetMembers(name string, managers any) result.Result {
	return r.safeCall("getMembers", []any{name}, managers)
}

func (r *Router) UpdateGroup(groupAtts map[string]any, managers any) result.Result {
	return r.safeCall("updateGroup", []any{groupAtts}, managers)
}

func (r *Router) DeleteGroup(name string, managers any) result.Result {
	return r.safeCall("deleteGroup", []any{name}, managers)
}

func (r *Router) ExistsGroup(name string, managers any) result.Result {
	return r.safeCall("existsGroup", []any{name}, managers)
}

func (r *Router) AddUser(userAtts map[string]any, managers any) result.Result {
	return r.safeCall("addUser", []any{userAtts}, managers)
}

func (r *Router) UpdateUser(userAtts map[string]any, managers any) result.Result {
	return r.safeCall("updateUser", []any{userAtts}, managers)
}

func (r *Router) GetUser(name string, managers any) result.Result {
	return r.safeCall("getUser", []any{name}, managers)
}

func (r *Router) ListUsers(withDefaultGroup string, managers any) result.Result {
	return r.safeCall("listUsers", []any{withDefaultGroup}, managers)
}

func (r *Router) ValidateUsers(names []any, managers any) result.Result {
	return r.safeCall("validateUsers", []any{names}, managers)
}

func (r *Router) RolesUser(name string, managers any) result.Result {
	return r.safeCall("rolesUser", []any{name}, managers)
}

func (r *Router) DeleteUser(name string, managers any) result.Result {
	return r.safeCall("deleteUser", []any{name}, managers)
}

func (r *Router) ExistsUser(name string, managers any) result.Result {
	return r.safeCall("existsUser", []any{name}, managers)
}

func (r *Router) SetUserDefaultGroup(userName, groupName string, managers any) result.Result {
	return r.safeCall("setUserDefaultGroup", []any{userName, groupName}, managers)
}

func (r *Router) AssociateUserToGroup(userName, groupName string, managers any) result.Result {
	return r.safeCall("associateUserToGroup", []any{userName, groupName}, managers)
}

func (r *Router) DisassociateUserFromGroup(userName, groupName string, managers any) result.Result {
	return r.safeCall("disassociateUserFromGroup", []any{userName, groupName}, managers)
}

func (r *Router) DisassociateUsersFromGroup(userNames []any, groupName string, managers any) result.Result {
	return r.safeCall("disassociateUsersFromGroup", []any{userNames, groupName}, managers)
}
