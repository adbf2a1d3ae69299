package client

import (
	"context"

	"github.com/cwru-rcci/metarootbus/internal/result"
)

// RPCClient wraps a request/reply transport.RPCClient and exposes the full
// set of nineteen actions, including the read-style methods an EventClient
// cannot offer.
type RPCClient struct {
	rpc sender
}

// NewRPCClient wraps an already-connected RPC transport.
func NewRPCClient(rpc sender) *RPCClient {
	return &RPCClient{rpc: rpc}
}

func (c *RPCClient) call(ctx context.Context, action string, fields map[string]any, managers any) result.Result {
	return c.rpc.Send(ctx, envelope(action, fields, managers))
}

func (c *RPCClient) AddGroup(ctx context.Context, groupAtts map[string]any, managers any) result.Result {
	if err := requireNameKey(groupAtts); err != nil {
		return result.Err(452, err.Error())
	}
	return c.call(ctx, "addGroup", map[string]any{"group_atts": groupAtts}, managers)
}

func (c *RPCClient) GetGroup(ctx context.Context, name string, managers any) result.Result {
	return c.call(ctx, "getGroup", map[string]any{"name": name}, managers)
}

func (c *RPCClient) ListGroups(ctx context.Context, managers any) result.Result {
	return c.call(ctx, "listGroups", map[string]any{}, managers)
}

func (c *RPCClient) GetMembers(ctx context.Context, name string, managers any) result.Result {
	return c.call(ctx, "getMembers", map[string]any{"name": name}, managers)
}

func (c *RPCClient) UpdateGroup(ctx context.Context, groupAtts map[string]any, managers any) result.Result {
	if err := requireNameKey(groupAtts); err != nil {
		return result.Err(452, err.Error())
	}
	return c.call(ctx, "updateGroup", map[string]any{"group_atts": groupAtts}, managers)
}

func (c *RPCClient) DeleteGroup(ctx context.Context, name string, managers any) result.Result {
	return c.call(ctx, "deleteGroup", map[string]any{"name": name}, managers)
}

func (c *RPCClient) ExistsGroup(ctx context.Context, name string, managers any) result.Result {
	return c.call(ctx, "existsGroup", map[string]any{"name": name}, managers)
}

func (c *RPCClient) AddUser(ctx context.Context, userAtts map[string]any, managers any) result.Result {
	if err := requireNameKey(userAtts); err != nil {
		return result.Err(452, err.Error())
	}
	return c.call(ctx, "addUser", map[string]any{"user_atts": userAtts}, managers)
}

func (c *RPCClient) UpdateUser(ctx context.Context, userAtts map[string]any, managers any) result.Result {
	if err := requireNameKey(userAtts); err != nil {
		return result.Err(452, err.Error())
	}
	return c.call(ctx, "updateUser", map[string]any{"user_atts": userAtts}, managers)
}

func (c *RPCClient) GetUser(ctx context.Context, name string, managers any) result.Result {
	return c.call(ctx, "getUser", map[string]any{"name": name}, managers)
}

func (c *RPCClient) ListUsers(ctx context.Context, withDefaultGroup string, managers any) result.Result {
	return c.call(ctx, "listUsers", map[string]any{"with_default_group": withDefaultGroup}, managers)
}

func (c *RPCClient) ValidateUsers(ctx context.Context, names []any, managers any) result.Result {
	return c.call(ctx, "validateUsers", map[string]any{"names": names}, managers)
}

func (c *RPCClient) RolesUser(ctx context.Context, name string, managers any) result.Result {
	return c.call(ctx, "rolesUser", map[string]any{"name": name}, managers)
}

func (c *RPCClient) DeleteUser(ctx context.Context, name string, managers any) result.Result {
	return c.call(ctx, "deleteUser", map[string]any{"name": name}, managers)
}

func (c *RPCClient) ExistsUser(ctx context.Context, name string, managers any) result.Result {
	return c.call(ctx, "existsUser", map[string]any{"name": name}, managers)
}

func (c *RPCClient) SetUserDefaultGroup(ctx context.Context, userName, groupName string, managers any) result.Result {
	return c.call(ctx, "setUserDefaultGroup", map[string]any{"user_name": userName, "group_name": groupName}, managers)
}

func (c *RPCClient) AssociateUserToGroup(ctx context.Context, userName, groupName string, managers any) result.Result {
	return c.call(ctx, "associateUserToGroup", map[string]any{"user_name": userName, "group_name": groupName}, managers)
}

func (c *RPCClient) DisassociateUserFromGroup(ctx context.Context, userName, groupName string, managers any) result.Result {
	return c.call(ctx, "disassociateUserFromGroup", map[string]any{"user_name": userName, "group_name": groupName}, managers)
}

func (c *RPCClient) DisassociateUsersFromGroup(ctx context.Context, userNames []any, groupName string, managers any) result.Result {
	return c.call(ctx, "disassociateUsersFromGroup", map[string]any{"user_names": userNames, "group_name": groupName}, managers)
}
