package client

import (
	"context"

	"github.com/cwru-rcci/metarootbus/internal/result"
)

// EventClient wraps a fire-and-forget transport.Producer. It omits every
// read-style method (get_group, list_groups, get_members, get_user,
// list_users, validate_users, roles_user, exists_group, exists_user)
// because no reply is available over a fire-and-forget producer.
type EventClient struct {
	producer sender
}

// NewEventClient wraps an already-connected producer.
func NewEventClient(producer sender) *EventClient {
	return &EventClient{producer: producer}
}

func (c *EventClient) send(ctx context.Context, action string, fields map[string]any, managers any) result.Result {
	return c.producer.Send(ctx, envelope(action, fields, managers))
}

func (c *EventClient) AddGroup(ctx context.Context, groupAtts map[string]any, managers any) result.Result {
	if err := requireNameKey(groupAtts); err != nil {
		return result.Err(452, err.Error())
	}
	return c.send(ctx, "addGroup", map[string]any{"group_atts": groupAtts}, managers)
}

func (c *EventClient) UpdateGroup(ctx context.Context, groupAtts map[string]any, managers any) result.Result {
	if err := requireNameKey(groupAtts); err != nil {
		return result.Err(452, err.Error())
	}
	return c.send(ctx, "updateGroup", map[string]any{"group_atts": groupAtts}, managers)
}

func (c *EventClient) DeleteGroup(ctx context.Context, name string, managers any) result.Result {
	return c.send(ctx, "deleteGroup", map[string]any{"name": name}, managers)
}

func (c *EventClient) AddUser(ctx context.Context, userAtts map[string]any, managers any) result.Result {
	if err := requireNameKey(userAtts); err != nil {
		return result.Err(452, err.Error())
	}
	return c.send(ctx, "addUser", map[string]any{"user_atts": userAtts}, managers)
}

func (c *EventClient) UpdateUser(ctx context.Context, userAtts map[string]any, managers any) result.Result {
	if err := requireNameKey(userAtts); err != nil {
		return result.Err(452, err.Error())
	}
	return c.send(ctx, "updateUser", map[string]any{"user_atts": userAtts}, managers)
}

func (c *EventClient) DeleteUser(ctx context.Context, name string, managers any) result.Result {
	return c.send(ctx, "deleteUser", map[string]any{"name": name}, managers)
}

func (c *EventClient) SetUserDefaultGroup(ctx context.Context, userName, groupName string, managers any) result.Result {
	return c.send(ctx, "setUserDefaultGroup", map[string]any{"user_name": userName, "group_name": groupName}, managers)
}

func (c *EventClient) AssociateUserToGroup(ctx context.Context, userName, groupName string, managers any) result.Result {
	return c.send(ctx, "associateUserToGroup", map[string]any{"user_name": userName, "group_name": groupName}, managers)
}

func (c *EventClient) DisassociateUserFromGroup(ctx context.Context, userName, groupName string, managers any) result.Result {
	return c.send(ctx, "disassociateUserFromGroup", map[string]any{"user_name": userName, "group_name": groupName}, managers)
}

func (c *EventClient) DisassociateUsersFromGroup(ctx context.Context, userNames []any, groupName string, managers any) result.Result {
	return c.send(ctx, "disassociateUsersFromGroup", map[string]any{"user_names": userNames, "group_name": groupName}, managers)
}
