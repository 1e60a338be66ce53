package service

import (
	"context"
	"encoding/json"
	"fmt"

	"heritageportal/internal/model"
	"heritageportal/internal/repository"
	ws "heritageportal/internal/websocket"
)

// resolveActor turns the authenticated user id from the request context
// into the actor identity stamped on audit entries.
func resolveActor(ctx context.Context, users repository.UserRepository, userID string) (model.Actor, error) {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return model.Actor{}, fmt.Errorf("acting user not found: %w", err)
	}
	return model.Actor{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}

// ActivityEvent is the payload pushed to dashboard websocket clients
// when a lifecycle or approval step lands.
type ActivityEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// notify broadcasts an activity event; a nil hub (tests) is a no-op.
func notify(hub *ws.Hub, event string, data map[string]interface{}) {
	if hub == nil {
		return
	}
	payload, err := json.Marshal(ActivityEvent{Event: event, Data: data})
	if err != nil {
		return
	}
	select {
	case hub.Broadcast <- payload:
	default:
	}
}
