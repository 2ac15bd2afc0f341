package notifications

import (
	"fmt"
	"time"

	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/google/uuid"
)

const (
	EntityCreated string = "EntityCreated"
	EntityUpdated string = "EntityUpdated"
	EntityDeleted string = "EntityDeleted"
)

type Notification struct {
	Id         string            `json:"id"`
	Type       string            `json:"type"`
	NotifiedAt string            `json:"notifiedAt"`
	Data       []entities.Entity `json:"data"`
}

func NewNotification(notificationType string, e entities.Entity) *Notification {
	n := &Notification{
		Id:         fmt.Sprintf("urn:entity-registry:Notification:%s", uuid.New().String()),
		Type:       notificationType,
		NotifiedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Data:       []entities.Entity{e},
	}

	return n
}
