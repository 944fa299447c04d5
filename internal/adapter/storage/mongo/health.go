package mongo

import (
	"context"

	gomongo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheck implements ports.HealthChecker for MongoDB.
type HealthCheck struct {
	client *gomongo.Client
}

func NewHealthCheck(client *gomongo.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}

func (h *HealthCheck) Name() string {
	return "mongodb"
}
