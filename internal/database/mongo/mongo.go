package mongo

import (
	"context"
	"fmt"
	"time"

	"EduLens/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewClient creates a MongoDB client from the given configuration and pings
// the server to verify the connection.
func NewClient(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" && cfg.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to MongoDB: %w", err)
	}

	if err := c.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("unable to ping MongoDB: %w", err)
	}

	return c, nil
}

// Close disconnects the client.
func Close(ctx context.Context, c *mongo.Client) error {
	if c != nil {
		return c.Disconnect(ctx)
	}
	return nil
}

// HealthCheck pings the server.
func HealthCheck(ctx context.Context, c *mongo.Client) error {
	if c == nil {
		return fmt.Errorf("MongoDB client is not initialized")
	}
	return c.Ping(ctx, nil)
}
