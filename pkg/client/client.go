package client

import (
	"context"

	"tigminoo/pkg/logger"
)

// Client holds the process-wide external connections. Connections are pooled
// by their drivers and acquired per logical unit of work.
type Client struct {
	Mongo *MongoClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo == nil {
		return
	}
	if err := c.Mongo.Client.Disconnect(context.Background()); err != nil {
		log.Error("Failed to disconnect from MongoDB", "error", err)
		return
	}
	log.Info("MongoDB connection closed")
}
