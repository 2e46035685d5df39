package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	appName                = "fitchallenge"
	serverSelectionTimeout = 10 * time.Second
	pingTimeout            = 5 * time.Second
)

// ConnectDB opens a client pinned to Stable API v1 in strict mode and pings the
// primary, so a bad URI fails at startup rather than on the first request.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true)
	clientOptions := options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = DisconnectDB(context.Background(), client)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return client, nil
}

// DisconnectDB closes the client, giving in-flight operations up to pingTimeout.
func DisconnectDB(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
