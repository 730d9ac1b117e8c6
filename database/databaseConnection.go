package database

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DBinstance connects to MongoDB using MONGODB_URL and returns the client.
func DBinstance() *mongo.Client {
	mongoURL := os.Getenv("MONGODB_URL")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("MongoDB is not reachable")
	}
	log.Info().Str("url", mongoURL).Msg("connected to MongoDB")
	return client
}

// OpenDatabase returns the service database handle.
func OpenDatabase(client *mongo.Client) *mongo.Database {
	name := os.Getenv("MONGODB_DATABASE")
	if name == "" {
		name = "qrmenu"
	}
	return client.Database(name)
}

// OpenCollection opens a named collection on the service database.
func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return OpenDatabase(client).Collection(collectionName)
}
