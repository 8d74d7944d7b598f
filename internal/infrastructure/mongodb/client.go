package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/andea-legal/lawyers-api/pkg/config"
)

// Connect abre el cliente de MongoDB y verifica la conexión con un ping.
// El cliente se construye una vez en el entry point y se inyecta; no hay
// singleton de paquete. El cierre es responsabilidad del caller (defer
// Disconnect en main).
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetBSONOptions(&options.BSONOptions{
			// Los documentos sin esquema se decodifican a bson.M (no bson.D):
			// el rewriter y el shaping trabajan sobre mapas.
			DefaultDocumentM: true,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("conectar a mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping a mongo: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
