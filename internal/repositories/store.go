package repositories

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
)

// Supported storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// StoreConfig selects and addresses a storage backend.
type StoreConfig struct {
	Driver   string
	DSN      string // sqlite file or postgres connection string
	MongoURI string
	MongoDB  string
}

// Store bundles the repositories of one backend.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository

	closer func(context.Context) error
}

// NewMemoryStore returns a store backed by process memory.
func NewMemoryStore() *Store {
	return &Store{
		Users:    NewMemoryUserRepository(),
		Products: NewMemoryProductRepository(),
		Carts:    NewMemoryCartRepository(),
		Orders:   NewMemoryOrderRepository(),
	}
}

// Open connects to the backend named by cfg.Driver and prepares its schema.
func Open(ctx context.Context, cfg StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		log.Println("Using in-memory storage; data will not survive a restart")
		return NewMemoryStore(), nil

	case DriverSQLite, DriverPostgres:
		db, err := OpenGORM(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Printf("Connected to %s database", cfg.Driver)
		return &Store{
			Users:    NewGORMUserRepository(db),
			Products: NewGORMProductRepository(db),
			Carts:    NewGORMCartRepository(db),
			Orders:   NewGORMOrderRepository(db),
			closer: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil

	case DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Printf("Connected to mongo database %s", cfg.MongoDB)
		return newMongoStore(client, db), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func newMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Users:    NewMongoUserRepository(db),
		Products: NewMongoProductRepository(db),
		Carts:    NewMongoCartRepository(db),
		Orders:   NewMongoOrderRepository(db),
		closer:   client.Disconnect,
	}
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
