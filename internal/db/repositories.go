package db

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cycletracker/internal/config"
	"github.com/terraincognita07/cycletracker/internal/services"
)

type Options struct {
	// Driver is config.StorageSQLite (the default when empty) or config.StorageMongo.
	Driver        string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
	Logger        *logrus.Logger
}

type Repositories struct {
	Profiles services.ProfileRepository
	close    func() error
}

func (repos *Repositories) Close() error {
	if repos == nil || repos.close == nil {
		return nil
	}
	return repos.close()
}

// Open connects the configured store and returns its repositories.
func Open(ctx context.Context, opts Options) (*Repositories, error) {
	switch opts.Driver {
	case "", config.StorageSQLite:
		database, err := OpenSQLite(opts.SQLitePath, opts.Logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return nil, fmt.Errorf("access sqlite handle: %w", err)
		}
		return &Repositories{
			Profiles: NewProfileRepository(database),
			close:    sqlDB.Close,
		}, nil
	case config.StorageMongo:
		client, err := OpenMongo(ctx, opts.MongoURI)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Profiles: NewMongoProfileRepository(client.Database(opts.MongoDatabase)),
			close: func() error {
				return client.Disconnect(context.Background())
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
}
