package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/cycletracker/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cycleDataCollection = "cycledata"

// OpenMongo connects and pings the server before returning the client.
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("mongo connection uri is empty")
	}

	clientOptions := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

type periodLogDocument struct {
	StartDate time.Time `bson:"startDate"`
	EndDate   time.Time `bson:"endDate"`
	Flow      string    `bson:"flow"`
}

type symptomDocument struct {
	Date     time.Time `bson:"date"`
	Type     string    `bson:"type"`
	Severity int       `bson:"severity"`
}

type profileDocument struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	LastPeriodStart *time.Time          `bson:"lastPeriodStart,omitempty"`
	CycleLength     int                 `bson:"cycleLength"`
	PeriodLength    int                 `bson:"periodLength"`
	PeriodLogs      []periodLogDocument `bson:"periodLogs"`
	Symptoms        []symptomDocument   `bson:"symptoms"`
	CreatedAt       time.Time           `bson:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt"`
}

// MongoProfileRepository keeps the whole profile in one document of the
// cycledata collection. The oldest document is the singleton.
type MongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(database *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{collection: database.Collection(cycleDataCollection)}
}

func (repo *MongoProfileRepository) Load(ctx context.Context) (models.CycleProfile, bool, error) {
	document := profileDocument{}
	err := repo.collection.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CycleProfile{}, false, nil
	}
	if err != nil {
		return models.CycleProfile{}, false, err
	}
	return document.toModel(), true, nil
}

func (repo *MongoProfileRepository) AppendPeriodLog(ctx context.Context, log models.PeriodLog, periodLength int) (models.CycleProfile, error) {
	now := time.Now().UTC()
	return repo.upsert(ctx, bson.M{
		"$push": bson.M{"periodLogs": periodLogDocument{
			StartDate: utcDay(log.StartDate),
			EndDate:   utcDay(log.EndDate),
			Flow:      log.Flow,
		}},
		"$set": bson.M{
			"lastPeriodStart": utcDay(log.StartDate),
			"periodLength":    periodLength,
			"updatedAt":       now,
		},
		"$setOnInsert": bson.M{
			"cycleLength": models.DefaultCycleLength,
			"symptoms":    bson.A{},
			"createdAt":   now,
		},
	})
}

func (repo *MongoProfileRepository) AppendSymptom(ctx context.Context, symptom models.Symptom) (models.CycleProfile, error) {
	now := time.Now().UTC()
	return repo.upsert(ctx, bson.M{
		"$push": bson.M{"symptoms": symptomDocument{
			Date:     utcDay(symptom.Date),
			Type:     symptom.Type,
			Severity: symptom.Severity,
		}},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"cycleLength":  models.DefaultCycleLength,
			"periodLength": models.DefaultPeriodLength,
			"periodLogs":   bson.A{},
			"createdAt":    now,
		},
	})
}

func (repo *MongoProfileRepository) UpdateCycleLength(ctx context.Context, cycleLength int) (models.CycleProfile, error) {
	now := time.Now().UTC()
	return repo.upsert(ctx, bson.M{
		"$set": bson.M{
			"cycleLength": cycleLength,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"periodLength": models.DefaultPeriodLength,
			"periodLogs":   bson.A{},
			"symptoms":     bson.A{},
			"createdAt":    now,
		},
	})
}

func (repo *MongoProfileRepository) ClearPeriodLogs(ctx context.Context) error {
	singleton, found, err := repo.singletonID(ctx)
	if err != nil || !found {
		return err
	}
	_, err = repo.collection.UpdateByID(ctx, singleton, bson.M{
		"$set": bson.M{
			"periodLogs": bson.A{},
			"updatedAt":  time.Now().UTC(),
		},
	})
	return err
}

func (repo *MongoProfileRepository) upsert(ctx context.Context, update bson.M) (models.CycleProfile, error) {
	filter := bson.M{}
	singleton, found, err := repo.singletonID(ctx)
	if err != nil {
		return models.CycleProfile{}, err
	}
	if found {
		filter = bson.M{"_id": singleton}
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	document := profileDocument{}
	if err := repo.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&document); err != nil {
		return models.CycleProfile{}, err
	}
	return document.toModel(), nil
}

func (repo *MongoProfileRepository) singletonID(ctx context.Context) (primitive.ObjectID, bool, error) {
	var document struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1})
	err := repo.collection.FindOne(ctx, bson.M{}, opts).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	return document.ID, true, nil
}

func (document profileDocument) toModel() models.CycleProfile {
	profile := models.NewCycleProfile()
	profile.CycleLength = document.CycleLength
	profile.PeriodLength = document.PeriodLength
	profile.CreatedAt = document.CreatedAt
	profile.UpdatedAt = document.UpdatedAt
	if document.LastPeriodStart != nil {
		lastPeriodStart := utcDay(*document.LastPeriodStart)
		profile.LastPeriodStart = &lastPeriodStart
	}

	for _, log := range document.PeriodLogs {
		profile.PeriodLogs = append(profile.PeriodLogs, models.PeriodLog{
			StartDate: utcDay(log.StartDate),
			EndDate:   utcDay(log.EndDate),
			Flow:      log.Flow,
		})
	}
	for _, symptom := range document.Symptoms {
		profile.Symptoms = append(profile.Symptoms, models.Symptom{
			Date:     utcDay(symptom.Date),
			Type:     symptom.Type,
			Severity: symptom.Severity,
		})
	}
	return profile
}
