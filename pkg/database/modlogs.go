package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// ModLogsCollection holds the moderation journal.
const ModLogsCollection = "modlogs"

// ModLogs stores moderation events in MongoDB.
type ModLogs struct {
	db *Database
}

func NewModLogs(db *Database) *ModLogs {
	return &ModLogs{db: db}
}

func (m *ModLogs) Name() string { return "mongo" }

// Write inserts the event, queueing it while the database is offline.
func (m *ModLogs) Write(ctx context.Context, ev models.ModerationEvent) error {
	return m.db.Apply(ctx, QueuedOperation{
		CollectionName: ModLogsCollection,
		Operation:      OpInsert,
		Data:           ev,
	})
}

// Recent returns the newest events first, optionally for one target user.
func (m *ModLogs) Recent(ctx context.Context, targetID string, limit int64) ([]models.ModerationEvent, error) {
	col := m.db.Collection(ModLogsCollection)
	if col == nil || !m.db.IsConnected() {
		return nil, fmt.Errorf("database offline")
	}

	filter := bson.M{}
	if targetID != "" {
		filter["targetId"] = targetID
	}
	cur, err := col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}

	var events []models.ModerationEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
