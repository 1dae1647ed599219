// Package database provides the optional MongoDB connection used to persist
// the moderation journal. Writes made while offline are queued and flushed
// after the connection comes back.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/TambayanDev/TambayanBot/pkg/logger"
)

// Operation is the kind of a queued write.
type Operation string

const (
	OpInsert Operation = "insert"
	OpSet    Operation = "set"
	OpDelete Operation = "delete"
)

// QueuedOperation represents a pending database operation
type QueuedOperation struct {
	CollectionName string
	Operation      Operation
	Query          bson.M
	Data           interface{}
}

// Database manages the MongoDB connection
type Database struct {
	client      *mongo.Client
	db          *mongo.Database
	url         string
	name        string
	isConnected bool
	collections map[string]*mongo.Collection
	mu          sync.RWMutex

	writeQueue []QueuedOperation
	queueMu    sync.Mutex

	reconnectEvery time.Duration
	reconnecting   bool
	stopReconnect  chan struct{}
	stopOnce       sync.Once
}

// NewDatabase creates a Database for url and dbName without connecting.
func NewDatabase(url, dbName string) *Database {
	return &Database{
		url:            url,
		name:           dbName,
		collections:    make(map[string]*mongo.Collection),
		reconnectEvery: 15 * time.Second,
		stopReconnect:  make(chan struct{}),
	}
}

// Connect establishes the connection. On failure the database switches to
// offline mode and keeps retrying in the background.
func (d *Database) Connect(ctx context.Context) error {
	d.mu.Lock()
	if d.isConnected {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	logger.System("Connecting to the database...", "DB")

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(d.url).
		SetServerSelectionTimeout(5*time.Second))
	if err == nil {
		err = client.Ping(ctx, readpref.Primary())
		if err != nil {
			_ = client.Disconnect(context.Background())
		}
	}
	if err != nil {
		logger.Critical(fmt.Sprintf("Database connection failed: %v", err), "DB")
		d.startReconnect()
		return err
	}

	d.mu.Lock()
	d.client = client
	d.db = client.Database(d.name)
	d.collections = make(map[string]*mongo.Collection)
	d.isConnected = true
	d.mu.Unlock()

	logger.Success("Connected to the database.", "DB")
	go d.syncOfflineWrites()
	return nil
}

func (d *Database) startReconnect() {
	d.mu.Lock()
	if d.reconnecting {
		d.mu.Unlock()
		return
	}
	d.reconnecting = true
	d.isConnected = false
	every := d.reconnectEvery
	d.mu.Unlock()

	logger.Warn("Database unavailable, journal writes will be queued.", "DB")

	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		defer func() {
			d.mu.Lock()
			d.reconnecting = false
			d.mu.Unlock()
		}()

		for {
			select {
			case <-ticker.C:
				logger.Info("Retrying database connection...", "DB")
				if err := d.connectOnce(); err == nil {
					return
				}
			case <-d.stopReconnect:
				return
			}
		}
	}()
}

// connectOnce is Connect without scheduling another reconnect loop.
func (d *Database) connectOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(d.url).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	d.mu.Lock()
	d.client = client
	d.db = client.Database(d.name)
	d.collections = make(map[string]*mongo.Collection)
	d.isConnected = true
	d.mu.Unlock()

	logger.Success("Reconnected to the database.", "DB")
	go d.syncOfflineWrites()
	return nil
}

// MarkOffline switches to offline mode after a failed write.
func (d *Database) MarkOffline() {
	d.mu.RLock()
	connected := d.isConnected
	d.mu.RUnlock()
	if connected {
		d.startReconnect()
	}
}

// Disconnect stops reconnect attempts and closes the connection
func (d *Database) Disconnect(ctx context.Context) error {
	d.stopOnce.Do(func() { close(d.stopReconnect) })

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil
	}
	err := d.client.Disconnect(ctx)
	d.isConnected = false
	d.client = nil
	logger.Warn("Database disconnected", "DB")
	return err
}

// IsConnected reports whether writes go straight to MongoDB.
func (d *Database) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.isConnected
}

// Ping measures the database response time
func (d *Database) Ping(ctx context.Context) (time.Duration, error) {
	d.mu.RLock()
	client := d.client
	connected := d.isConnected
	d.mu.RUnlock()

	if !connected || client == nil {
		return 0, fmt.Errorf("not connected to database")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := client.Ping(ctx, readpref.Primary())
	return time.Since(start), err
}

// Status returns a short human readable connection state
func (d *Database) Status(ctx context.Context) string {
	if _, err := d.Ping(ctx); err != nil {
		return "offline"
	}
	return "online"
}

// Collection returns a MongoDB collection, or nil while offline.
func (d *Database) Collection(name string) *mongo.Collection {
	d.mu.RLock()
	if col, exists := d.collections[name]; exists {
		d.mu.RUnlock()
		return col
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	col := d.db.Collection(name)
	d.collections[name] = col
	return col
}

// AddToWriteQueue adds an operation to the offline write queue
func (d *Database) AddToWriteQueue(op QueuedOperation) {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()
	d.writeQueue = append(d.writeQueue, op)
}

// QueueLength returns the number of pending offline writes.
func (d *Database) QueueLength() int {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()
	return len(d.writeQueue)
}

// Apply runs op against MongoDB, or queues it while offline.
func (d *Database) Apply(ctx context.Context, op QueuedOperation) error {
	col := d.Collection(op.CollectionName)
	if !d.IsConnected() || col == nil {
		d.AddToWriteQueue(op)
		return nil
	}

	if err := execute(ctx, col, op); err != nil {
		d.AddToWriteQueue(op)
		d.MarkOffline()
		return err
	}
	return nil
}

func execute(ctx context.Context, col *mongo.Collection, op QueuedOperation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var err error
	switch op.Operation {
	case OpInsert:
		_, err = col.InsertOne(ctx, op.Data)
		if mongo.IsDuplicateKeyError(err) {
			// Already written by an earlier flush.
			err = nil
		}
	case OpSet:
		_, err = col.UpdateOne(ctx, op.Query, bson.M{"$set": op.Data}, options.Update().SetUpsert(true))
	case OpDelete:
		_, err = col.DeleteOne(ctx, op.Query)
	default:
		err = fmt.Errorf("unknown operation %q", op.Operation)
	}
	return err
}

// syncOfflineWrites syncs queued operations with the database
func (d *Database) syncOfflineWrites() {
	d.queueMu.Lock()
	if len(d.writeQueue) == 0 {
		d.queueMu.Unlock()
		return
	}
	operations := d.writeQueue
	d.writeQueue = nil
	d.queueMu.Unlock()

	logger.System(fmt.Sprintf("Syncing %d pending operations...", len(operations)), "DB-Sync")

	var failed []QueuedOperation
	for _, op := range operations {
		col := d.Collection(op.CollectionName)
		if col == nil {
			failed = append(failed, op)
			continue
		}
		if err := execute(context.Background(), col, op); err != nil {
			logger.Error(fmt.Sprintf("Sync failed for '%s': %v", op.CollectionName, err), "DB-Sync")
			failed = append(failed, op)
		}
	}

	if len(failed) > 0 {
		d.queueMu.Lock()
		d.writeQueue = append(failed, d.writeQueue...)
		d.queueMu.Unlock()
		logger.Warn(fmt.Sprintf("%d operations could not be synced and will be retried.", len(failed)), "DB-Sync")
		return
	}
	logger.Success("Offline writes synced.", "DB-Sync")
}
