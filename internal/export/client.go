package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dyluth/fathom/pkg/catalog"
)

// Source is the part of the registry a snapshot is built from.
type Source interface {
	GetThemes() []string
	GetTheme(name string) (catalog.Theme, bool)
	Pieces() []catalog.Piece
}

// Client provides instance-scoped Redis operations for catalog snapshots.
// All keys and channels are namespaced with the instance name.
// The client is safe for concurrent use.
type Client struct {
	rdb          *redis.Client
	instanceName string
	logger       *zap.Logger
	now          func() time.Time
}

// NewClient creates a new export client for the specified instance.
// Returns an error if instanceName is not a valid instance name.
func NewClient(redisOpts *redis.Options, instanceName string, logger *zap.Logger) (*Client, error) {
	if err := ValidateInstanceName(instanceName); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// NewClientFromURL parses a redis:// or rediss:// URL and creates a client.
func NewClientFromURL(redisURL, instanceName string, logger *zap.Logger) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return NewClient(opts, instanceName, logger)
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Publish writes a snapshot of src to Redis, replacing the previous snapshot
// of this instance, and announces it on the snapshot events channel.
//
// Piece hashes are written from the ID index, so a piece ID that appears in
// several themes is stored once with its last registered definition.
func (c *Client) Publish(ctx context.Context, src Source) (*Snapshot, error) {
	themeNames := src.GetThemes()
	pieces := src.Pieces()

	snapshot := &Snapshot{
		ID:          uuid.NewString(),
		Instance:    c.instanceName,
		Themes:      len(themeNames),
		Pieces:      len(pieces),
		CreatedAtMs: c.now().UnixMilli(),
	}

	pieceHashes := make(map[string]map[string]interface{}, len(pieces))
	for _, p := range pieces {
		hash, err := PieceToHash(p)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize piece %s: %w", p.ID, err)
		}
		pieceHashes[p.ID] = hash
	}

	themeHashes := make([]map[string]interface{}, 0, len(themeNames))
	for _, name := range themeNames {
		theme, _ := src.GetTheme(name)
		record := ThemeRecord{Name: theme.Name, Description: theme.Description}
		for _, p := range theme.Pieces {
			record.PieceIDs = append(record.PieceIDs, p.ID)
		}
		hash, err := ThemeToHash(record)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize theme %s: %w", name, err)
		}
		themeHashes = append(themeHashes, hash)
	}

	stale, err := c.existingKeys(ctx)
	if err != nil {
		return nil, err
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(stale) > 0 {
			pipe.Del(ctx, stale...)
		}
		for _, p := range pieces {
			pipe.HSet(ctx, PieceKey(c.instanceName, p.ID), pieceHashes[p.ID])
			pipe.SAdd(ctx, PieceIndexKey(c.instanceName), p.ID)
		}
		for i, name := range themeNames {
			pipe.HSet(ctx, ThemeKey(c.instanceName, name), themeHashes[i])
			pipe.RPush(ctx, ThemesKey(c.instanceName), name)
		}
		pipe.HSet(ctx, SnapshotKey(c.instanceName), SnapshotToHash(snapshot))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write snapshot to Redis: %w", err)
	}

	event, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot event: %w", err)
	}
	if err := c.rdb.Publish(ctx, SnapshotEventsChannel(c.instanceName), event).Err(); err != nil {
		return nil, fmt.Errorf("failed to publish snapshot event: %w", err)
	}

	c.logger.Info("Published catalog snapshot",
		zap.String("instance", c.instanceName),
		zap.String("snapshot_id", snapshot.ID),
		zap.Int("themes", snapshot.Themes),
		zap.Int("pieces", snapshot.Pieces),
		zap.Int("replaced_keys", len(stale)))

	return snapshot, nil
}

// existingKeys lists every key written by the previous snapshot.
func (c *Client) existingKeys(ctx context.Context) ([]string, error) {
	ids, err := c.rdb.SMembers(ctx, PieceIndexKey(c.instanceName)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read piece index: %w", err)
	}
	themes, err := c.rdb.LRange(ctx, ThemesKey(c.instanceName), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read theme list: %w", err)
	}

	keys := make([]string, 0, len(ids)+len(themes)+3)
	for _, id := range ids {
		keys = append(keys, PieceKey(c.instanceName, id))
	}
	for _, name := range themes {
		keys = append(keys, ThemeKey(c.instanceName, name))
	}
	keys = append(keys,
		PieceIndexKey(c.instanceName),
		ThemesKey(c.instanceName),
		SnapshotKey(c.instanceName))
	return keys, nil
}

// GetPiece retrieves an exported piece by ID.
// Returns redis.Nil if the piece doesn't exist. Use IsNotFound() to check.
func (c *Client) GetPiece(ctx context.Context, pieceID string) (catalog.Piece, error) {
	hashData, err := c.rdb.HGetAll(ctx, PieceKey(c.instanceName, pieceID)).Result()
	if err != nil {
		return catalog.Piece{}, fmt.Errorf("failed to read piece from Redis: %w", err)
	}
	if len(hashData) == 0 {
		return catalog.Piece{}, redis.Nil
	}

	p, err := HashToPiece(hashData)
	if err != nil {
		return catalog.Piece{}, fmt.Errorf("failed to deserialize piece: %w", err)
	}
	return p, nil
}

// GetThemes returns the exported theme names in registration order.
func (c *Client) GetThemes(ctx context.Context) ([]string, error) {
	names, err := c.rdb.LRange(ctx, ThemesKey(c.instanceName), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read theme list: %w", err)
	}
	return names, nil
}

// GetTheme retrieves an exported theme.
// Returns redis.Nil if the theme doesn't exist.
func (c *Client) GetTheme(ctx context.Context, name string) (*ThemeRecord, error) {
	hashData, err := c.rdb.HGetAll(ctx, ThemeKey(c.instanceName, name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read theme from Redis: %w", err)
	}
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	record, err := HashToTheme(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize theme: %w", err)
	}
	return record, nil
}

// GetSnapshot retrieves the current snapshot metadata.
// Returns redis.Nil if nothing has been published for this instance.
func (c *Client) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	hashData, err := c.rdb.HGetAll(ctx, SnapshotKey(c.instanceName)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot from Redis: %w", err)
	}
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	snapshot, err := HashToSnapshot(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot: %w", err)
	}
	return snapshot, nil
}

// Subscription represents an active Pub/Sub subscription to snapshot events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *Snapshot
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of snapshot events.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *Snapshot {
	return s.events
}

// Errors returns the channel of subscription errors.
// Malformed messages are reported here and skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeSnapshotEvents subscribes to snapshot announcements for this instance.
// The subscription is confirmed by Redis before this returns, so a Publish
// issued afterwards is always delivered.
func (c *Client) SubscribeSnapshotEvents(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, SnapshotEventsChannel(c.instanceName))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to snapshot events: %w", err)
	}

	eventsChan := make(chan *Snapshot, 10)
	errorsChan := make(chan error, 10)
	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var snapshot Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snapshot); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal snapshot event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &snapshot:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
