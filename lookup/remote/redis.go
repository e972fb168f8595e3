// Package remote stores embedding tables in Redis so large vocabularies can be
// shared between scoring runs without re-reading a word2vec file.
package remote

import (
	"context"
	"crypto/tls"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/botirk38/embedscore/lookup/inmemory"
	"github.com/botirk38/embedscore/types"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix used when the config leaves it empty.
const DefaultPrefix = "embedscore:"

// DefaultBatchSize is the number of keys sent per pipeline or MGET.
const DefaultBatchSize = 500

const dimKey = "__dim__"

// Store reads and writes vectors kept under <prefix><token> as raw little-endian float32.
type Store struct {
	client    *redis.Client
	prefix    string
	batchSize int
	logger    *slog.Logger
}

// parseRedisURL parses a Redis URL and returns redis.Options
func parseRedisURL(connectionString string) (*redis.Options, error) {
	if strings.HasPrefix(connectionString, "redis://") || strings.HasPrefix(connectionString, "rediss://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}

		opts := &redis.Options{
			Addr: parsedURL.Host,
		}

		if parsedURL.Scheme == "rediss" {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		if parsedURL.User != nil {
			opts.Username = parsedURL.User.Username()
			if password, ok := parsedURL.User.Password(); ok {
				opts.Password = password
			}
		}

		if parsedURL.Path != "" && parsedURL.Path != "/" {
			dbStr := strings.TrimPrefix(parsedURL.Path, "/")
			db, err := strconv.Atoi(dbStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Redis database %q: %w", dbStr, err)
			}
			opts.DB = db
		}

		return opts, nil
	}

	// host:port
	return &redis.Options{
		Addr: connectionString,
	}, nil
}

// NewStore connects to Redis and verifies the connection with PING.
func NewStore(ctx context.Context, config types.LookupConfig, logger *slog.Logger) (*Store, error) {
	opts, err := parseRedisURL(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	// Explicit config values take precedence over the URL
	if config.Username != "" {
		opts.Username = config.Username
	}
	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.Database != 0 {
		opts.DB = config.Database
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		client:    client,
		prefix:    prefix,
		batchSize: DefaultBatchSize,
		logger:    logger,
	}, nil
}

func (s *Store) key(token string) string {
	return s.prefix + token
}

// encodeVector packs a vector as little-endian float32 bytes.
func encodeVector(vec types.Vector) []byte {
	buf := make([]byte, len(vec)*4)
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(raw []byte, dim int) (types.Vector, error) {
	if len(raw) != dim*4 {
		return nil, fmt.Errorf("%w: stored vector has %d bytes, want %d", types.ErrDimensionMismatch, len(raw), dim*4)
	}
	vec := make(types.Vector, dim)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return vec, nil
}

// Import writes every vector of table plus its dimensionality, in pipelined batches.
// It returns the number of vectors written.
func (s *Store) Import(ctx context.Context, table *inmemory.Table) (int, error) {
	if err := s.client.Set(ctx, s.key(dimKey), table.Dim(), 0).Err(); err != nil {
		return 0, fmt.Errorf("failed to store dimension in Redis: %w", err)
	}

	tokens := table.Tokens()
	written := 0
	for start := 0; start < len(tokens); start += s.batchSize {
		end := min(start+s.batchSize, len(tokens))

		pipe := s.client.Pipeline()
		for _, tok := range tokens[start:end] {
			pipe.Set(ctx, s.key(tok), encodeVector(table.VectorOf(tok)), 0)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return written, fmt.Errorf("failed to import vectors into Redis: %w", err)
		}
		written = end
		s.logger.Debug("imported batch", "written", written, "total", len(tokens))
	}

	s.logger.Info("imported embeddings", "prefix", s.prefix, "tokens", written, "dim", table.Dim())
	return written, nil
}

// Dim returns the stored dimensionality.
func (s *Store) Dim(ctx context.Context) (int, error) {
	dim, err := s.client.Get(ctx, s.key(dimKey)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w: no embeddings stored under prefix %q", types.ErrLookupLoad, s.prefix)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read dimension: %v", types.ErrLookupLoad, err)
	}
	if dim <= 0 {
		return 0, fmt.Errorf("%w: invalid stored dimension %d", types.ErrLookupLoad, dim)
	}
	return dim, nil
}

// Load fetches the vectors of vocab with MGET and returns them as an in-memory table.
// Tokens with no stored vector are left out of the table.
func (s *Store) Load(ctx context.Context, vocab []string) (*inmemory.Table, error) {
	dim, err := s.Dim(ctx)
	if err != nil {
		return nil, err
	}

	table := inmemory.NewTable(dim)
	for start := 0; start < len(vocab); start += s.batchSize {
		end := min(start+s.batchSize, len(vocab))
		batch := vocab[start:end]

		keys := make([]string, len(batch))
		for i, tok := range batch {
			keys[i] = s.key(tok)
		}

		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch vectors: %v", types.ErrLookupLoad, err)
		}

		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			vec, err := decodeVector([]byte(raw), dim)
			if err != nil {
				return nil, fmt.Errorf("%w: token %q: %w", types.ErrLookupLoad, batch[i], err)
			}
			if _, err := table.Add(batch[i], vec); err != nil {
				return nil, fmt.Errorf("%w: %w", types.ErrLookupLoad, err)
			}
		}
	}

	s.logger.Info("loaded embeddings from Redis", "requested", len(vocab), "found", table.Len(), "dim", dim)
	return table, nil
}

// Flush removes every key with the configured prefix.
func (s *Store) Flush(ctx context.Context) error {
	pattern := s.prefix + "*"
	var keys []string
	var cursor uint64

	for {
		result, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys from Redis: %w", err)
		}

		keys = append(keys, result...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	for start := 0; start < len(keys); start += s.batchSize {
		end := min(start+s.batchSize, len(keys))
		if err := s.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("failed to flush Redis: %w", err)
		}
	}
	return nil
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
