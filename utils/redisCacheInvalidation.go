package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// rdb is set once at startup by InitCache; list-cache helpers are no-ops
// until then.
var rdb *redis.Client

// InitCache hands the shared Redis client to the cache helpers.
func InitCache(client *redis.Client) {
	rdb = client
}

// GenerateHash generates two hashes: one for searching (without timestamp)
// and one for storage (with timestamp).
func GenerateHash(resourceType string, filters map[string]string, page, pageSize int) (string, string) {
	timestamp := Today().Unix()

	query := fmt.Sprintf("resource=%s&page=%d&page_size=%d", resourceType, page, pageSize)
	for key, value := range filters {
		query += fmt.Sprintf("&%s=%s", key, value)
	}

	// Search hash (without timestamp)
	searchHash := sha256.Sum256([]byte(query))
	searchHashStr := hex.EncodeToString(searchHash[:])

	// Storage hash (with timestamp)
	storageHash := sha256.Sum256([]byte(fmt.Sprintf("%s&timestamp=%d", query, timestamp)))
	storageHashStr := hex.EncodeToString(storageHash[:])

	searchKey := fmt.Sprintf("%s:%s", resourceType, searchHashStr)
	storageKey := fmt.Sprintf("%s:%s", resourceType, storageHashStr)

	return searchKey, storageKey
}

// FindMatchingFile looks up a previously generated export for the same
// query shape.
func FindMatchingFile(client *redis.Client, searchHash string) (string, error) {
	// Use SCAN instead of KEYS for better performance in production
	iter := client.Scan(context.Background(), 0, fmt.Sprintf("*%s*", searchHash), 1).Iterator()
	for iter.Next(context.Background()) {
		filePath, err := client.Get(context.Background(), iter.Val()).Result()
		if err == nil {
			return filePath, nil
		}
	}
	if err := iter.Err(); err != nil {
		return "", err
	}

	return "", redis.Nil
}

// InvalidateCache will invalidate all cached keys for the given resource type
func InvalidateCache(resourceType string) error {
	if rdb == nil {
		return nil
	}

	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(context.Background(), 0, pattern, 0).Iterator()

	for iter.Next(context.Background()) {
		key := iter.Val()
		if err := rdb.Del(context.Background(), key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}

// InvalidateCacheAsync invalidates the cache for a given resource type asynchronously
func InvalidateCacheAsync(resourceType string) {
	go func() {
		if err := InvalidateCache(resourceType); err != nil {
			// Log the error, but don't block the process
			log.Printf("Cache invalidation failed for resource type '%s': %v", resourceType, err)
		}
	}()
}
