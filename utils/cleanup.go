package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

var exportDirs = []string{"./public/files", "./public/reports"}

// CleanupExpiredFiles removes the file when it is older than the TTL.
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		log.Printf("Expired export %s deleted", filePath)
	}
	return nil
}

// CleanupAllExpired sweeps the export directories and the export cache keys.
func CleanupAllExpired(fileTTL time.Duration, redisClient *redis.Client) error {
	for _, dir := range exportDirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("error reading files directory: %v", err)
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			filePath := fmt.Sprintf("%s/%s", dir, file.Name())
			if err := CleanupExpiredFiles(filePath, fileTTL); err != nil {
				log.Printf("Error cleaning up file: %v", err)
			}
		}
	}

	// Stale export-cache keys point at files the sweep just removed.
	if err := InvalidateCache("reclamation_exports"); err != nil {
		return fmt.Errorf("error cleaning up cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup tasks daily at 1 AM with retries and logs
// error messages on failure.
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		var retries int
		var cleanupSuccess bool

		for retries < maxRetries {
			log.Printf("attempt %d to clean up...", retries+1)
			err := CleanupAllExpired(24*time.Hour, redisClient)
			if err == nil {
				log.Println("cleanup successful!")
				cleanupSuccess = true
				break
			}
			log.Printf("cleanup failed: %v", err)
			retries++
			time.Sleep(retryDelay)
		}

		if !cleanupSuccess {
			log.Printf("cleanup task failed after %d retries. please check the system.", retries)

			SendEmail(
				os.Getenv("ADMIN_EMAIL"),
				"The scheduled cleanup task failed after multiple attempts.",
				"Cleanup Task Failed",
				"",
			)
		}
	})

	c.Start()

	// Keep the goroutine alive so the cron jobs execute
	select {}
}
