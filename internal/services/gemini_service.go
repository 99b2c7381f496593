package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"steg-backend/config"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type GeminiService struct {
	client      *genai.Client
	cache       map[string]*CachedResponse
	cacheMutex  sync.RWMutex
	rateLimiter *rate.Limiter
}

type CachedResponse struct {
	Data      string
	ExpiresAt time.Time
}

type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

func NewGeminiService(apiKey string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	service := &GeminiService{
		client:      client,
		cache:       make(map[string]*CachedResponse),
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute), 15), // 15 requests per minute
	}

	service.StartCacheCleanup()

	return service, nil
}

// SpamSuggestion is the model's advisory verdict on a plainte description.
// It never blocks the workflow; a dispatcher reviews it before any
// reportage is filed.
type SpamSuggestion struct {
	LooksLikeSpam bool   `json:"looks_like_spam"`
	Motif         string `json:"motif"`
}

const spamPromptTemplate = `Tu es un assistant du service réclamations de la STEG.
Analyse la plainte suivante et réponds sur la première ligne uniquement par
SPAM ou LEGITIME, suivi sur la deuxième ligne d'une justification d'une
phrase en français.

Plainte : %q`

// SuggestSpamVerdict asks the model whether a plainte description reads
// like spam or abuse.
func (g *GeminiService) SuggestSpamVerdict(ctx context.Context, description string) (*SpamSuggestion, error) {
	prompt := fmt.Sprintf(spamPromptTemplate, description)

	raw, err := g.GenerateContentWithRetry(ctx, prompt, nil)
	if err != nil {
		return nil, err
	}

	lines := strings.SplitN(strings.TrimSpace(raw), "\n", 2)
	verdict := strings.ToUpper(strings.TrimSpace(lines[0]))
	motif := ""
	if len(lines) > 1 {
		motif = strings.TrimSpace(lines[1])
	}

	return &SpamSuggestion{
		LooksLikeSpam: strings.HasPrefix(verdict, "SPAM"),
		Motif:         motif,
	}, nil
}

func (g *GeminiService) GenerateContentWithRetry(ctx context.Context, prompt string, retryCfg *RetryConfig) (string, error) {
	if retryCfg == nil {
		retryCfg = &RetryConfig{
			MaxRetries:    3,
			InitialDelay:  time.Second,
			MaxDelay:      time.Minute,
			BackoffFactor: 2.0,
		}
	}

	if cached := g.getFromCache(prompt); cached != "" {
		return cached, nil
	}

	if err := g.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	var lastErr error
	delay := retryCfg.InitialDelay

	for attempt := 0; attempt <= retryCfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := g.generateContent(ctx, prompt)
		if err == nil {
			g.cacheResponse(prompt, result)
			return result, nil
		}

		lastErr = err

		if !g.isRetryableError(err) {
			break
		}

		delay = time.Duration(float64(delay) * retryCfg.BackoffFactor)
		if delay > retryCfg.MaxDelay {
			delay = retryCfg.MaxDelay
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", retryCfg.MaxRetries+1, lastErr)
}

func (g *GeminiService) generateContent(ctx context.Context, prompt string) (string, error) {
	parts := []*genai.Part{
		{Text: prompt},
	}
	contents := []*genai.Content{
		{Parts: parts},
	}

	startTime := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, "gemini-2.5-flash", contents, nil)
	if err != nil {
		config.Logger.Error("Gemini API request failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return "", err
	}

	responseText := resp.Text()

	config.Logger.Info("Received response from Gemini 2.5 Flash",
		zap.Duration("duration", time.Since(startTime)),
	)

	return responseText, nil
}

func (g *GeminiService) isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryableErrors := []string{
		"rate limit",
		"quota exceeded",
		"temporary",
		"timeout",
		"connection",
		"503",
		"429",
		"internal error",
		"service unavailable",
	}

	for _, retryable := range retryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

func (g *GeminiService) getFromCache(prompt string) string {
	key := g.generateCacheKey(prompt)

	g.cacheMutex.RLock()
	defer g.cacheMutex.RUnlock()

	if cached, exists := g.cache[key]; exists {
		if time.Now().Before(cached.ExpiresAt) {
			return cached.Data
		}
	}
	return ""
}

func (g *GeminiService) cacheResponse(prompt, response string) {
	key := g.generateCacheKey(prompt)

	g.cacheMutex.Lock()
	defer g.cacheMutex.Unlock()

	g.cache[key] = &CachedResponse{
		Data:      response,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func (g *GeminiService) generateCacheKey(prompt string) string {
	hash := md5.Sum([]byte(prompt))
	return hex.EncodeToString(hash[:])
}

func (g *GeminiService) StartCacheCleanup() {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			g.cleanupExpiredCache()
		}
	}()
}

func (g *GeminiService) cleanupExpiredCache() {
	g.cacheMutex.Lock()
	defer g.cacheMutex.Unlock()

	now := time.Now()
	for key, cached := range g.cache {
		if now.After(cached.ExpiresAt) {
			delete(g.cache, key)
		}
	}
}
