package gemini

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Corner-venturo/Corner-sub010/internal/config"
	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Result mirrors itinerary.Result for the model path. Failures are reported in Error, never as a
// Go error.
type Result struct {
	Success        bool            `json:"success"`
	DailyItinerary []itinerary.Day `json:"dailyItinerary"`
	Error          string          `json:"error,omitempty"`
}

func failure(msg string) Result {
	return Result{Success: false, DailyItinerary: []itinerary.Day{}, Error: msg}
}

const (
	msgNoKeys     = "未設定 Gemini API Key"
	msgAllBlocked = "所有 Gemini API Key 暫時無法使用，請稍後再試"
	msgBadFormat  = "AI 回應格式錯誤，無法解析行程"
)

type Generator struct {
	keys      *KeyRing
	completer Completer
	limiter   *rate.Limiter
	timeout   time.Duration
}

// NewGenerator builds a generator. rpm <= 0 disables throttling and timeout <= 0 disables the
// per-attempt deadline.
func NewGenerator(keys *KeyRing, completer Completer, rpm int, timeout time.Duration) *Generator {
	limit := rate.Inf
	if rpm > 0 {
		limit = rate.Every(time.Minute / time.Duration(rpm))
	}
	return &Generator{
		keys:      keys,
		completer: completer,
		limiter:   rate.NewLimiter(limit, 1),
		timeout:   timeout,
	}
}

// New wires a generator from application config. Key blocks live in Redis when
// GEMINI_KEY_BLOCK_STORE is "redis" and a client is available.
func New(cfg config.Config, rdb *redis.Client) *Generator {
	var store BlockStore
	if cfg.KeyBlockStore == "redis" && rdb != nil {
		store = NewRedisBlockStore(rdb)
	} else {
		store = NewMemoryBlockStore()
	}
	completer := GenAICompleter{Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL}
	return NewGenerator(NewKeyRing(cfg.GeminiAPIKeys, store), completer, cfg.GeminiRPM, cfg.GeminiTimeout)
}

func (g *Generator) Keys() *KeyRing { return g.keys }

// Generate asks the model for an itinerary, rotating to the next key on quota errors and network
// failures. Any other upstream error ends the run.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	if g.keys == nil || g.keys.Len() == 0 {
		return failure(msgNoKeys)
	}

	prompt := BuildPrompt(req)
	tried := make(map[string]bool, g.keys.Len())
	var lastErr error

	for {
		key := g.keys.Available(ctx, tried)
		if key == "" {
			break
		}
		tried[key] = true

		if err := g.limiter.Wait(ctx); err != nil {
			return failure(err.Error())
		}

		text, err := g.attempt(ctx, key, prompt)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				if !apiErr.Quota() {
					log.Printf("gemini: key %s failed: %v", mask(key), err)
					return failure(apiErr.Message)
				}
				g.keys.Block(ctx, key, apiErr.RetryAfter())
			} else {
				log.Printf("gemini: key %s request error: %v", mask(key), err)
			}
			if ctx.Err() != nil {
				return failure(ctx.Err().Error())
			}
			lastErr = err
			continue
		}

		days, err := ParseItinerary(text)
		if err != nil {
			log.Printf("gemini: parse response: %v", err)
			return failure(msgBadFormat)
		}
		return Result{Success: true, DailyItinerary: days}
	}

	if lastErr != nil {
		return failure(errorMessage(lastErr))
	}
	return failure(msgAllBlocked)
}

func (g *Generator) attempt(ctx context.Context, key, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.completer.Complete(ctx, key, prompt)
}
