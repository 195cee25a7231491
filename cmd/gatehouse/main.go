package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/seastone/gatehouse/adapters/events"
	"github.com/seastone/gatehouse/adapters/identity"
	"github.com/seastone/gatehouse/adapters/store"
	"github.com/seastone/gatehouse/adapters/tokenizer"
	"github.com/seastone/gatehouse/internal/keys"
	"github.com/seastone/gatehouse/service"
	httptransport "github.com/seastone/gatehouse/transport/http"
)

func main() {
	// Generate the process-wide signing key pair. Failing here is fatal:
	// the process must not start unable to sign or verify.
	pair, err := keys.Generate()
	if err != nil {
		log.Fatalf("Failed to generate signing key pair: %v", err)
	}

	redisURL := envOr("REDIS_URL", "redis://localhost:6379/0")

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	logger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	refreshTTL := durationEnvOr("REFRESH_TOKEN_TTL", store.DefaultRefreshTTL)
	accessTTL := durationEnvOr("ACCESS_TOKEN_TTL", service.DefaultAccessTTL)

	jwtTokenizer := tokenizer.NewJWTTokenizer(pair)
	refreshStore := store.NewRedisStore(redisClient, refreshTTL)
	verifier := identity.NewStaticVerifier(
		envOr("AUTH_USERNAME", "admin"),
		envOr("AUTH_PASSWORD", "password"),
	)
	eventPub := events.NewWatermillPublisher(publisher)

	authService := service.NewAuthService(jwtTokenizer, refreshStore, verifier, eventPub, service.Config{
		AccessTTL:           accessTTL,
		RotateRefreshTokens: os.Getenv("ROTATE_REFRESH_TOKENS") == "true",
	})

	router := httptransport.SetupRouter(authService, pair.JWKS())

	addr := envOr("LISTEN_ADDR", ":8080")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnvOr(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return d
}
