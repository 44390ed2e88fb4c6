package config

import (
	"aureliaskin_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "AureliaSkin_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8084"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "aureliaskin_db"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Cache: &structs.CacheConfig{
				Address:         getEnvAsString("CACHE_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("CACHE_USERNAME", ""),
				Password:        getEnvAsString("CACHE_PASSWORD", ""),
				DB:              getEnvAsInt("CACHE_DB", 0),
				PoolSize:        getEnvAsInt("CACHE_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("CACHE_MIN_IDLE_CONNS", 2),
				MaxIdleConns:    getEnvAsInt("CACHE_MAX_IDLE_CONNS", 5),
				PoolTimeout:     getEnvAsTimeDuration("CACHE_POOL_TIMEOUT", 30*time.Second),
				IdleTimeout:     getEnvAsTimeDuration("CACHE_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:     getEnvAsTimeDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsTimeDuration("CACHE_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("CACHE_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("CACHE_MIN_RETRY_BACKOFF", 100*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("CACHE_MAX_RETRY_BACKOFF", 2*time.Second),
				ReceiptTTL:      getEnvAsTimeDuration("CACHE_RECEIPT_TTL", 5*time.Minute),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:        getEnvAsBool("RATE_LIMIT_ENABLED", true),
				GeneralLimit:   getEnvAsInt("RATE_LIMIT_GENERAL_LIMIT", 120),
				GeneralWindow:  getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", 1*time.Minute),
				CheckoutLimit:  getEnvAsInt("RATE_LIMIT_CHECKOUT_LIMIT", 10),
				CheckoutWindow: getEnvAsTimeDuration("RATE_LIMIT_CHECKOUT_WINDOW", 1*time.Minute),
			},
			Email: &structs.EmailConfig{
				ApiKey:  getEnvAsString("EMAIL_API_KEY", ""),
				From:    getEnvAsString("EMAIL_FROM", "orders@aureliaskin.example"),
				Enabled: getEnvAsBool("EMAIL_ENABLED", false),
			},
			Orders: &structs.OrdersConfig{
				NumberPrefix:      getEnvAsString("ORDER_NUMBER_PREFIX", "AUR"),
				EstimatedDelivery: getEnvAsString("ORDER_ESTIMATED_DELIVERY", "3-5 business days"),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
