package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port           string
	MongoURI       string
	MongoDatabase  string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RabbitURI      string
	RabbitExchange string
	ConsulAddress  string
	ServiceName    string
	ServiceID      string
	ServiceAddress string
	JWTSecret      string
	JWTExpiryHours int64
	FEAddress      string
}

// New snapshots the environment. Call it after godotenv has loaded any .env
// file, otherwise file-provided values are not visible yet.
func New() *Config {
	expiry_str := getEnv("TOKEN_EXPIRY_TIME", "24")
	expiry, _ := strconv.Atoi(expiry_str)
	redis_db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		Port:           getEnv("PORT", "7700"),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDatabase:  getEnv("PORTAL_MONGO_DB", "escape_portal"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PWD", ""),
		RedisDB:        redis_db,
		RabbitURI:      getEnv("RABBITMQ_URI", ""),
		RabbitExchange: getEnv("RABBITMQ_EXCHANGE", "portal.events"),
		ConsulAddress:  getEnv("CONSUL_ADDR", ""),
		ServiceName:    getEnv("PORTAL_SERVICE_NAME", "escape-portal"),
		ServiceID:      getEnv("PORTAL_SERVICE_NAME", "escape-portal") + "-" + getEnv("PORTAL_HOSTNAME", "1"),
		ServiceAddress: getEnv("PORTAL_SERVICE_ADDRESS", "escape-portal"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiryHours: int64(expiry),
		FEAddress:      getEnv("FE_ADDR", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("ENV %s not set, using fallback", key)
	return fallback
}
