package config

import "os"

type Config struct {
	Port              string
	Env               string
	PostgresConnStr   string
	MongoURI          string
	JWTSecret         string
	S3Bucket          string
	S3Region          string
	LocationIndexName string
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		PostgresConnStr:   getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:          getEnv("MONGO_URI", ""),
		JWTSecret:         getEnv("JWT_SECRET", "supersecretjwtkey"),
		S3Bucket:          getEnv("S3_BUCKET", "photoshare-images"),
		S3Region:          getEnv("S3_REGION", "us-west-2"),
		LocationIndexName: getEnv("LOCATION_INDEX_NAME", "PhotoShareApp"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
