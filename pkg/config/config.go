package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	JWTSecret               string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	S3Endpoint              string
	S3AccessKeyID           string
	S3SecretAccessKey       string
	S3Region                string
	S3Bucket                string
	S3PublicURL             string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		S3Endpoint:              getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:           getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:       getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:                getEnv("S3_REGION", "auto"),
		S3Bucket:                getEnv("S3_BUCKET", "campusfind"),
		S3PublicURL:             getEnv("S3_PUBLIC_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
