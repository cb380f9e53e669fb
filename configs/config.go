package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	PostgresURI     string
	ListenAddr      string
	FrontendURL     string
	SecretKey       string
	CookieName      string
	RedditUserAgent string
	R2              R2
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:     getEnv("POSTGRES_URI", ""),
		ListenAddr:      getEnv("LISTEN_ADDR", ":3000"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:       getEnv("SECRET_KEY", ""),
		CookieName:      getEnv("COOKIE_NAME", "autoposter_session"),
		RedditUserAgent: getEnv("REDDIT_USER_AGENT", "web:autoposter:v1.0"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
