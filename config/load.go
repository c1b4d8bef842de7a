package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads the process environment. Values from .env and .env.local are
// applied first without overriding variables that are already set.
func Load() App {
	for _, f := range []string{".env", ".env.local"} {
		if err := godotenv.Load(f); err == nil {
			slog.Info("loaded env file", "file", f)
		}
	}

	env := getenv("APP_ENV", "dev")
	cfg := App{
		Port:              getenv("APP_PORT", "8080"),
		DatabaseURL:       must("DATABASE_URL"),
		DBMaxConns:        int32(getint("DB_MAX_CONNS", 10)),
		AutoMigrate:       getbool("DB_AUTO_MIGRATE", env == "dev"),
		JWTSecret:         getenv("JWT_SECRET", "local_dev_secret"),
		JWTTTLHours:       getint("JWT_TTL_HOURS", 24),
		Env:               env,
		AllowedOrigins:    getlist("ALLOWED_ORIGINS"),
		AuthRatePerSec:    getfloat("AUTH_RATE_PER_SEC", 1),
		AuthRateBurst:     getint("AUTH_RATE_BURST", 5),
		RequestTimeoutSec: getint("REQUEST_TIMEOUT_SEC", 30),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		MailFrom:          getenv("MAIL_FROM", "no-reply@litera.app"),
		MailFromName:      getenv("MAIL_FROM_NAME", "Litera"),
		ResetURL:          getenv("RESET_URL", "http://localhost:5173/reset-password"),
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if len(cfg.AllowedOrigins) == 0 && cfg.IsDev() {
		cfg.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if !cfg.IsDev() && cfg.JWTSecret == "local_dev_secret" {
		slog.Warn("JWT_SECRET not set outside dev; using the development secret")
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid int env, using default", "key", k, "value", v, "default", def)
		return def
	}
	return n
}

func getfloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid float env, using default", "key", k, "value", v, "default", def)
		return def
	}
	return f
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getlist(k string) []string {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
