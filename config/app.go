package config

type App struct {
	Port              string   `env:"APP_PORT" default:"8080"`
	DatabaseURL       string   `env:"DATABASE_URL,required"`
	DBMaxConns        int32    `env:"DB_MAX_CONNS" default:"10"`
	AutoMigrate       bool     `env:"DB_AUTO_MIGRATE"`
	JWTSecret         string   `env:"JWT_SECRET,required"`
	JWTTTLHours       int      `env:"JWT_TTL_HOURS" default:"24"`
	Env               string   `env:"APP_ENV" default:"dev"`
	AllowedOrigins    []string `env:"ALLOWED_ORIGINS"`
	AuthRatePerSec    float64  `env:"AUTH_RATE_PER_SEC" default:"1"`
	AuthRateBurst     int      `env:"AUTH_RATE_BURST" default:"5"`
	RequestTimeoutSec int      `env:"REQUEST_TIMEOUT_SEC" default:"30"`
	SendGridAPIKey    string   `env:"SENDGRID_API_KEY"`
	MailFrom          string   `env:"MAIL_FROM" default:"no-reply@litera.app"`
	MailFromName      string   `env:"MAIL_FROM_NAME" default:"Litera"`
	ResetURL          string   `env:"RESET_URL" default:"http://localhost:5173/reset-password"`
}

func (a App) IsDev() bool { return a.Env == "dev" }
