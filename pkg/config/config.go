package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGBookingDSN string `envconfig:"PG_BOOKING_DSN" required:"true"`

	// Redis backs both the hoarding counters and the delayed task queue.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// RabbitMQ
	RabbitURL        string `envconfig:"RABBIT_URL" required:"true"`
	BookingExchange  string `envconfig:"BOOKING_EXCHANGE" default:"booking_exchange"`
	UserExchange     string `envconfig:"USER_EXCHANGE" default:"user_events_exchange"`
	UserProfileQueue string `envconfig:"USER_PROFILE_QUEUE" default:"booking.user_profile.q"`
	CenterExchange   string `envconfig:"CENTER_EXCHANGE" default:"center_events_exchange"`
	CenterInfoQueue  string `envconfig:"CENTER_INFO_QUEUE" default:"booking.center_info.q"`

	// Center service, for display-name enrichment on marketplace listings
	CenterServiceURL string `envconfig:"CENTER_SERVICE_URL" default:"http://center-service:8082"`

	// PayOS
	PayOSClientID    string `envconfig:"PAYOS_CLIENT_ID" required:"true"`
	PayOSAPIKey      string `envconfig:"PAYOS_API_KEY" required:"true"`
	PayOSChecksumKey string `envconfig:"PAYOS_CHECKSUM_KEY" required:"true"`

	// Network
	HTTPAddr string `envconfig:"BOOKING_HTTP_ADDR" default:":8083"`
}

func Load() (App, error) {
	_ = godotenv.Load() // best effort; real env wins
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
