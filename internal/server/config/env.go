package config

import (
	"fmt"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "JOBTRACKER_"

// parseEnv overlays values from environment variables such as
// JOBTRACKER_DATABASE_DSN. cmd/* load an optional .env file into the process
// environment before LoadConfig runs. Malformed numeric or boolean values
// panic, matching the JSON layer.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				panic(fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			}
			*dst = n
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			}
			*dst = d
		}
	}

	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("SECRET_KEY", &config.SecretKey)
	dur("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	dur("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration)
	str("STORAGE_BACKEND", &config.StorageBackend)
	str("MEDIA_ROOT", &config.MediaRoot)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("SMTP_HOST", &config.SMTPHost)
	num("SMTP_PORT", &config.SMTPPort)
	str("SMTP_USER", &config.SMTPUser)
	str("SMTP_PASSWORD", &config.SMTPPassword)
	str("FROM_ADDRESS", &config.FromAddress)
	num("DEADLINE_REMINDER_DAYS", &config.DeadlineReminderDays)
	dur("INTERVIEW_REMINDER_WINDOW", &config.InterviewReminderWindow)

	if v, ok := lookup(EnvPrefix + "NOTIFY_STATUS_CHANGE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%sNOTIFY_STATUS_CHANGE: %w", EnvPrefix, err))
		}
		config.NotifyStatusChange = b
	}
}
