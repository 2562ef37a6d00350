package config

import (
	"flag"
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/flagx"
)

var knownFlags = []string{
	"-a", "-d", "-s", "-t", "-r", "-k", "-m", "-u", "-p", "-b", "-g", "-e",
	"-smtp-host", "-smtp-port", "-smtp-user", "-smtp-password", "-from",
	"-deadline-days", "-interview-window", "-notify-status",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-k string   storage backend: local or s3
//	-m string   media root for the local backend
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-smtp-host, -smtp-port, -smtp-user, -smtp-password, -from   outbound mail
//	-deadline-days int          deadline reminder window in days
//	-interview-window duration  interview reminder window (e.g., "24h")
//	-notify-status bool         email owners on application status changes
//
// Only recognized flags are parsed (flagx.FilterArgs), so the JSON layer's
// -c/-config does not collide with this one.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	fs.StringVar(&config.StorageBackend, "k", config.StorageBackend, "document storage backend (local|s3)")
	fs.StringVar(&config.MediaRoot, "m", config.MediaRoot, "media root for local storage")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.SMTPHost, "smtp-host", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "smtp-port", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUser, "smtp-user", config.SMTPUser, "SMTP user")
	fs.StringVar(&config.SMTPPassword, "smtp-password", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.FromAddress, "from", config.FromAddress, "default From address")

	fs.IntVar(&config.DeadlineReminderDays, "deadline-days", config.DeadlineReminderDays, "deadline reminder window (in days)")
	fs.DurationVar(&config.InterviewReminderWindow, "interview-window", config.InterviewReminderWindow, "interview reminder window")
	fs.BoolVar(&config.NotifyStatusChange, "notify-status", config.NotifyStatusChange, "email owners when application status changes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
}
