package config

import (
	"encoding/json"
	"os"

	"github.com/Shubham-musmade/interview-tracker/internal/flagx"
	"github.com/Shubham-musmade/interview-tracker/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Duration fields accept
// both strings such as "15m" and integer nanoseconds. Pointer fields are
// optional: absent keys leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	StorageBackend               *string         `json:"storage_backend"`
	MediaRoot                    *string         `json:"media_root"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
	SMTPHost                     *string         `json:"smtp_host"`
	SMTPPort                     *int            `json:"smtp_port"`
	SMTPUser                     *string         `json:"smtp_user"`
	SMTPPassword                 *string         `json:"smtp_password"`
	FromAddress                  *string         `json:"from_address"`
	DeadlineReminderDays         *int            `json:"deadline_reminder_days"`
	InterviewReminderWindow      *timex.Duration `json:"interview_reminder_window"`
	NotifyStatusChange           *bool           `json:"notify_status_change"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config. Without that flag nothing is loaded. An unreadable file or
// invalid JSON panics.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.MediaRoot, c.MediaRoot)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort != nil {
		config.SMTPPort = *c.SMTPPort
	}
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.FromAddress, c.FromAddress)
	if c.DeadlineReminderDays != nil {
		config.DeadlineReminderDays = *c.DeadlineReminderDays
	}
	if c.InterviewReminderWindow != nil {
		config.InterviewReminderWindow = c.InterviewReminderWindow.Duration
	}
	if c.NotifyStatusChange != nil {
		config.NotifyStatusChange = *c.NotifyStatusChange
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
