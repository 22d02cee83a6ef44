// Package config provides configuration management for the SMR checker.
//
// It loads an optional .env file with godotenv, then resolves every setting
// through Viper from environment variables. Defaults come from the `default`
// struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, snapshot cache TTL (SERVER_PORT, SERVER_API_KEY, ...)
//   - Storage: S3/MinIO credentials and the snapshot bucket
//   - Log: logging level and format
//   - Database: optional run history connection (mysql or sqlite)
//   - Patch: security patch window in days (PATCH_AHEAD_DAYS, PATCH_BEHIND_DAYS)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Patch.BehindDays)
package config
