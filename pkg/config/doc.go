// Package config loads configuration structs from environment variables.
//
// Fields are declared with env tags and parsed with caarlos0/env; a .env
// file in the working directory is loaded once, if present, before the first
// parse so local development needs no exported variables.
//
//	type UploadConfig struct {
//	    MaxSize      int64    `env:"UPLOAD_MAX_SIZE" envDefault:"10485760"`
//	    AllowedTypes []string `env:"UPLOAD_ALLOWED_TYPES" envSeparator:","`
//	}
//
//	var cfg UploadConfig
//	config.MustLoad(&cfg)
package config
