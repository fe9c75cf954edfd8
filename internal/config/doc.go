// Package config provides environment-based configuration.
//
// Maps environment variables to the Config struct via caarlos0/env struct
// tags and validates required fields in Load.
package config
