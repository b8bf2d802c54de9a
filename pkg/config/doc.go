// Package config loads environment-backed configuration structs for the SDK.
//
// Every configurable package in the SDK (session, cookie, stores) declares a
// Config struct with `env` tags. This package parses those structs from the
// process environment, loading a .env file once if one is present.
//
// # Usage
//
//	var cfg session.Config
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// Each configuration type is parsed at most once per process; later calls for
// the same type return the cached value, so packages can load their own
// config independently without re-reading the environment.
package config
