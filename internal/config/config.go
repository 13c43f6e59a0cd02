package config

import (
	"time"

	"github.com/spf13/viper"
)

// GetHost returns the host serving the public contribution pages.
func GetHost() string {
	return viper.GetString("host")
}

// GetUsername returns the default username to track.
func GetUsername() string {
	return viper.GetString("username")
}

// GetToken returns the API token enabling the authenticated source.
func GetToken() string {
	return viper.GetString("api.token")
}

// GetCacheDir returns the snapshot cache directory.
func GetCacheDir() string {
	return viper.GetString("cache.dir")
}

// GetCacheTTL returns how long a cached snapshot stays fresh.
func GetCacheTTL() time.Duration {
	return time.Duration(viper.GetInt("cache.ttl_minutes")) * time.Minute
}

// GetNetworkTimeout bounds a single fetch.
func GetNetworkTimeout() time.Duration {
	return time.Duration(viper.GetInt("network.timeout_seconds")) * time.Second
}

// GetRefreshInterval returns the background refresh period.
func GetRefreshInterval() time.Duration {
	return time.Duration(viper.GetInt("refresh.interval_minutes")) * time.Minute
}

// GetServeAddr returns the HTTP API listen address.
func GetServeAddr() string {
	return viper.GetString("serve.addr")
}
