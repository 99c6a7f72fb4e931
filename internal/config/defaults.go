package config

import "github.com/spf13/viper"

const (
	DefaultPageSize = 100
	MaxPageSize     = 100
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "subnets-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.base_url", "")
	v.SetDefault("app.read_timeout", "15s")
	v.SetDefault("app.write_timeout", "15s")
	v.SetDefault("app.idle_timeout", "60s")
	v.SetDefault("app.shutdown_timeout", "10s")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_idle", 8)
	v.SetDefault("redis.idle_timeout", "240s")
	v.SetDefault("redis.key_prefix", "subnets:pagelink:")

	v.SetDefault("pagination.default_page_size", DefaultPageSize)
	v.SetDefault("pagination.max_page_size", MaxPageSize)
	v.SetDefault("pagination.link_ttl", "10m")
	v.SetDefault("pagination.link_store", LinkStoreRedis)
}
