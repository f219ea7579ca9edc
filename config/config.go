package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type Redis struct {
	Addr string // empty disables redis (and the distributed tick lock)
	DB   int
}

type WOL struct {
	SendFromServer bool
	Broadcast      string
	Port           int
}

type Engine struct {
	Timezone              string
	TickTimeoutSec        int
	LockTTLSec            int
	RetryOnceUntilSuccess bool
}

type Config struct {
	DB     DB
	Redis  Redis
	WOL    WOL
	Engine Engine
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("engine.timezone", "America/Sao_Paulo")
	v.SetDefault("engine.tick_timeout_sec", 50)
	v.SetDefault("engine.lock_ttl_sec", 60)
	v.SetDefault("engine.retry_once_until_success", false)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "labfleet")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("wol.send_from_server", false)
	v.SetDefault("wol.broadcast", "255.255.255.255")
	v.SetDefault("wol.port", 9)

	return v
}

func parse(v *viper.Viper) *Config {
	return &Config{
		DB: DB{
			Host: v.GetString("db.host"),
			Port: v.GetInt("db.port"),
			User: v.GetString("db.user"),
			Pass: v.GetString("db.pass"),
			Name: v.GetString("db.name"),
		},
		Redis: Redis{
			Addr: v.GetString("redis.addr"),
			DB:   v.GetInt("redis.db"),
		},
		WOL: WOL{
			SendFromServer: v.GetBool("wol.send_from_server"),
			Broadcast:      v.GetString("wol.broadcast"),
			Port:           v.GetInt("wol.port"),
		},
		Engine: Engine{
			Timezone:              v.GetString("engine.timezone"),
			TickTimeoutSec:        v.GetInt("engine.tick_timeout_sec"),
			LockTTLSec:            v.GetInt("engine.lock_ttl_sec"),
			RetryOnceUntilSuccess: v.GetBool("engine.retry_once_until_success"),
		},
	}
}

func Load(path string) (*Config, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(v), nil
}

// LoadAndWatch re-parses the file whenever it changes and hands the fresh
// Config to onChange. Used by daemon mode so engine tunables apply without
// a restart.
func LoadAndWatch(path string, onChange func(*Config)) (*Config, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		onChange(parse(v))
	})
	v.WatchConfig()
	return parse(v), nil
}
