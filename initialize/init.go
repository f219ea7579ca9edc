package initialize

import (
	"fmt"
	"time"

	"labfleet/app/db"
	"labfleet/app/models"
	"labfleet/app/repo"
	"labfleet/app/scheduler"
	"labfleet/app/wol"
	"labfleet/config"
	"labfleet/global"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Engine *scheduler.Engine
	Tasks  *repo.ScheduledTaskRepository
}

// Build wires config, stores and the engine. With watch set (daemon mode)
// the config file is watched and engine tunables are hot-swapped on change.
func Build(configPath string, watch bool) (*App, error) {
	load := func() (*config.Config, error) { return config.Load(configPath) }
	var app App
	if watch {
		load = func() (*config.Config, error) {
			return config.LoadAndWatch(configPath, func(cfg *config.Config) {
				global.Config = cfg
				if app.Engine != nil {
					app.Engine.UpdateConfig(engineConfig(cfg))
					global.Logger.Info().Msg("engine config reloaded")
				}
			})
		}
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.Lab{}, &models.Computer{}, &models.ComputerCommand{}, &models.ScheduledTask{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var lock scheduler.TickLock = scheduler.NoopLock{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		global.Rdb = rdb
		lock = scheduler.NewRedisTickLock(rdb, time.Duration(cfg.Engine.LockTTLSec)*time.Second)
	}

	clock, err := scheduler.NewSystemClock(cfg.Engine.Timezone)
	if err != nil {
		return nil, err
	}

	tasks := repo.NewScheduledTaskRepository(gdb)
	labs := repo.NewLabRepository(gdb)
	computers := repo.NewComputerRepository(gdb)
	commands := repo.NewComputerCommandRepository(gdb)

	resolver := scheduler.NewTargetResolver(labs, computers)
	proxies := scheduler.NewProxySelector(computers)
	var sender scheduler.WolSender
	if cfg.WOL.SendFromServer {
		sender = wol.Sender{Broadcast: cfg.WOL.Broadcast, Port: cfg.WOL.Port}
	}
	dispatcher := scheduler.NewDispatcher(commands, proxies, sender, global.Logger)

	engine := scheduler.NewEngine(tasks, commands, resolver, dispatcher, clock, lock, global.Logger, engineConfig(cfg))

	app = App{Cfg: cfg, DB: gdb, Engine: engine, Tasks: tasks}
	return &app, nil
}

func engineConfig(cfg *config.Config) scheduler.Config {
	return scheduler.Config{
		TickTimeout:           time.Duration(cfg.Engine.TickTimeoutSec) * time.Second,
		RetryOnceUntilSuccess: cfg.Engine.RetryOnceUntilSuccess,
	}
}
