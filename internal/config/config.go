package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	LogDir   string `yaml:"log_dir" env-default:"logs"`
	Telegram struct {
		ApiKey      string `yaml:"api_key" env-default:""`
		AdminChatId int64  `yaml:"admin_chat_id" env-default:"0"`
		BotName     string `yaml:"bot_name" env-default:"BazaarBot"`
		Enabled     bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:"bazaar"`
	} `yaml:"mongo"`
	Session struct {
		TTL           time.Duration `yaml:"ttl" env-default:"30m"`
		SweepInterval time.Duration `yaml:"sweep_interval" env-default:"5m"`
		ReceiptTTL    time.Duration `yaml:"receipt_ttl" env-default:"72h"`
	} `yaml:"session"`
	Bank struct {
		Name          string `yaml:"name" env-default:""`
		AccountHolder string `yaml:"account_holder" env-default:""`
		AccountNumber string `yaml:"account_number" env-default:""`
		IBAN          string `yaml:"iban" env-default:""`
	} `yaml:"bank"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
