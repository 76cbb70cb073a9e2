package config

import (
	"os"

	"github.com/go-yaml/yaml"

	"github.com/vidstream/vidstream/internal/domain"
)

type Config struct {
	Node   domain.Config `yaml:"node"`
	Server Server        `yaml:"server"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	MediaDir      string `yaml:"mediaDir"`
	MediaBaseURL  string `yaml:"mediaBaseURL"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Node.AccessTokenExpiry <= 0 {
		config.Node.AccessTokenExpiry = 15
	}
	if config.Node.RefreshTokenExpiry <= 0 {
		config.Node.RefreshTokenExpiry = 10
	}
	if config.Node.MaxPageSize <= 0 {
		config.Node.MaxPageSize = 100
	}

	return config, nil
}
