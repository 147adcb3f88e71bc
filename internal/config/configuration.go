package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Configuration struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
}

type StorageConfig struct {
	BasePath      string `yaml:"basePath"`
	IndexPath     string `yaml:"indexPath"`
	ThumbnailSize int    `yaml:"thumbnailSize"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	LogConfig     LogConfig     `yaml:"log"`
	CuratorConfig CuratorConfig `yaml:"curator"`
	RequestConfig RequestConfig `yaml:"request"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type CuratorConfig struct {
	Schedule string `yaml:"schedule"`
}

type RequestConfig struct {
	SizeLimit int `yaml:"sizeLimit"`
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Storage.BasePath == "" {
		c.Storage.BasePath = "data/archive"
	}
	if c.Storage.IndexPath == "" {
		c.Storage.IndexPath = "data/shotbox.bleve"
	}
	if c.Storage.ThumbnailSize == 0 {
		c.Storage.ThumbnailSize = 150
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "data/shotbox.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 50
	}
	if c.Server.CuratorConfig.Schedule == "" {
		c.Server.CuratorConfig.Schedule = "@hourly"
	}
}
