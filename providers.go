package main

import (
	"shotbox/internal/config"
	"shotbox/internal/search"
)

func Provider() (*config.Configuration, error) {
	return config.LoadConfiguration("shotbox.yaml")
}

func ProvideIndex(cfg *config.Configuration) (*search.Index, error) {
	return search.Open(cfg.Storage.IndexPath)
}
