package services

import (
	"errors"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"shotbox/internal/config"
	"shotbox/internal/repository"
	"shotbox/internal/search"
)

// Curator periodically verifies that the full-text index still agrees with
// the item table and triggers a rebuild when they drift apart, e.g. after a
// crash between transaction commit and index flush.
type Curator struct {
	indexer       IndexerService
	itemRepo      repository.ItemRepository
	fulltext      *search.Index
	configuration *config.Configuration
	logService    LogService
	verifying     bool
	mutex         sync.Mutex
	cron          *cron.Cron
}

func NewCuratorService(
	indexer IndexerService,
	itemRepository repository.ItemRepository,
	fulltext *search.Index,
	configuration *config.Configuration,
	logService LogService,
) *Curator {
	return &Curator{
		indexer:       indexer,
		itemRepo:      itemRepository,
		fulltext:      fulltext,
		configuration: configuration,
		logService:    logService,
		cron:          cron.New(),
	}
}

func (c *Curator) ForceVerify() error {
	c.mutex.Lock()
	if c.verifying {
		c.mutex.Unlock()
		return errors.New("verification is in progress")
	}
	c.verifying = true
	c.mutex.Unlock()

	go func() {
		defer c.done()
		c.verify(true)
	}()
	return nil
}

func (c *Curator) StartVerifyCycle() {
	c.logService.Log.Debug("starting curator job")

	schedule := c.configuration.Server.CuratorConfig.Schedule
	_, err := c.cron.AddFunc(schedule, func() {
		c.mutex.Lock()
		if c.verifying {
			c.mutex.Unlock()
			return
		}
		c.verifying = true
		c.mutex.Unlock()

		defer c.done()
		c.verify(false)
	})
	if err != nil {
		c.logService.Log.WithFields(logrus.Fields{
			"job":   "curator",
			"error": err.Error(),
		}).Error("Failed to start curator job")
		return
	}
	c.cron.Start()
}

func (c *Curator) Stop() {
	c.cron.Stop()
}

func (c *Curator) IsVerifying() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.verifying
}

func (c *Curator) done() {
	c.mutex.Lock()
	c.verifying = false
	c.mutex.Unlock()
}

func (c *Curator) verify(forced bool) {
	itemCount, err := c.itemRepo.Count()
	if err != nil {
		c.logService.Log.WithFields(logrus.Fields{
			"job":   "curator",
			"error": err.Error(),
		}).Error("Failed to count items")
		return
	}
	docCount, err := c.fulltext.Count()
	if err != nil {
		c.logService.Log.WithFields(logrus.Fields{
			"job":   "curator",
			"error": err.Error(),
		}).Error("Failed to count full-text documents")
		return
	}

	if uint64(itemCount) == docCount && !forced {
		c.logService.Log.WithFields(logrus.Fields{
			"job":   "curator",
			"items": itemCount,
		}).Debug("index consistent")
		return
	}

	c.logService.Log.WithFields(logrus.Fields{
		"job":    "curator",
		"items":  itemCount,
		"docs":   docCount,
		"forced": forced,
	}).Info("rebuilding search index")

	count, err := c.indexer.Rebuild()
	if err != nil {
		c.logService.Log.WithFields(logrus.Fields{
			"job":    "curator",
			"status": "error",
			"error":  err.Error(),
			"count":  count,
		}).Error("Rebuild failed")
		return
	}
	c.logService.Log.WithFields(logrus.Fields{
		"job":    "curator",
		"status": "success",
		"count":  count,
	}).Info("curator job finished")
}
