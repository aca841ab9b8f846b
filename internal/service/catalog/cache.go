package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// Cache LRU кеш услуг с временем жизни записи.
// Длительность услуги меняется редко, а читается на каждой записи.
// Измененная в каталоге длительность видна только после истечения ttl.
type Cache struct {
	lru *expirable.LRU[int64, *domain.Service]
}

// NewCache создает кеш на size услуг с TTL
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[int64, *domain.Service](size, nil, ttl)}
}

func (c *Cache) get(id int64) (*domain.Service, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(id)
}

func (c *Cache) add(s *domain.Service) {
	if c == nil {
		return
	}
	c.lru.Add(s.ID, s)
}
