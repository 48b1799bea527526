package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/turingair/flightassist/internal/domain"
)

// SeedConfig drives demo-data generation. Zero values fall back to the
// defaults below, so an empty config section still yields a usable store.
type SeedConfig struct {
	Count      int      `yaml:"count"`
	Names      []string `yaml:"names"`
	Airports   []string `yaml:"airports"`
	DaySpacing int      `yaml:"day_spacing"`
	RandSeed   int64    `yaml:"rand_seed"`
}

var (
	defaultNames = []string{"徐庶", "诸葛", "百里", "楼兰", "庄周"}

	defaultAirports = []string{
		"北京", "上海", "广州", "深圳", "杭州", "南京",
		"青岛", "成都", "武汉", "西安", "重庆", "大连", "天津",
	}
)

func (c SeedConfig) withDefaults() SeedConfig {
	if c.Count <= 0 {
		c.Count = 5
	}
	if len(c.Names) == 0 {
		c.Names = defaultNames
	}
	if len(c.Airports) == 0 {
		c.Airports = defaultAirports
	}
	if c.DaySpacing <= 0 {
		c.DaySpacing = 2
	}
	if c.RandSeed == 0 {
		c.RandSeed = time.Now().UnixNano()
	}
	return c
}

// Seed builds a store populated with demo bookings: booking numbers 101, 102,
// ... with randomized routes and cabin classes, dated DaySpacing*(i+1) days
// from today, all CONFIRMED.
func Seed(cfg SeedConfig) *MemoryStore {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.RandSeed))

	s := New()
	today := domain.Today()
	for i := 0; i < cfg.Count; i++ {
		name := cfg.Names[i%len(cfg.Names)]
		s.Add(&domain.Booking{
			BookingNumber: fmt.Sprintf("10%d", i+1),
			Date:          today.AddDate(0, 0, cfg.DaySpacing*(i+1)),
			Customer:      &domain.Customer{Name: name},
			From:          cfg.Airports[rng.Intn(len(cfg.Airports))],
			To:            cfg.Airports[rng.Intn(len(cfg.Airports))],
			Status:        domain.BookingStatusConfirmed,
			Class:         domain.CabinClasses[rng.Intn(len(domain.CabinClasses))],
		})
	}

	log.Info().Int("customers", len(s.customers)).Int("bookings", len(s.bookings)).
		Msg("demo data initialized")
	return s
}
