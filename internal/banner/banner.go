// Package banner runs the decorative activity banners shown over every page.
// The messages are canned; nothing here reflects real activity.
package banner

import (
	"context"
	"sync"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/pkg/config"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

type Kind string

const (
	KindNewLead   Kind = "new_lead"
	KindDoorKnock Kind = "door_knock"
)

type Banner struct {
	ID        string    `json:"id"`
	Type      Kind      `json:"type"`
	UserName  string    `json:"user_name"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expires_at"`
}

var canned = []Banner{
	{Type: KindNewLead, UserName: "Sarah Johnson", Address: "123 Oak Street, Dallas, TX"},
	{Type: KindDoorKnock, UserName: "Mike Rodriguez", Address: "456 Pine Avenue, Fort Worth, TX"},
	{Type: KindNewLead, UserName: "David Chen", Address: "789 Maple Drive, Arlington, TX"},
	{Type: KindDoorKnock, UserName: "Lisa Thompson", Address: "321 Cedar Lane, Plano, TX"},
}

// Feed holds at most cfg.Max banners, newest first.
type Feed struct {
	cfg config.BannerConfig
	now func() time.Time

	mu      sync.Mutex
	rnd     *rand.Rand
	banners []Banner
}

func NewFeed(cfg config.BannerConfig) *Feed {
	if cfg.Max <= 0 {
		cfg.Max = 3
	}
	return &Feed{
		cfg: cfg,
		now: time.Now,
		rnd: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// Show pushes a random canned banner to the front.
func (f *Feed) Show() Banner {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	b := canned[f.rnd.Intn(len(canned))]
	b.ID = uuid.NewString()
	b.Timestamp = now
	b.ExpiresAt = now.Add(f.cfg.TTL)

	f.prune(now)
	keep := f.banners
	if len(keep) > f.cfg.Max-1 {
		keep = keep[:f.cfg.Max-1]
	}
	f.banners = append([]Banner{b}, keep...)
	prometheus.SetActiveBanners(len(f.banners))
	return b
}

// Tick shows a banner with probability cfg.Chance.
func (f *Feed) Tick() bool {
	f.mu.Lock()
	roll := f.rnd.Float64()
	f.mu.Unlock()
	if roll >= f.cfg.Chance {
		return false
	}
	f.Show()
	return true
}

// Active returns the banners that have not expired.
func (f *Feed) Active() []Banner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prune(f.now())
	return append([]Banner{}, f.banners...)
}

func (f *Feed) Dismiss(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.banners {
		if b.ID == id {
			f.banners = append(f.banners[:i:i], f.banners[i+1:]...)
			prometheus.SetActiveBanners(len(f.banners))
			return true
		}
	}
	return false
}

func (f *Feed) prune(now time.Time) {
	kept := f.banners[:0:0]
	for _, b := range f.banners {
		if now.Before(b.ExpiresAt) {
			kept = append(kept, b)
		}
	}
	if len(kept) != len(f.banners) {
		f.banners = kept
		prometheus.SetActiveBanners(len(kept))
	}
}

// interval picks the tick period once, between MinInterval and MaxInterval.
func (f *Feed) interval() time.Duration {
	spread := f.cfg.MaxInterval - f.cfg.MinInterval
	if spread <= 0 {
		return f.cfg.MinInterval
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg.MinInterval + time.Duration(f.rnd.Float64()*float64(spread))
}

// Run shows the first banner after InitialDelay and then ticks until ctx is
// done.
func (f *Feed) Run(ctx context.Context) {
	log := logger.GetLogger().With(zap.String("component", "banner"))
	every := f.interval()
	if every <= 0 {
		log.Warn("Banner feed disabled: non-positive interval")
		return
	}
	log.Info("Banner feed started",
		zap.Duration("initial_delay", f.cfg.InitialDelay),
		zap.Duration("interval", every))

	first := time.NewTimer(f.cfg.InitialDelay)
	defer first.Stop()
	select {
	case <-ctx.Done():
		return
	case <-first.C:
		f.Show()
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Banner feed stopped")
			return
		case <-ticker.C:
			f.Tick()
		}
	}
}
