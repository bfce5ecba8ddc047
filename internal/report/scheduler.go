package report

import (
	"log"
	"sync"
	"time"

	"personel-backend/internal/contract"
)

// Scheduler: Arka planda periyodik görevleri çalıştırır.
//   - Süresi dolan sözleşmeleri kapatır
//   - Bir önceki ayın raporlarını üretir (idempotent, üzerine yazar)
type Scheduler struct {
	Interval   time.Duration
	MaxRetries int

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		Interval:   1 * time.Hour,
		MaxRetries: 3,
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return
	}

	// Stop kanalı kapatarak durdurur; yeniden başlatmada yeni kanal gerekir
	s.stop = make(chan struct{})
	s.ticker = time.NewTicker(s.Interval)
	s.wg.Add(1)
	go s.run()

	log.Printf("[Scheduler] Başlatıldı, kontrol aralığı: %v", s.Interval)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.ticker = nil
		log.Println("[Scheduler] Durduruldu")
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Başlangıçta bir kez çalıştır
	s.runOnce()

	for {
		select {
		case <-s.ticker.C:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) runOnce() {
	now := time.Now()

	s.withRetry("sözleşme süre kontrolü", func() error {
		expired, err := contract.ExpireDueContracts(now)
		if err != nil {
			return err
		}
		if expired > 0 {
			log.Printf("[Scheduler] %d sözleşmenin süresi doldu", expired)
		}
		return nil
	})

	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	s.withRetry("aylık raporlar", func() error {
		return RunMonthly(prev.Year(), int(prev.Month()), now)
	})
}

// withRetry: Görevi üstel bekleme ile en fazla MaxRetries kez dener.
func (s *Scheduler) withRetry(name string, task func() error) {
	backoff := 5 * time.Second

	for attempt := 1; attempt <= s.MaxRetries; attempt++ {
		err := task()
		if err == nil {
			return
		}

		log.Printf("[Scheduler] %s başarısız (deneme %d/%d): %v", name, attempt, s.MaxRetries, err)
		if attempt == s.MaxRetries {
			return
		}

		select {
		case <-time.After(backoff):
		case <-s.stop:
			return
		}
		backoff *= 2
	}
}
