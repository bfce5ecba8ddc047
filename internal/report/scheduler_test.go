package report

import (
	"testing"
	"time"

	"personel-backend/internal/database"

	"github.com/stretchr/testify/require"
)

func TestSchedulerRestart(t *testing.T) {
	require.NoError(t, database.OpenTest())

	s := NewScheduler()
	s.Interval = time.Hour

	s.Start()
	s.Stop()

	// Yeniden başlatınca döngü yeni stop kanalıyla çalışmaya devam etmeli
	s.Start()
	select {
	case <-s.stop:
		t.Fatal("stop kanalı yeniden başlatmadan sonra kapalı")
	default:
	}
	s.Stop()
}
