package services

import (
	"os"
	"testing"

	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
)

func TestMain(m *testing.M) {
	// operations record metrics, so the registry must exist; port 0 picks a
	// free port for the scrape endpoint
	metrics.Init(0)

	os.Exit(m.Run())
}
