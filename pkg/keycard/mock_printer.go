package keycard

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// LowCardThreshold is the stock level at or below which the mock printer
// reports low supply
const LowCardThreshold = 25

// MockPrinter simulates the keycard encoder for development. It tracks a
// finite card stock and logs each job instead of printing.
type MockPrinter struct {
	mu             sync.Mutex
	remainingCards int
	logger         *logrus.Logger
}

// NewMockPrinter creates a mock printer loaded with the given card stock
func NewMockPrinter(cards int, logger *logrus.Logger) *MockPrinter {
	if logger == nil {
		logger = logrus.New()
	}
	return &MockPrinter{
		remainingCards: cards,
		logger:         logger,
	}
}

// PrintKeycard logs the job and consumes one card from stock
func (p *MockPrinter) PrintKeycard(roomNumber int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.remainingCards <= 0 {
		return ErrPrinterUnavailable
	}

	p.remainingCards--
	p.logger.WithFields(logrus.Fields{
		"room":            roomNumber,
		"remaining_cards": p.remainingCards,
	}).Info("MOCK: printed keycard")

	return nil
}

// RemainingCards returns the current card stock
func (p *MockPrinter) RemainingCards() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remainingCards
}

// Reload sets the card stock
func (p *MockPrinter) Reload(cards int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remainingCards = cards
}

// IsLow reports whether the card stock is at or below the reorder threshold
func (p *MockPrinter) IsLow() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remainingCards <= LowCardThreshold
}

// Name returns the name of this printer implementation
func (p *MockPrinter) Name() string {
	return "Mock Keycard Printer"
}
