package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSLimiterUnlimited(t *testing.T) {
	f := NewFPSLimiter(0)
	start := time.Now()
	for range 100 {
		f.Wait(false)
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.True(t, f.next.IsZero())
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	f := NewFPSLimiter(200)
	start := time.Now()
	for range 10 {
		f.Wait(false)
	}
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

func TestFPSLimiterIdleCap(t *testing.T) {
	f := NewFPSLimiter(0)
	start := time.Now()
	f.Wait(true)
	f.Wait(true)
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Second/idleFPS-5*time.Millisecond)
}
