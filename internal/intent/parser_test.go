package intent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       Command
	}{
		{"start", "start navigation", Start()},
		{"start uppercase with padding", "  START Navigation please ", Start()},
		{"stop", "stop navigation", Stop()},
		{"source set to", "source set to Chennai central", SetSource("chennai central")},
		{"source is", "source is Madurai", SetSource("madurai")},
		{"source bare", "source airport", SetSource("airport")},
		{"destination set to", "destination set to marina beach", SetDestination("marina beach")},
		{"destination is", "my destination is the hospital", SetDestination("the hospital")},
		{"reroute", "reroute", Reroute()},
		{"change route", "change route now", Reroute()},
		{"emergency", "this is an emergency", Emergency()},
		{"emergency wins over poi police", "emergency police", Emergency()},
		{"nearest hospital", "nearest hospital", Find(TargetHospital)},
		{"nearest police", "nearest police station please", Find(TargetPolice)},
		{"traffic", "show traffic", Traffic()},
		{"ar mode", "turn on ar mode", ToggleAR()},
		{"poi fuel", "where can i get fuel", PoiSearch("fuel")},
		{"poi police without nearest", "find a police station", PoiSearch("police")},
		{"poi hospital without nearest", "any hospital around", PoiSearch("hospital")},
		{"poi order follows vocabulary", "hotel near the park", PoiSearch("hotel")},
		{"unknown", "good morning", Unknown("good morning")},
		{"unknown keeps lowered text", "  Good Morning ", Unknown("good morning")},
		{"empty", "", Unknown("")},
		{"start beats destination", "destination start navigation", Start()},
		{"source beats reroute", "source reroute street", SetSource("reroute street")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.transcript))
		})
	}
}

func TestParse_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, SetDestination("chennai"), Parse("destination chennai"))
			assert.Equal(t, Reroute(), Parse("change route"))
		}()
	}
	wg.Wait()
}

func TestGate_Strip(t *testing.T) {
	gate := NewGate("")

	t.Run("Without Wake Word Is Ignored", func(t *testing.T) {
		_, ok := gate.Strip("start navigation")
		assert.False(t, ok)
	})

	t.Run("Wake Word Inside Another Word Is Ignored", func(t *testing.T) {
		_, ok := gate.Strip("take me to jackson heights")
		assert.False(t, ok)
	})

	t.Run("Leading Wake Word", func(t *testing.T) {
		rest, ok := gate.Strip("Jack, start navigation")
		assert.True(t, ok)
		assert.Equal(t, "start navigation", rest)
	})

	t.Run("Wake Word In The Middle", func(t *testing.T) {
		rest, ok := gate.Strip("hey jack nearest police station please")
		assert.True(t, ok)
		assert.Equal(t, "hey nearest police station please", rest)
		assert.Equal(t, Find(TargetPolice), Parse(rest))
	})

	t.Run("Custom Wake Word", func(t *testing.T) {
		custom := NewGate("Jill")
		rest, ok := custom.Strip("jill traffic")
		assert.True(t, ok)
		assert.Equal(t, "traffic", rest)
		_, ok = custom.Strip("jack traffic")
		assert.False(t, ok)
	})
}
