package kernel

import (
	"errors"
	"testing"
	"time"
)

func TestBootRejectsNTPWithoutWifi(t *testing.T) {
	k := New(newFakeHAL())
	err := k.Boot(Config{UseNTP: true})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("Boot: %v", err)
	}
}

func TestBootSetup(t *testing.T) {
	h := newFakeHAL()
	k := New(h)

	err := k.Boot(Config{
		Wifi:         true,
		UseNTP:       true,
		DimTimeout:   7 * time.Second,
		SleepTimeout: 9 * time.Second,
	})
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}

	if h.buzzer.beeps != 1 {
		t.Fatalf("beeps = %d, want 1", h.buzzer.beeps)
	}
	if h.net.connects != 1 || h.net.syncs != 1 {
		t.Fatalf("connects = %d syncs = %d, want 1/1", h.net.connects, h.net.syncs)
	}
	if k.power.cfg.DimTimeout != 7*time.Second || k.power.cfg.SleepTimeout != 9*time.Second {
		t.Fatalf("power timeouts not applied: %+v", k.power.cfg)
	}
}

func TestBootReportsNetworkFailure(t *testing.T) {
	h := newFakeHAL()
	h.net.connectErr = errors.New("no ap")
	k := New(h)

	var warnings []string
	k.RegisterHandler(SeverityWarning.String(), func(name, text string) {
		warnings = append(warnings, text)
	})

	if err := k.Boot(Config{Wifi: true, UseNTP: true}); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one connect failure", warnings)
	}
	if h.net.syncs != 0 {
		t.Fatal("ntp attempted without a connection")
	}
}
