package config

import (
	"testing"
	"time"
)

func TestSettingsMaxPriceBounds(t *testing.T) {
	s := NewSettings(50, 10*time.Minute)

	if err := s.SetMaxPrice(600); err == nil {
		t.Error("expected SetMaxPrice(600) to be rejected")
	}
	if got := s.MaxPrice(); got != 50 {
		t.Errorf("ceiling changed after rejected update: got %.2f, want 50", got)
	}

	if err := s.SetMaxPrice(20); err != nil {
		t.Errorf("SetMaxPrice(20) failed: %v", err)
	}
	if got := s.MaxPrice(); got != 20 {
		t.Errorf("MaxPrice() = %.2f; want 20", got)
	}
}

func TestSettingsIntervalBounds(t *testing.T) {
	s := NewSettings(50, 10*time.Minute)

	if err := s.SetInterval(5 * time.Second); err == nil {
		t.Error("expected sub-minimum interval to be rejected")
	}
	if err := s.SetInterval(2 * time.Hour); err == nil {
		t.Error("expected over-maximum interval to be rejected")
	}
	if got := s.Interval(); got != 10*time.Minute {
		t.Errorf("interval changed after rejected updates: got %s", got)
	}

	if err := s.SetInterval(60 * time.Second); err != nil {
		t.Errorf("SetInterval(60s) failed: %v", err)
	}
}

func TestSettingsQueryDuplicates(t *testing.T) {
	s := NewSettings(50, 10*time.Minute)

	if err := s.AddQuery("zara coat"); err != nil {
		t.Fatalf("AddQuery failed: %v", err)
	}
	if err := s.AddQuery("Zara Coat"); err == nil {
		t.Error("expected case-insensitive duplicate to be rejected")
	}
	if err := s.AddQuery("  "); err == nil {
		t.Error("expected blank query to be rejected")
	}

	if got := len(s.Queries()); got != 1 {
		t.Errorf("expected 1 query, got %d", got)
	}
}

func TestSettingsRemoveQuery(t *testing.T) {
	s := NewSettings(50, 10*time.Minute)
	_ = s.AddQuery("nike hoodie")

	if err := s.RemoveQuery("NIKE HOODIE"); err != nil {
		t.Errorf("RemoveQuery failed: %v", err)
	}
	if err := s.RemoveQuery("nike hoodie"); err == nil {
		t.Error("expected removing an absent query to fail")
	}
}

func TestSettingsPauseResume(t *testing.T) {
	s := NewSettings(50, 10*time.Minute)

	if s.Paused() {
		t.Error("settings should start in the running state")
	}
	s.Pause()
	if !s.Paused() {
		t.Error("Pause() did not take effect")
	}
	s.Resume()
	if s.Paused() {
		t.Error("Resume() did not take effect")
	}
}

func TestSettingsConfidenceBounds(t *testing.T) {
	s := NewSettings(50, 10*time.Minute)

	if err := s.SetMinConfidence(0); err == nil {
		t.Error("expected confidence 0 to be rejected")
	}
	if err := s.SetMinConfidence(7); err == nil {
		t.Error("expected confidence 7 to be rejected")
	}
	if err := s.SetMinConfidence(3); err != nil {
		t.Errorf("SetMinConfidence(3) failed: %v", err)
	}
	if got := s.MinConfidenceLevel(); got != 3 {
		t.Errorf("MinConfidenceLevel() = %d; want 3", got)
	}
}
