package state

import (
	"path/filepath"
	"testing"
)

func TestStore_DefaultsWhenFileMissing(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	st := s.Get()
	if !st.Settings.AIEnabled {
		t.Error("fallback should default to enabled")
	}
	if st.AIUsage.Count != 0 {
		t.Errorf("expected zero usage, got %d", st.AIUsage.Count)
	}
}

func TestStore_UpdatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	err = s.Update(func(st *State) {
		st.LastQuestion = "what is dns"
		st.LastAnswer = "Domain Name System"
		st.AIUsage = Usage{Date: "2026-08-28", Count: 7}
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	st := reopened.Get()
	if st.LastQuestion != "what is dns" || st.LastAnswer != "Domain Name System" {
		t.Errorf("last question/answer not persisted: %+v", st)
	}
	if st.AIUsage.Count != 7 || st.AIUsage.Date != "2026-08-28" {
		t.Errorf("usage not persisted: %+v", st.AIUsage)
	}
}

func TestStore_InstanceIDStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	first, err := s.InstanceID()
	if err != nil {
		t.Fatalf("InstanceID failed: %v", err)
	}
	if first == "" {
		t.Fatal("expected generated instance ID")
	}

	second, _ := s.InstanceID()
	if second != first {
		t.Errorf("instance ID changed within a session: %s vs %s", first, second)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	persisted, _ := reopened.InstanceID()
	if persisted != first {
		t.Errorf("instance ID changed across restart: %s vs %s", first, persisted)
	}
}
