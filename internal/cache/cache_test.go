package cache

import (
	"strings"
	"testing"
)

func TestKey_NamespacesDoNotCollide(t *testing.T) {
	local := Key(NamespaceLocal, "what is dns")
	ai := Key(NamespaceAI, "what is dns")

	if local == ai {
		t.Error("local and ai keys for identical text must differ")
	}
	if !strings.HasPrefix(local, "answerfinder:v1:") {
		t.Errorf("unexpected key format: %s", local)
	}
}

func TestKey_Deterministic(t *testing.T) {
	if Key(NamespaceLocal, "abc") != Key(NamespaceLocal, "abc") {
		t.Error("same input must produce the same key")
	}
	if Key(NamespaceLocal, "abc") == Key(NamespaceLocal, "abd") {
		t.Error("different inputs must produce different keys")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  What IS dns  "); got != "what is dns" {
		t.Errorf("Normalize = %q", got)
	}
}
