package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRootCmdSubcommands(t *testing.T) {
	cmd := rootCmd()

	want := []string{"version", "trl", "assess", "draft", "watch"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestWrapNATSError(t *testing.T) {
	err := wrapNATSError(errors.New("dial tcp: connection refused"), "nats://localhost:4222")
	if !strings.Contains(err.Error(), "NATS is not running at nats://localhost:4222") {
		t.Errorf("expected connection guidance, got: %v", err)
	}

	err = wrapNATSError(errors.New("authorization violation"), "nats://localhost:4222")
	if strings.Contains(err.Error(), "NATS is not running") {
		t.Errorf("unexpected guidance for non-connection error: %v", err)
	}
}
