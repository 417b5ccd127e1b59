package main

import (
	"bytes"
	"testing"
)

func TestCommands_Registered(t *testing.T) {
	want := map[string]bool{"up": false, "down": false, "version": false}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestDown_InvalidSteps(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"down", "zero"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("Execute() error = nil, want invalid steps error")
	}
}
