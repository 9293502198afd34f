package main

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestMainExitCodes(t *testing.T) {
	if os.Getenv("MGP_HELPER_PROCESS") == "1" {
		args := strings.Fields(os.Getenv("MGP_ARGS"))
		os.Args = append([]string{"mg-prompts"}, args...)
		main()
		return
	}

	home := t.TempDir()
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "version", args: []string{"version"}, want: 0},
		{name: "list builtin catalog", args: []string{"list"}, want: 0},
		{name: "unknown prompt", args: []string{"show", "no-such-prompt"}, want: 1},
		{name: "unknown command", args: []string{"frobnicate"}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runMainHelper(t, home, tt.args, tt.want)
		})
	}
}

func runMainHelper(t *testing.T, home string, args []string, want int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestMainExitCodes", "--")
	cmd.Env = append(os.Environ(),
		"MGP_HELPER_PROCESS=1",
		"MGP_ARGS="+strings.Join(args, " "),
		"HOME="+home,
		"USERPROFILE="+home,
		"MG_PROMPTS_CATALOG=",
	)
	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		t.Fatalf("main helper timed out after 10s args=%v output: %s", args, output)
	}
	if want == 0 && err != nil {
		t.Fatalf("expected exit 0, got err %v output: %s", err, output)
	}
	if want != 0 {
		if err == nil {
			t.Fatalf("expected exit %d, got 0", want)
		}
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("expected ExitError, got %T", err)
		}
		if exitErr.ExitCode() != want {
			t.Fatalf("expected exit %d, got %d output: %s", want, exitErr.ExitCode(), output)
		}
	}
}
