package environment_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jrazmi/tasker/sdk/environment"
)

type testOptions struct {
	Port     string        `env:"PORT" default:":8080"`
	Key      string        `env:"KEY" required:"true"`
	Conns    int32         `env:"CONNS" default:"5"`
	Debug    bool          `env:"DEBUG" default:"false"`
	Timeout  time.Duration `env:"TIMEOUT" default:"5s"`
	Origins  []string      `env:"ORIGINS" separator:","`
	internal string        `env:"INTERNAL"`
}

func TestParseEnvTags_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("TEST_KEY", "secret")
	t.Setenv("TEST_TIMEOUT", "250ms")
	t.Setenv("TEST_ORIGINS", "http://a.test, http://b.test,,")

	var opts testOptions
	if err := environment.ParseEnvTags("TEST", &opts); err != nil {
		t.Fatalf("ParseEnvTags failed: %v", err)
	}

	if opts.Port != ":8080" {
		t.Errorf("Expected default port ':8080', got '%s'", opts.Port)
	}
	if opts.Key != "secret" {
		t.Errorf("Expected key 'secret', got '%s'", opts.Key)
	}
	if opts.Conns != 5 {
		t.Errorf("Expected 5 conns, got %d", opts.Conns)
	}
	if opts.Timeout != 250*time.Millisecond {
		t.Errorf("Expected 250ms timeout, got %s", opts.Timeout)
	}
	if len(opts.Origins) != 2 || opts.Origins[1] != "http://b.test" {
		t.Errorf("Unexpected origins: %v", opts.Origins)
	}
}

func TestParseEnvTags_MissingRequired(t *testing.T) {
	var opts testOptions
	err := environment.ParseEnvTags("MISSING", &opts)
	if err == nil {
		t.Fatal("Expected error for missing required variable")
	}
	if !strings.Contains(err.Error(), "MISSING_KEY") {
		t.Errorf("Expected error to name MISSING_KEY, got: %v", err)
	}
}

func TestParseEnvTags_BadValue(t *testing.T) {
	t.Setenv("BAD_KEY", "k")
	t.Setenv("BAD_CONNS", "many")

	var opts testOptions
	if err := environment.ParseEnvTags("BAD", &opts); err == nil {
		t.Fatal("Expected error for non-numeric int value")
	}
}

func TestParseEnvTags_RequiresStructPointer(t *testing.T) {
	if err := environment.ParseEnvTags("", testOptions{}); err == nil {
		t.Fatal("Expected error when cfg is not a pointer")
	}
}
