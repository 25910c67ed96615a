package web_test

import (
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/web"
)

func TestDefaultConfig(t *testing.T) {
	cfg := web.DefaultConfig()
	if cfg.Host != "localhost" || cfg.Port != "7681" {
		t.Errorf("DefaultConfig = %+v", cfg)
	}
	if cfg.ReadOnly || cfg.MaxConnections != 0 {
		t.Errorf("DefaultConfig should allow input and unlimited connections: %+v", cfg)
	}
}
