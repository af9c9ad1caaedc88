package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/adinKent/pharaoh/internal/bot"
	"github.com/adinKent/pharaoh/internal/chart"
	"github.com/adinKent/pharaoh/internal/command"
	"github.com/adinKent/pharaoh/internal/config"
	"github.com/adinKent/pharaoh/internal/handlers"
	"github.com/adinKent/pharaoh/internal/quote"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// All provider clients are built once here and injected; nothing below
	// reads the environment or constructs its own client.
	service := quote.NewService(cfg.HTTPTimeout())

	deps := command.Deps{
		Aliases:  command.NewAliasTable(),
		Names:    service,
		Quotes:   service,
		Flows:    service,
		Narrator: narrator(cfg),
	}
	if cfg.Chart.Enabled {
		deps.Chart = chart.NewRenderer()
	}

	handler := handlers.New(command.NewParser(deps))
	if err := bot.Run(handler.HandleMessage); err != nil {
		fmt.Printf("Error running bot: %v\n", err)
		os.Exit(1)
	}
}

// narrator returns nil when no Gemini key is configured, which simply drops
// the narrative appendix from analysis replies.
func narrator(cfg *config.Config) command.Narrator {
	n := quote.NewGeminiNarrator(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.HTTPTimeout())
	if n == nil {
		return nil
	}
	return n
}
