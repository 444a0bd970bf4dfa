package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dhabedank/retailer-check/internal/core"
	"github.com/dhabedank/retailer-check/internal/dataset"
	"github.com/dhabedank/retailer-check/internal/llm"
)

// app is everything a command needs to run searches. The dataset and
// provider are loaded once at startup; failure to load either is fatal.
type app struct {
	settings Settings
	log      zerolog.Logger
	dataset  *dataset.Dataset
	adapter  llm.Adapter
	searcher *core.Searcher
}

func newApp(cmd *cobra.Command, log zerolog.Logger) (*app, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if settings.Source != "" {
		log.Debug().Str("path", settings.Source).Msg("Loaded config")
	}

	ds, err := dataset.Load(settings.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	log.Debug().
		Str("path", ds.Path()).
		Int("rows", ds.Len()).
		Strs("columns", ds.Columns()).
		Msg("Loaded dataset")

	adapter, err := llm.NewAdapter(settings.LLM, settings.LLMConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM adapter: %w", err)
	}
	log.Debug().Str("provider", adapter.Name()).Str("model", adapter.Model()).Msg("Using LLM")

	searcher := core.NewSearcher(ds.Text(), adapter, log)
	searcher.Parser.StrictLegitimacy = settings.StrictLegitimacy
	if settings.PromptFile != "" {
		tmpl, err := core.LoadPromptTemplate(settings.PromptFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompt: %w", err)
		}
		searcher.Template = tmpl
	}

	return &app{
		settings: settings,
		log:      log,
		dataset:  ds,
		adapter:  adapter,
		searcher: searcher,
	}, nil
}

// newLogger is silent unless --verbose is set.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().
		Level(zerolog.DebugLevel)
}

// newServerLogger always logs requests as JSON; --verbose adds debug lines.
func newServerLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
}
