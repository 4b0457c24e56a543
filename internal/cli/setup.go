package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/answerfinder/answerfinder/internal/corpus"
	"github.com/answerfinder/answerfinder/internal/engine"
	"github.com/answerfinder/answerfinder/internal/model"
	"github.com/answerfinder/answerfinder/internal/state"
)

// loadConfig builds the runtime configuration: defaults, then config
// file/environment overrides.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.State.Path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		cfg.State.Path = filepath.Join(dir, "state.json")
	}

	cfg.Output.Verbose = verbose || cfg.Output.Verbose
	return cfg, nil
}

// buildEngine loads the corpus and state stores and wires the engine.
func buildEngine(cfg *model.Config) (*engine.Engine, *corpus.Store, *state.Store, error) {
	var corp *corpus.Corpus
	if cfg.Corpus.Path != "" {
		var err error
		if strings.HasSuffix(cfg.Corpus.Path, ".html") || strings.HasSuffix(cfg.Corpus.Path, ".htm") {
			corp, err = loadHTMLCorpus(cfg.Corpus.Path)
		} else {
			corp, err = corpus.Load(cfg.Corpus.Path)
		}
		if err != nil {
			return nil, nil, nil, err
		}
	}

	corpusStore := corpus.NewStore(corp)

	stateStore, err := state.NewStore(cfg.State.Path)
	if err != nil {
		return nil, nil, nil, err
	}

	return engine.New(cfg, corpusStore, stateStore), corpusStore, stateStore, nil
}

func loadHTMLCorpus(path string) (*corpus.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return corpus.ParseHTML(f)
}
