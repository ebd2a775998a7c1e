package main

import (
	"context"
	"flag"

	"legacy_m/pkg/core/corpus"
	"legacy_m/pkg/core/store"
	"legacy_m/pkg/logger"

	"github.com/joho/godotenv"
)

// loadcorpus ingests confession source texts (YAML, HTML or Markdown files)
// into the passages table. Run once per corpus update; the API server reads
// the table at startup.
func main() {
	godotenv.Load()
	log := logger.New()

	dir := flag.String("dir", "resources/corpus", "directory with source text files")
	flag.Parse()

	passages, err := corpus.LoadDirectory(*dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("load corpus files")
	}
	if len(passages) == 0 {
		log.Fatal().Str("dir", *dir).Msg("no passages found")
	}

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	repo := store.NewPassagesRepo(store.GetPool())
	if err := repo.SavePassages(ctx, passages); err != nil {
		log.Fatal().Err(err).Msg("save passages")
	}

	byConfession := corpus.New(passages)
	log.Info().
		Int("passages", len(passages)).
		Strs("confessions", byConfession.Confessions()).
		Msg("corpus ingested")
}
