package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/actuallystonmai/catalog-service/internal/app"
	"github.com/actuallystonmai/catalog-service/internal/config"
	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/loader"
	"github.com/actuallystonmai/catalog-service/internal/logging"
	"github.com/actuallystonmai/catalog-service/internal/repository"
	"github.com/actuallystonmai/catalog-service/seeds"
	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

// Env is bound into every command's Run.
type Env struct {
	Ctx    context.Context
	Config *config.Config
	Logger *zap.Logger
}

type CLI struct {
	Provision  ProvisionCmd  `cmd:"" help:"Create every catalog index in the search backend."`
	Seed       SeedCmd       `cmd:"" help:"Index a generated demo catalog."`
	Load       LoadCmd       `cmd:"" help:"Copy the catalog from Postgres into the search backend."`
	Migrate    MigrateCmd    `cmd:"" help:"Apply or drop the Postgres content schema."`
	FlushCache FlushCacheCmd `cmd:"" name:"flush-cache" help:"Drop cached responses."`
}

type ProvisionCmd struct{}

func (ProvisionCmd) Run(env *Env) error {
	backend, err := app.NewSearch(env.Ctx, env.Config, env.Logger, nil)
	if err != nil {
		return err
	}
	defer backend.Close()
	env.Logger.Info("indices ready", zap.Int("count", len(domain.Indices)))
	return nil
}

type SeedCmd struct {
	Force bool `help:"Seed even when the movies index already has documents."`
}

func (c SeedCmd) Run(env *Env) error {
	backend, err := app.NewSearch(env.Ctx, env.Config, env.Logger, nil)
	if err != nil {
		return err
	}
	defer backend.Close()

	if c.Force {
		return seeds.Setup(env.Ctx, backend, env.Logger)
	}
	return seeds.Check(env.Ctx, backend, env.Logger)
}

type LoadCmd struct {
	BatchSize int    `default:"500" help:"Rows per page read from Postgres."`
	Migrate   string `placeholder:"FILE" help:"Apply this SQL file before loading."`
}

func (c LoadCmd) Run(env *Env) error {
	pool, err := repository.NewPool(env.Ctx, env.Config.DatabaseURL, env.Config.DBPoolSize)
	if err != nil {
		return err
	}
	defer pool.Close()
	repo := repository.New(pool)

	if c.Migrate != "" {
		if err := repo.Migrate(env.Ctx, c.Migrate); err != nil {
			return err
		}
	}

	films, err := repo.Count(env.Ctx, "film_work")
	if err != nil {
		return err
	}
	if films == 0 {
		env.Logger.Warn("content schema has no films, nothing to load")
		return nil
	}

	backend, err := app.NewSearch(env.Ctx, env.Config, env.Logger, nil)
	if err != nil {
		return err
	}
	defer backend.Close()

	counts, err := loader.New(repo, backend, c.BatchSize, env.Logger).Run(env.Ctx)
	if err != nil {
		return err
	}
	for index, n := range counts {
		fmt.Printf("%s\t%d\n", index, n)
	}
	return nil
}

type MigrateCmd struct {
	Direction string `arg:"" enum:"up,down" help:"up or down."`
	Dir       string `default:"migrations" type:"existingdir" help:"Directory holding the SQL files."`
}

func (c MigrateCmd) Run(env *Env) error {
	pool, err := repository.NewPool(env.Ctx, env.Config.DatabaseURL, env.Config.DBPoolSize)
	if err != nil {
		return err
	}
	defer pool.Close()

	path := fmt.Sprintf("%s/content.%s.sql", c.Dir, c.Direction)
	if err := repository.New(pool).Migrate(env.Ctx, path); err != nil {
		return err
	}
	env.Logger.Info("migration applied", zap.String("file", path))
	return nil
}

type FlushCacheCmd struct {
	Index []string `arg:"" optional:"" help:"Indices to flush (movies, persons, genres); all when omitted."`
}

func (c FlushCacheCmd) Run(env *Env) error {
	indices := make([]domain.Index, 0, len(c.Index))
	for _, name := range c.Index {
		index := domain.Index(name)
		if !slices.Contains(domain.Indices, index) {
			return fmt.Errorf("unknown index %q", name)
		}
		indices = append(indices, index)
	}

	a, err := app.New(env.Ctx, env.Config, env.Logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Catalog.Flush(env.Ctx, indices...)
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d keys\n", n)
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("catalogctl"),
		kong.Description("Operate the movies catalog backends."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)

	logger, err := logging.New(cfg.LogLevel, cfg.Debug)
	kctx.FatalIfErrorf(err)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.FatalIfErrorf(kctx.Run(&Env{Ctx: ctx, Config: cfg, Logger: logger}))
}
