package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasnap/pkg/config"
	"github.com/matzehuels/canvasnap/pkg/scene"
	"github.com/matzehuels/canvasnap/pkg/server"
	"github.com/matzehuels/canvasnap/pkg/session"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Session and scene storage backends are chosen in the [server] section of the
config file. With the redis session store several instances can serve the same
drag sessions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.Default().Server.Addr, "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	sessions, err := c.openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer sessions.Close()

	scenes, err := c.openSceneStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer scenes.Close()

	logger := loggerFromContext(ctx)
	mgr := session.NewManager(sessions,
		session.WithTTL(cfg.Server.SessionTTL.Duration),
		session.WithDefaults(cfg.Snap),
		session.WithKillSwitch(cfg.KillSwitch()),
		session.WithManagerLogger(logger),
	)
	srv := server.New(server.Options{Sessions: mgr, Scenes: scenes, Logger: logger})

	if cfg.DisableSnap {
		printWarning("Snapping is disabled by configuration")
	}
	printKeyValue("Sessions", cfg.Server.SessionStore)
	printKeyValue("Scenes", cfg.Server.SceneStore)
	printKeyValue("Listening", cfg.Server.Addr)

	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return ctx.Err()
}

func (c *CLI) openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Server.SessionStore {
	case config.StoreRedis:
		spinner := newSpinnerWithContext(ctx, "Connecting to Redis at "+cfg.Server.RedisAddr+"...")
		spinner.Start()
		store, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Server.RedisAddr,
			Password: cfg.Server.RedisPassword,
		})
		if err != nil {
			spinner.StopWithError("Redis unavailable")
			return nil, err
		}
		spinner.StopWithSuccess("Connected to Redis")
		return store, nil
	case config.StoreFile:
		return session.NewFileStore(cfg.Server.SessionDir)
	default:
		return session.NewMemoryStore(), nil
	}
}

func (c *CLI) openSceneStore(ctx context.Context, cfg *config.Config) (scene.Store, error) {
	if cfg.Server.SceneStore != config.StoreMongo {
		return scene.NewFileStore(cfg.Server.SceneDir)
	}

	spinner := newSpinnerWithContext(ctx, "Connecting to MongoDB...")
	spinner.Start()
	store, err := scene.NewMongoStore(ctx, scene.MongoConfig{
		URI:      cfg.Server.MongoURI,
		Database: cfg.Server.MongoDatabase,
	})
	if err != nil {
		spinner.StopWithError("MongoDB unavailable")
		return nil, err
	}
	spinner.StopWithSuccess("Connected to MongoDB")
	return store, nil
}
