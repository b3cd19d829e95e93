package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/felores/agent-twitter-client/internal/chat"
	"github.com/felores/agent-twitter-client/internal/config"
	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
	"github.com/felores/agent-twitter-client/internal/sites/twitter"
	"github.com/felores/agent-twitter-client/internal/storage"
	"github.com/felores/agent-twitter-client/internal/thread"
	"github.com/felores/agent-twitter-client/internal/ui/telegram"
)

// stateKey is the conversation slot the CLI chat command uses.
const stateKey = "default"

func main() {
	godotenv.Load()

	app := &cli.App{
		Name:  "atc",
		Usage: "authenticated client for thread reconstruction and Grok chat",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to TOML config file"},
		},
		Commands: []*cli.Command{
			{
				Name:      "thread",
				Usage:     "reconstruct a full thread from a seed tweet id",
				ArgsUsage: "<tweet-id>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "known", Usage: "known tweet ids belonging to the thread"},
					&cli.IntFlag{Name: "scan-limit", Value: -1, Usage: "timeline tweets to scan (0 disables the scan)"},
				},
				Action: runThread,
			},
			{
				Name:      "chat",
				Usage:     "ask Grok a question",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "followup", Aliases: []string{"f"}, Usage: "continue the previous conversation"},
				},
				Action: runChat,
			},
			{
				Name:      "whoami",
				Usage:     "fetch a profile to verify the configured cookies work",
				ArgsUsage: "<username>",
				Action:    runWhoami,
			},
			{
				Name:   "relay",
				Usage:  "run the Telegram chat relay",
				Action: runRelay,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type env struct {
	cfg    *config.Config
	client *twitter.Client
	log    zerolog.Logger
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	client, err := twitter.NewClient(twitter.Config{
		Cookies:           cfg.Cookies,
		BaseURL:           cfg.API.BaseURL,
		UserAgent:         cfg.API.UserAgent,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, client: client, log: logger}, nil
}

func (e *env) stateStore(ctx context.Context) (ports.StateStore, error) {
	if e.cfg.Storage.DatabaseURL != "" {
		store, err := storage.NewPostgresStorage(ctx, e.cfg.Storage.DatabaseURL)
		if err == nil {
			e.log.Debug().Msg("using postgres state store")
			return store, nil
		}
		e.log.Warn().Err(err).Msg("postgres unavailable, falling back to JSON state file")
	}
	return storage.NewJSONStorage(e.cfg.Storage.StatePath)
}

func runThread(c *cli.Context) error {
	seedID := c.Args().First()
	if seedID == "" {
		return cli.Exit("usage: atc thread <tweet-id>", 1)
	}

	e, err := setup(c)
	if err != nil {
		return err
	}

	scanLimit := c.Int("scan-limit")
	if scanLimit < 0 {
		scanLimit = e.cfg.Thread.ScanLimit
	}

	assembler := thread.NewAssembler(e.client, e.client, e.log)
	tweets, err := assembler.Assemble(c.Context, seedID, c.StringSlice("known"), scanLimit)
	if err != nil {
		return err
	}

	fmt.Println("Thread URLs in order:")
	for i, t := range tweets {
		fmt.Printf("%d. %s\n", i+1, t.Permalink())
	}
	return nil
}

func runChat(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		fmt.Println("Usage:")
		fmt.Println("  Ask question:     atc chat \"your question here\"")
		fmt.Println("  Ask follow-up:    atc chat -f \"your follow-up question\"")
		return nil
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	store, err := e.stateStore(c.Context)
	if err != nil {
		return err
	}

	session := chat.NewSession(e.client, e.log)

	var turn *domain.Turn
	if c.Bool("followup") {
		state, err := store.Load(c.Context, stateKey)
		if err != nil {
			return err
		}
		if state != nil {
			fmt.Println("Continuing previous conversation...")
			turn, err = session.Continue(c.Context, *state, query)
		} else {
			fmt.Println("No previous conversation found. Starting new conversation...")
			turn, err = session.Start(c.Context, query)
		}
		if err != nil {
			return err
		}
	} else {
		fmt.Println("Starting new conversation...")
		turn, err = session.Start(c.Context, query)
		if err != nil {
			return err
		}
	}

	printTurn(turn)
	return store.Save(c.Context, stateKey, turn.State())
}

func printTurn(turn *domain.Turn) {
	fmt.Println("\nGrok:", turn.Message)
	if len(turn.Citations) > 0 {
		fmt.Println("\nSources:")
		for i, cit := range turn.Citations {
			fmt.Printf("%d. %s\n", i+1, cit.URL)
		}
	}
	if turn.RateLimit != nil {
		fmt.Println("\nRate limit:", turn.RateLimit.Message)
	}
}

func runWhoami(c *cli.Context) error {
	username := c.Args().First()
	if username == "" {
		return cli.Exit("usage: atc whoami <username>", 1)
	}

	e, err := setup(c)
	if err != nil {
		return err
	}

	profile, err := e.client.GetProfile(c.Context, username)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("profile %s not found", username)
	}

	fmt.Printf("@%s (%s)\n", profile.Username, profile.Name)
	fmt.Printf("followers: %d  following: %d  tweets: %d\n", profile.Followers, profile.Following, profile.Tweets)
	return nil
}

func runRelay(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	if e.cfg.Telegram.Token == "" || e.cfg.Telegram.ChatID == "" {
		return fmt.Errorf("telegram token and chat id must be configured")
	}

	store, err := e.stateStore(c.Context)
	if err != nil {
		return err
	}

	session := chat.NewSession(e.client, e.log)
	relay, err := telegram.NewRelay(e.cfg.Telegram.Token, e.cfg.Telegram.ChatID, session, store, e.log)
	if err != nil {
		return err
	}

	e.log.Info().Msg("telegram relay running")
	return relay.Listen(c.Context)
}
