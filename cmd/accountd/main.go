package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/placeguide/account-core/internal/catalog"
	"github.com/placeguide/account-core/internal/config"
	"github.com/placeguide/account-core/internal/credential"
	"github.com/placeguide/account-core/internal/lifecycle"
	"github.com/placeguide/account-core/internal/logger"
	"github.com/placeguide/account-core/internal/media"
	"github.com/placeguide/account-core/internal/model"
	"github.com/placeguide/account-core/internal/profileimage"
	"github.com/placeguide/account-core/internal/repository/postgres"
	"github.com/placeguide/account-core/internal/service"
	"github.com/placeguide/account-core/internal/session"
	"github.com/placeguide/account-core/internal/sessionstore"
	storage "github.com/placeguide/account-core/internal/storage/minio"
	"github.com/placeguide/account-core/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	resetRepo := postgres.NewPasswordResetRepository(db)
	placeRepo := postgres.NewPlaceRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	identity := service.NewIdentity(userRepo, resetRepo, refreshTokenRepo, tokenManager, logger, service.IdentityOptions{
		RequireEmailConfirmation: cfg.Identity.RequireEmailConfirmation,
		BcryptCost:               cfg.Identity.BcryptCost,
	})

	sessionStore := sessionstore.NewFileStore(statePath(cfg))

	sessions := session.NewManager(identity, sessionStore, logger,
		session.WithRefreshInterval(cfg.Session.RefreshInterval),
		session.WithCallTimeout(cfg.Session.CallTimeout),
	)
	defer sessions.Close()

	notifier := lifecycle.NewNotifier()
	sessions.Bind(notifier)

	validator := credential.NewValidator(identity, sessions, logger)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	gate := &media.StaticGate{Allow: true}
	picker := &media.FilePicker{}
	pipeline := profileimage.NewPipeline(gate, picker, storageClient, sessions, logger)

	catalogService := catalog.NewService(placeRepo, sessions, logger)

	events, cancelEvents := sessions.Subscribe()
	defer cancelEvents()
	go logAuthEvents(logger, events)

	if status := sessions.Restore(ctx); status == model.StatusAuthenticated {
		logger.Info("session restored", "email", sessions.CurrentProfile().Email)
	}

	logAppVersion()

	go runConsole(ctx, stop, console{
		sessions:  sessions,
		validator: validator,
		pipeline:  pipeline,
		catalog:   catalogService,
		picker:    picker,
		notifier:  notifier,
		logger:    logger,
	})

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	logger.Info("shutdown complete")
}

// statePath resolves the session snapshot location, defaulting to a dotfile
// under the user's home directory.
func statePath(cfg *config.Config) string {
	if cfg.Session.StateFile != "" {
		return cfg.Session.StateFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "placeguide", "session.json")
	}
	return filepath.Join(home, ".placeguide", "session.json")
}

func logAuthEvents(logger *logger.Logger, events <-chan model.AuthEvent) {
	for event := range events {
		if event.Err != nil {
			logger.Info("auth state changed", "status", event.Status, "error", event.Err)
			continue
		}
		if event.Profile != nil {
			logger.Info("auth state changed", "status", event.Status, "email", event.Profile.Email)
			continue
		}
		logger.Info("auth state changed", "status", event.Status)
	}
}

type console struct {
	sessions  *session.Manager
	validator *credential.Validator
	pipeline  *profileimage.Pipeline
	catalog   *catalog.Service
	picker    *media.FilePicker
	notifier  *lifecycle.Notifier
	logger    *logger.Logger
}

// runConsole is a dev harness exposing every account operation on stdin.
func runConsole(ctx context.Context, quit func(), c console) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println(`commands: signup EMAIL PASSWORD | signin EMAIL PASSWORD | signout | reset EMAIL | profile | avatar PATH | places [QUERY] | fg | bg | status | quit`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			quit()
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "signup", "signin":
			if len(fields) != 3 {
				fmt.Println("usage:", fields[0], "EMAIL PASSWORD")
				continue
			}
			mode := model.ModeSignIn
			if fields[0] == "signup" {
				mode = model.ModeSignUp
			}
			err := c.validator.Submit(ctx, model.CredentialForm{
				Email:    fields[1],
				Password: fields[2],
				Mode:     mode,
			})
			printResult(err)

		case "signout":
			printResult(c.sessions.SignOut(ctx))

		case "reset":
			if len(fields) != 2 {
				fmt.Println("usage: reset EMAIL")
				continue
			}
			printResult(c.validator.RequestPasswordReset(ctx, fields[1]))

		case "profile":
			profile, err := c.sessions.ReloadProfile(ctx)
			if err != nil {
				printResult(err)
				continue
			}
			fmt.Printf("username: %s\nemail: %s\nimage: %s\n",
				profile.Username, profile.Email, profile.ProfileImageURL)

		case "avatar":
			if len(fields) != 2 {
				fmt.Println("usage: avatar PATH")
				continue
			}
			c.picker.Path = fields[1]
			change, err := c.pipeline.ChangeProfileImage(ctx)
			if err != nil {
				printResult(err)
				continue
			}
			if !change.Committed {
				fmt.Println("cancelled")
				continue
			}
			fmt.Println("profile image:", change.URL)

		case "places":
			query := strings.Join(fields[1:], " ")
			places, err := c.catalog.Search(ctx, query, "")
			if err != nil {
				printResult(err)
				continue
			}
			for _, p := range places {
				fmt.Printf("%s [%s] %s\n", p.Title, p.Category, p.Description)
			}
			fmt.Printf("%d place(s)\n", len(places))

		case "fg":
			c.notifier.Publish(model.StateForeground)
			fmt.Println("foreground")

		case "bg":
			c.notifier.Publish(model.StateBackground)
			fmt.Println("background")

		case "status":
			fmt.Println(c.sessions.AuthStatus())

		case "quit", "exit":
			quit()
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func printResult(err error) {
	if err == nil {
		fmt.Println("ok")
		return
	}

	var vErr *model.ValidationError
	var authErr *model.AuthError
	switch {
	case errors.As(err, &vErr):
		fmt.Printf("invalid input: %s\n", vErr)
	case errors.As(err, &authErr):
		fmt.Printf("rejected (%s): %s\n", authErr.Field, authErr.Message)
	default:
		fmt.Println("error:", err)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
