package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/officehours/internal/profile"
	"github.com/hrygo/officehours/server"
)

// Version is set at build time via -ldflags "-X main.Version=X.Y.Z".
var Version = "0.1.0-dev"

var (
	rootCmd = &cobra.Command{
		Use:   "officehours",
		Short: `Answers whether an office can be contacted right now, based on its work rules and local time.`,
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile := loadProfile()
			setupLogger(instanceProfile)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			components, err := server.NewComponents(ctx, instanceProfile)
			if err != nil {
				slog.Error("failed to create components", "error", err)
				return
			}

			s, err := server.NewServer(ctx, instanceProfile, components)
			if err != nil {
				slog.Error("failed to create server", "error", err)
				components.Close()
				return
			}

			c := make(chan os.Signal, 1)
			// Trigger graceful shutdown on SIGINT or SIGTERM.
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)

			if err := s.Start(ctx); err != nil {
				slog.Error("failed to start server", "error", err)
				components.Close()
				return
			}

			printGreetings(instanceProfile)

			<-c
			s.Shutdown(ctx)
		},
	}
)

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "memory")
	viper.SetDefault("port", 8081)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory, used by the sqlite driver")
	rootCmd.PersistentFlags().String("driver", "memory", "knowledge store driver: memory, sqlite or postgres")
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().String("time-provider", "", `current time source, "timezonedb" or "system"`)

	for _, name := range []string{"mode", "addr", "port", "data", "driver", "dsn", "time-provider"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("officehours")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(regionsCmd)
}

// loadProfile builds the profile from flags, OFFICEHOURS_* variables and .env.
func loadProfile() *profile.Profile {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: Version,
	}
	instanceProfile.FromEnv()
	if tp := viper.GetString("time-provider"); tp != "" {
		instanceProfile.TimeProvider = tp
	}
	return instanceProfile
}

func setupLogger(p *profile.Profile) {
	var handler slog.Handler
	if p.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

func printGreetings(p *profile.Profile) {
	fmt.Printf("officehours %s started successfully!\n", p.Version)
	if p.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
		if p.DSN != "" {
			fmt.Fprintf(os.Stderr, "Database: %s\n", p.DSN)
		}
	}
	addr := p.Addr
	if addr == "" {
		addr = "localhost"
	}
	fmt.Printf("Server running on %s:%d (driver: %s)\n", addr, p.Port, p.Driver)
}

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
