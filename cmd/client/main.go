package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/storefront-auth/internal/adapter"
	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: storefront-client [-server URL] [-timeout D] [-token-file PATH] <command>

commands:
  login <username> <password>   obtain a token and store it in the token file
  me                            show the principal of the stored token
  logout                        revoke the stored token and remove the token file
  version                       show the server version
`

func main() {
	level := os.Getenv("CLIENT_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	log := logger.NewLogger("storefront-client", level)

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	client, err := adapter.NewHTTPAuthClient(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client")
	}

	if err = run(context.Background(), client, cfg.TokenFile, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client adapter.AuthClient, tokenFile string, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return errors.New(usage)
		}
		resp, err := client.Login(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		if err = os.WriteFile(tokenFile, []byte(resp.Token+"\n"), 0o600); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		return printJSON(resp.User)

	case "me":
		if err := loadToken(client, tokenFile); err != nil {
			return err
		}
		view, err := client.Me(ctx)
		if err != nil {
			return err
		}
		return printJSON(view)

	case "logout":
		if err := loadToken(client, tokenFile); err != nil {
			return err
		}
		if err := client.Logout(ctx); err != nil {
			return err
		}
		if err := os.Remove(tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove token file: %w", err)
		}
		return nil

	case "version":
		v, err := client.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("server %s\nclient version=%s date=%s commit=%s\n", v, orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func loadToken(client adapter.AuthClient, tokenFile string) error {
	raw, err := os.ReadFile(tokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return errors.New("not logged in")
	}
	if err != nil {
		return fmt.Errorf("read token file: %w", err)
	}
	client.SetToken(strings.TrimSpace(string(raw)))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
