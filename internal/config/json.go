package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// human-readable durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey            string   `json:"token_sign_key"`
		TokenIssuer             string   `json:"token_issuer"`
		TokenAudience           string   `json:"token_audience"`
		TokenDuration           Duration `json:"token_duration"`
		LegacyTokensAcceptUntil string   `json:"legacy_tokens_accept_until"`
		PasswordCost            int      `json:"password_cost"`
		Version                 string   `json:"version"`
		LogLevel                string   `json:"log_level"`

		Bootstrap struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"bootstrap_admin,omitempty"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Revocation struct {
			Backend   string `json:"backend"`
			RedisURL  string `json:"redis_url"`
			CacheSize int    `json:"cache_size"`
		} `json:"revocation,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		GRPCAddress        string   `json:"grpc_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		LoginTimeout       Duration `json:"login_timeout"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
		GRPCPublicMethods  []string `json:"grpc_public_methods"`
		GRPCAdminMethods   []string `json:"grpc_admin_methods"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:            jsonCfg.App.TokenSignKey,
			TokenIssuer:             jsonCfg.App.TokenIssuer,
			TokenAudience:           jsonCfg.App.TokenAudience,
			TokenDuration:           time.Duration(jsonCfg.App.TokenDuration),
			LegacyTokensAcceptUntil: jsonCfg.App.LegacyTokensAcceptUntil,
			PasswordCost:            jsonCfg.App.PasswordCost,
			Version:                 jsonCfg.App.Version,
			LogLevel:                jsonCfg.App.LogLevel,
			Bootstrap: Bootstrap{
				Username: jsonCfg.App.Bootstrap.Username,
				Email:    jsonCfg.App.Bootstrap.Email,
				Password: jsonCfg.App.Bootstrap.Password,
			},
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Revocation: Revocation{
				Backend:   jsonCfg.Storage.Revocation.Backend,
				RedisURL:  jsonCfg.Storage.Revocation.RedisURL,
				CacheSize: jsonCfg.Storage.Revocation.CacheSize,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			GRPCAddress:        jsonCfg.Server.GRPCAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			LoginTimeout:       time.Duration(jsonCfg.Server.LoginTimeout),
			CORSAllowedOrigins: jsonCfg.Server.CORSAllowedOrigins,
			GRPCPublicMethods:  jsonCfg.Server.GRPCPublicMethods,
			GRPCAdminMethods:   jsonCfg.Server.GRPCAdminMethods,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
