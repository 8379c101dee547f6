package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backends
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseBolt     = "bolt"
)

// Vote limiting policies
const (
	VoteLimitHouse     = "house"
	VoteLimitCandidate = "candidate"
)

// Subcommands
const (
	CommandServe   = "serve"
	CommandSeed    = "seed"
	CommandResults = "results"
	CommandExport  = "export"
)

// SplitCommand takes the leading subcommand off args. Without one the
// command is serve.
func SplitCommand(args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return CommandServe, args, nil
	}
	switch args[0] {
	case CommandServe, CommandSeed, CommandResults, CommandExport:
		return args[0], args[1:], nil
	}
	return "", nil, fmt.Errorf("unknown command %q", args[0])
}

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKey     string
	IPHashSalt   string
	VoteLimit    string
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("house-vote", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL, sqlite file, or bolt data dir")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or bolt)")
	fs.StringVar(&cfg.VoteLimit, "vote-limit", "", "One vote per house or per candidate")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabaseBolt:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case DatabaseSQLite:
			cfg.DatabaseURL = "house-vote.db"
		case DatabaseBolt:
			cfg.DatabaseURL = "data"
		default:
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.VoteLimit == "" {
		cfg.VoteLimit = os.Getenv("VOTE_LIMIT")
		if cfg.VoteLimit == "" {
			cfg.VoteLimit = VoteLimitHouse
		}
	}
	if cfg.VoteLimit != VoteLimitHouse && cfg.VoteLimit != VoteLimitCandidate {
		return Config{}, fmt.Errorf("VOTE_LIMIT must be %q or %q", VoteLimitHouse, VoteLimitCandidate)
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}
