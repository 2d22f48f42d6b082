package queries

import (
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gitlab.com/missiondax-platform/ledger_api/config"
)

// Repo holds the database cluster handles: one writer and one reader
// connection, both usable as plain gorm handles
type Repo struct {
	Conn       *gorm.DB
	ConnReader *gorm.DB
}

var repo *Repo

// Init connects the repo to the configured database cluster
func Init(cfg config.DatabaseClusterConfig) *Repo {
	repo = &Repo{
		Conn:       connect(cfg.Writer),
		ConnReader: connect(cfg.Reader),
	}
	return repo
}

// GetRepo returns the active repo instance
func GetRepo() *Repo {
	return repo
}

func connect(cfg config.DatabaseConfig) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s application_name=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Name, cfg.SSLmode, cfg.ApplicationName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Str("section", "queries").Str("db", cfg.Name).Msg("Unable to connect to database")
	}
	return db
}

// IsUniqueViolation reports whether the error is a postgres unique
// constraint violation, optionally on a specific constraint
func IsUniqueViolation(err error, constraint string) bool {
	pgerr, ok := err.(*pgconn.PgError)
	if !ok || pgerr == nil {
		return false
	}
	if pgerr.Code != "23505" {
		return false
	}
	return constraint == "" || pgerr.ConstraintName == constraint
}
