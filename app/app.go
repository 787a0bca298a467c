package app

import (
	"database/sql"

	"github.com/inflate-app/feedback-flow/config"
)

type App struct {
	*sql.DB
	config.Config
}
