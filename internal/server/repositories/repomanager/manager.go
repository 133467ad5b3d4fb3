package repomanager

import (
	"context"
	"database/sql"

	"github.com/couplediaries/couplediaries/internal/dbx"
	"github.com/couplediaries/couplediaries/internal/server/repositories/cards"
	"github.com/couplediaries/couplediaries/internal/server/repositories/profiles"
	"github.com/couplediaries/couplediaries/internal/server/repositories/refreshtokens"
	"github.com/couplediaries/couplediaries/internal/server/repositories/users"
	"github.com/couplediaries/couplediaries/internal/server/repositories/verifications"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// several of them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Cards(db dbx.DBTX) cards.Repository
}
