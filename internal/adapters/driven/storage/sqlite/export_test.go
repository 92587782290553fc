package sqlite

import (
	"embed"

	"github.com/custodia-labs/finsim/internal/adapters/driven/storage/sqlite/migrations"
)

func migrationsFS() embed.FS {
	return migrations.FS
}
