// Package pg connects the notification service to PostgreSQL.
//
// Connect opens a pgx/v5 pool with startup retries. OpenDB bridges that pool
// to database/sql, which the squirrel-built queries in pkg/sqlstore and the
// goose migrator both use. Migrate applies migrations from an fs.FS, normally
// the one embedded in pkg/sqlstore:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	db := pg.OpenDB(pool)
//	if err := pg.Migrate(ctx, db, sqlstore.Migrations, sqlstore.MigrationsDir, cfg, log); err != nil {
//	    return err
//	}
//
// IsNotFoundError, IsDuplicateKeyError and IsForeignKeyViolationError classify
// driver errors without leaking pgconn types into callers.
package pg
