// Package sqlstore persists notifications, preferences, users and dispatch
// queue items in PostgreSQL.
//
// Statements are built with squirrel using dollar placeholders and executed
// through database/sql, usually on a pgx pool wrapped by pg.OpenDB. The schema
// ships as embedded goose migrations:
//
//	db := pg.OpenDB(pool)
//	if err := pg.Migrate(ctx, db, sqlstore.Migrations, sqlstore.MigrationsDir, cfg, log); err != nil {
//		return err
//	}
//	store := sqlstore.New(db)
//	q, err := queue.New(store, queue.WithNotificationLookup(store))
//
// Claiming uses a single UPDATE with FOR UPDATE SKIP LOCKED, so any number of
// workers can share one database without handing out an item twice.
package sqlstore
