// Package pg connects to PostgreSQL through pgx, applies embedded goose
// migrations and classifies common driver errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if cfg.AutoMigrate {
//		err = pg.Migrate(ctx, pool, cfg, registration.Migrations, "migrations", log)
//	}
package pg
