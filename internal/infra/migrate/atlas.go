package migrate

import (
	"context"
	"log/slog"

	"local-deals/internal/pkg/config"
	"local-deals/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Apply runs pending migrations from cfg.Dir with the atlas binary.
func Apply(ctx context.Context, cfg config.MigrateConfig, dsn string) error {
	client, err := atlasexec.NewClient(".", cfg.AtlasPath)
	if err != nil {
		return errs.Wrap(err, "init atlas client")
	}
	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dsn,
		DirURL: cfg.Dir,
	})
	if err != nil {
		return errs.Wrap(err, "apply migrations")
	}
	slog.InfoContext(ctx, "migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
	)
	return nil
}
