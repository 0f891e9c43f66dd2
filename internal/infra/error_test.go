//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"local-deals/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr_Classifies(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{"no rows", pgx.ErrNoRows, infra.KindNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "deal_claims_code_key"}, infra.KindDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, infra.KindForeignKeyViolated},
		{"check", &pgconn.PgError{Code: "23514"}, infra.KindCheckViolated},
		{"other", errors.New("boom"), infra.KindDBFailure},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := infra.WrapRepoErr("op failed", c.err)
			assert.True(t, infra.IsKind(err, c.want))
			assert.ErrorIs(t, err, c.err)
		})
	}
}

func TestWrapRepoErr_ExplicitKindWins(t *testing.T) {
	err := infra.WrapRepoErr("missing", errors.New("x"), infra.KindNotFound)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.Equal(t, "deal_claims_code_key", infra.ConstraintName(infra.WrapRepoErr("dup", &pgconn.PgError{Code: "23505", ConstraintName: "deal_claims_code_key"})))
}
