//go:build unit

package claim_test

import (
	"regexp"
	"testing"
	"time"

	"local-deals/internal/domain/claim"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeFormat = regexp.MustCompile(`^[A-HJKMNP-Z2-9]{4}-[A-HJKMNP-Z2-9]{4}-[A-HJKMNP-Z2-9]{4}$`)

func TestGenerateCode(t *testing.T) {
	seen := make(map[claim.Code]struct{})
	for i := 0; i < 500; i++ {
		code, err := claim.GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, codeFormat, code.String())
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 500)
}

func TestParseCode(t *testing.T) {
	code, err := claim.ParseCode("abcd efgh-jkmn")
	require.NoError(t, err)
	assert.Equal(t, claim.Code("ABCD-EFGH-JKMN"), code)

	_, err = claim.ParseCode("ABCD-EFGH")
	assert.ErrorIs(t, err, claim.ErrInvalidCode)

	_, err = claim.ParseCode("ABCD-EFGH-JKM0")
	assert.ErrorIs(t, err, claim.ErrInvalidCode)
}

func TestClaim_RedeemIsOneWay(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c, err := claim.NewClaim(uuid.New(), uuid.New(), now)
	require.NoError(t, err)
	assert.False(t, c.IsRedeemed())

	require.NoError(t, c.Redeem(now.Add(time.Hour)))
	assert.True(t, c.IsRedeemed())
	first := *c.RedeemedAt()

	err = c.Redeem(now.Add(2 * time.Hour))
	assert.ErrorIs(t, err, claim.ErrAlreadyRedeemed)
	assert.True(t, c.IsRedeemed())
	assert.Equal(t, first, *c.RedeemedAt())
}
