package storefront

import (
	"context"
	"strings"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/querycache"
	"local-deals/internal/pkg/qr"

	"github.com/google/uuid"
)

func (s *Storefront) ListMyClaims(ctx context.Context) ([]apiclient.Claim, error) {
	uid, ok := s.currentUser()
	if !ok {
		return []apiclient.Claim{}, nil
	}
	return fetchMine(ctx, s, claimsKey(uid), s.api.MyClaims)
}

// ClaimDeal takes one unit of a deal. The claimed count shows up in every
// listing, so all deal reads are invalidated along with the caller's claims.
func (s *Storefront) ClaimDeal(ctx context.Context, dealID uuid.UUID) (*apiclient.Claim, error) {
	uid, ok := s.currentUser()
	if !ok {
		s.notifier.Error(ctx, "Please sign in to claim deals")
		return nil, apiclient.ErrUnauthenticated
	}
	inv := dealChanged(dealID)
	inv.keys = append(inv.keys, claimsKey(uid))

	var claimed *apiclient.Claim
	err := s.mutate(ctx, mutation{success: "Deal claimed", inv: inv}, func(ctx context.Context) error {
		c, err := s.api.ClaimDeal(ctx, dealID)
		if err != nil {
			return err
		}
		claimed = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// RedeemByCode is irreversible. Only the claims list can change.
func (s *Storefront) RedeemByCode(ctx context.Context, code string) (*apiclient.Redemption, error) {
	var keys []querycache.Key
	if uid, ok := s.currentUser(); ok {
		keys = append(keys, claimsKey(uid))
	}
	var out *apiclient.Redemption
	err := s.mutate(ctx, mutation{
		success: "Code redeemed",
		inv:     invalidation{keys: keys, kinds: []string{KindClaims}},
	}, func(ctx context.Context) error {
		r, err := s.api.Redeem(ctx, code)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClaimQR renders a claim code locally, without a request.
func (s *Storefront) ClaimQR(code string) ([]byte, error) {
	if strings.TrimSpace(code) == "" {
		return nil, &apiclient.ValidationError{Err: errEmptyCode}
	}
	return qr.PNG(code, qr.DefaultSize)
}

func (s *Storefront) ListVerifications(ctx context.Context, dealID uuid.UUID) (*apiclient.Verifications, error) {
	return fetch(ctx, s, verificationsKey(dealID), func(ctx context.Context) (*apiclient.Verifications, error) {
		return s.api.Verifications(ctx, dealID)
	})
}

// VerifyDeal records that the caller confirms the deal is genuine. Repeating
// it succeeds without adding a second attestation.
func (s *Storefront) VerifyDeal(ctx context.Context, dealID uuid.UUID) error {
	if !s.session.IsAuthenticated() {
		s.notifier.Error(ctx, "Please sign in to verify deals")
		return apiclient.ErrUnauthenticated
	}
	return s.mutate(ctx, mutation{
		success: "Thanks for verifying this deal",
		inv:     invalidation{keys: []querycache.Key{verificationsKey(dealID)}},
	}, func(ctx context.Context) error {
		return s.api.VerifyDeal(ctx, dealID)
	})
}
