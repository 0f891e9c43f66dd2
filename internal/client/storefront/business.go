package storefront

import (
	"context"
	"io"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/querycache"

	"github.com/google/uuid"
)

func (s *Storefront) GetBusiness(ctx context.Context, id uuid.UUID) (*apiclient.Business, error) {
	return fetch(ctx, s, businessKey(id), func(ctx context.Context) (*apiclient.Business, error) {
		return s.api.Business(ctx, id)
	})
}

// RegisterBusiness creates the caller's business. A customer is promoted by
// the server, and the new token is adopted so later requests carry the role.
func (s *Storefront) RegisterBusiness(ctx context.Context, req apiclient.BusinessRequest) (*apiclient.Business, error) {
	var out *apiclient.Business
	err := s.mutate(ctx, mutation{success: "Business registered"}, func(ctx context.Context) error {
		reg, err := s.api.RegisterBusiness(ctx, req)
		if err != nil {
			return err
		}
		out = reg.Business
		if reg.Token == "" || reg.User == nil {
			return nil
		}
		return s.session.UpdateSession(ctx, &apiclient.Session{
			Token:        reg.Token,
			RefreshToken: reg.RefreshToken,
			User:         reg.User,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Storefront) CreateDeal(ctx context.Context, req apiclient.DealRequest) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.mutate(ctx, mutation{success: "Deal created", inv: dealChanged(uuid.Nil)}, func(ctx context.Context) error {
		created, err := s.api.CreateDeal(ctx, req)
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *Storefront) UpdateDeal(ctx context.Context, id uuid.UUID, patch apiclient.DealPatch) error {
	return s.mutate(ctx, mutation{success: "Deal updated", inv: dealChanged(id)}, func(ctx context.Context) error {
		return s.api.UpdateDeal(ctx, id, patch)
	})
}

func (s *Storefront) DeleteDeal(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, mutation{success: "Deal deleted", inv: dealChanged(id)}, func(ctx context.Context) error {
		return s.api.DeleteDeal(ctx, id)
	})
}

func (s *Storefront) ReportDeal(ctx context.Context, dealID uuid.UUID, reason string) error {
	return s.mutate(ctx, mutation{
		success: "Report submitted",
		inv:     invalidation{kinds: []string{KindAdmin}},
	}, func(ctx context.Context) error {
		_, err := s.api.ReportDeal(ctx, dealID, reason)
		return err
	})
}

// UploadImage returns the public URL of the stored image.
func (s *Storefront) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	var url string
	err := s.mutate(ctx, mutation{}, func(ctx context.Context) error {
		u, err := s.api.Upload(ctx, filename, contentType, r)
		if err != nil {
			return err
		}
		url = u
		return nil
	})
	return url, err
}

// Admin review queues.

func (s *Storefront) BusinessesForReview(ctx context.Context, status string) ([]apiclient.Business, error) {
	return fetch(ctx, s, querycache.K(KindAdmin, "businesses?"+status), func(ctx context.Context) ([]apiclient.Business, error) {
		return s.api.BusinessesForReview(ctx, status)
	})
}

func (s *Storefront) SetBusinessStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.mutate(ctx, mutation{
		success: "Business updated",
		inv:     invalidation{keys: []querycache.Key{businessKey(id)}, kinds: []string{KindAdmin}},
	}, func(ctx context.Context) error {
		return s.api.SetBusinessStatus(ctx, id, status)
	})
}

func (s *Storefront) Reports(ctx context.Context, status string) ([]apiclient.Report, error) {
	return fetch(ctx, s, querycache.K(KindAdmin, "reports?"+status), func(ctx context.Context) ([]apiclient.Report, error) {
		return s.api.Reports(ctx, status)
	})
}

func (s *Storefront) SetReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.mutate(ctx, mutation{
		success: "Report updated",
		inv:     invalidation{kinds: []string{KindAdmin}},
	}, func(ctx context.Context) error {
		return s.api.SetReportStatus(ctx, id, status)
	})
}
