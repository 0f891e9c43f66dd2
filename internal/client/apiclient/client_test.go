//go:build unit

package apiclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"local-deals/internal/client/apiclient"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mutableToken struct{ v atomic.Value }

func (m *mutableToken) Token() string {
	s, _ := m.v.Load().(string)
	return s
}

func TestClient_ReadsTokenOnEveryRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	tokens := &mutableToken{}
	c := apiclient.New(srv.URL+"/api", apiclient.WithTokenSource(tokens))
	ctx := context.Background()

	_, err := c.Cart(ctx)
	require.NoError(t, err)
	tokens.v.Store("abc")
	_, err = c.Cart(ctx)
	require.NoError(t, err)
	tokens.v.Store("")
	_, err = c.Cart(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc", ""}, seen)
}

func TestClient_ValidatesBeforeDispatch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()
	c := apiclient.New(srv.URL)
	ctx := context.Background()

	_, err := c.Register(ctx, apiclient.SignUpRequest{Email: "nope", Password: "secret1", Name: "Sam"})
	assert.ErrorIs(t, err, apiclient.ErrValidation)

	_, err = c.SubmitRating(ctx, apiclient.RatingRequest{BusinessID: uuid.New(), Score: 6})
	assert.ErrorIs(t, err, apiclient.ErrValidation)

	_, err = c.SubmitRating(ctx, apiclient.RatingRequest{BusinessID: uuid.New(), Score: 0})
	assert.ErrorIs(t, err, apiclient.ErrValidation)

	err = c.UpdateCartQuantity(ctx, uuid.New(), 0)
	assert.ErrorIs(t, err, apiclient.ErrValidation)

	_, err = c.CreateDeal(ctx, apiclient.DealRequest{Title: "t", Description: "d", DiscountValue: "10%"})
	assert.ErrorIs(t, err, apiclient.ErrValidation, "start date and end date are required")

	_, err = c.Upload(ctx, "notes.txt", "text/plain", strings.NewReader("hello"))
	assert.ErrorIs(t, err, apiclient.ErrValidation)

	_, err = c.Upload(ctx, "big.png", "image/png", strings.NewReader(strings.Repeat("x", apiclient.MaxUploadBytes+1)))
	assert.ErrorIs(t, err, apiclient.ErrValidation)

	assert.Zero(t, hits.Load())
}

func TestClient_DecodesErrors(t *testing.T) {
	cases := []struct {
		status  int
		body    string
		want    error
		message string
	}{
		{http.StatusConflict, `{"error":{"message":"deal has reached its claim limit"}}`, apiclient.ErrConflict, "deal has reached its claim limit"},
		{http.StatusNotFound, `{"error":{"message":"claim not found"}}`, apiclient.ErrNotFound, "claim not found"},
		{http.StatusUnauthorized, `{"error":{"message":"User not authenticated"}}`, apiclient.ErrUnauthenticated, "User not authenticated"},
		{http.StatusForbidden, `{"message":"permission denied for view deals_with_details"}`, apiclient.ErrForbidden, "permission denied for view deals_with_details"},
		{http.StatusInternalServerError, `not json`, apiclient.ErrServer, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := apiclient.New(srv.URL).ClaimDeal(context.Background(), uuid.New())

			require.ErrorIs(t, err, tc.want)
			var apiErr *apiclient.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.message, apiclient.Reason(err))
		})
	}
}

func hangUp(w http.ResponseWriter) {
	conn, _, err := w.(http.Hijacker).Hijack()
	if err == nil {
		_ = conn.Close()
	}
}

func TestClient_RetriesIdempotentReadsOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			hangUp(w)
			return
		}
		_, _ = io.WriteString(w, `[{"id":"`+uuid.NewString()+`","name":"Food & Dining","slug":"food-dining","display_order":1}]`)
	}))
	defer srv.Close()

	cats, err := apiclient.New(srv.URL).Categories(context.Background())

	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.EqualValues(t, 2, hits.Load())
}

func TestClient_DoesNotRetryMutations(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		hangUp(w)
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL).ClaimDeal(context.Background(), uuid.New())

	assert.ErrorIs(t, err, apiclient.ErrTransport)
	assert.EqualValues(t, 1, hits.Load())
}

func TestClient_CancelledContextIsNotATransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := apiclient.New(srv.URL).Deals(ctx, apiclient.DealQuery{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, apiclient.ErrTransport)
}

func TestClient_ClaimQRCodeReturnsRawBytes(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	claimID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/deal-claims/"+claimID.String()+"/qr", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	got, err := apiclient.New(srv.URL + "/api/").ClaimQRCode(context.Background(), claimID)

	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestClient_UploadSendsMultipartImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "logo.png", hdr.Filename)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"imageUrl":"/uploads/abc.png"}`)
	}))
	defer srv.Close()

	url, err := apiclient.New(srv.URL).Upload(context.Background(), "logo.png", "image/png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.png", url)
}

func TestDealQuery_Values(t *testing.T) {
	v := apiclient.DealQuery{Search: "pizza", SortBy: "discount", Limit: 12}.Values()
	assert.Equal(t, "limit=12&search=pizza&sortBy=discount", v.Encode())
	assert.Empty(t, apiclient.DealQuery{}.Values())
}
