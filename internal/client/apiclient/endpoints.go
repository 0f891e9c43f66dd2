package apiclient

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"local-deals/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxUploadBytes mirrors the server's upload limit.
const MaxUploadBytes = 6 << 20

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query, out: out})
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, request{method: method, path: path, body: body, out: out})
}

// Auth

func (c *Client) Register(ctx context.Context, req SignUpRequest) (*User, error) {
	var u User
	if err := c.call(ctx, http.MethodPost, "/auth/register", &req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, req SignInRequest) (*Session, error) {
	var s Session
	if err := c.call(ctx, http.MethodPost, "/auth/login", &req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	var s Session
	if err := c.call(ctx, http.MethodPost, "/auth/refresh", &RefreshRequest{RefreshToken: refreshToken}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Businesses

func (c *Client) MyBusiness(ctx context.Context) (*Business, error) {
	var b Business
	if err := c.get(ctx, "/business/me", nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) Business(ctx context.Context, id uuid.UUID) (*Business, error) {
	var b Business
	if err := c.get(ctx, "/businesses/"+id.String(), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) RegisterBusiness(ctx context.Context, req BusinessRequest) (*BusinessRegistration, error) {
	var r BusinessRegistration
	if err := c.call(ctx, http.MethodPost, "/business", &req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Deals

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Deals(ctx context.Context, q DealQuery) ([]Deal, error) {
	var out []Deal
	if err := c.get(ctx, "/deals", q.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TrendingDeals(ctx context.Context, limit int) ([]Deal, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var out []Deal
	if err := c.get(ctx, "/deals/trending", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Deal(ctx context.Context, id uuid.UUID) (*Deal, error) {
	var d Deal
	if err := c.get(ctx, "/deals/"+id.String(), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) CreateDeal(ctx context.Context, req DealRequest) (uuid.UUID, error) {
	var created Created
	if err := c.call(ctx, http.MethodPost, "/deals", &req, &created); err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

func (c *Client) UpdateDeal(ctx context.Context, id uuid.UUID, patch DealPatch) error {
	return c.call(ctx, http.MethodPut, "/deals/"+id.String(), &patch, nil)
}

func (c *Client) DeleteDeal(ctx context.Context, id uuid.UUID) error {
	return c.call(ctx, http.MethodDelete, "/deals/"+id.String(), nil, nil)
}

func (c *Client) ReportDeal(ctx context.Context, dealID uuid.UUID, reason string) (uuid.UUID, error) {
	var created Created
	if err := c.call(ctx, http.MethodPost, "/deals/"+dealID.String()+"/report", &ReportRequest{Reason: reason}, &created); err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

// Cart and wishlist

func (c *Client) Cart(ctx context.Context) ([]CartItem, error) {
	var out []CartItem
	if err := c.get(ctx, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToCart(ctx context.Context, dealID uuid.UUID) (uuid.UUID, error) {
	var created Created
	if err := c.call(ctx, http.MethodPost, "/cart", &CartAddRequest{DealID: dealID, Quantity: 1}, &created); err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

func (c *Client) UpdateCartQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return c.call(ctx, http.MethodPut, "/cart/"+itemID.String(), &QuantityRequest{Quantity: quantity}, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, itemID uuid.UUID) error {
	return c.call(ctx, http.MethodDelete, "/cart/"+itemID.String(), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/cart/clear", nil, nil)
}

func (c *Client) Wishlist(ctx context.Context) ([]WishlistItem, error) {
	var out []WishlistItem
	if err := c.get(ctx, "/wishlist", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToWishlist(ctx context.Context, dealID uuid.UUID) error {
	return c.call(ctx, http.MethodPost, "/wishlist", &WishlistAddRequest{DealID: dealID}, nil)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, dealID uuid.UUID) error {
	return c.call(ctx, http.MethodDelete, "/wishlist/"+dealID.String(), nil, nil)
}

// Claims and verifications

func (c *Client) MyClaims(ctx context.Context) ([]Claim, error) {
	var out []Claim
	if err := c.get(ctx, "/deal-claims/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ClaimDeal(ctx context.Context, dealID uuid.UUID) (*Claim, error) {
	var cl Claim
	if err := c.call(ctx, http.MethodPost, "/deal-claims/"+dealID.String(), nil, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

func (c *Client) Redeem(ctx context.Context, code string) (*Redemption, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, invalid("redemption code is required")
	}
	var r Redemption
	if err := c.call(ctx, http.MethodPost, "/deal-claims/redeem/"+url.PathEscape(code), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ClaimQRCode fetches the server-rendered PNG for one of the caller's claims.
func (c *Client) ClaimQRCode(ctx context.Context, claimID uuid.UUID) ([]byte, error) {
	var png []byte
	if err := c.get(ctx, "/deal-claims/"+claimID.String()+"/qr", nil, &png); err != nil {
		return nil, err
	}
	return png, nil
}

func (c *Client) Verifications(ctx context.Context, dealID uuid.UUID) (*Verifications, error) {
	var v Verifications
	if err := c.get(ctx, "/deals/"+dealID.String()+"/verifications", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) VerifyDeal(ctx context.Context, dealID uuid.UUID) error {
	return c.call(ctx, http.MethodPost, "/deals/"+dealID.String()+"/verify", nil, nil)
}

// Ratings

func (c *Client) Ratings(ctx context.Context, businessID uuid.UUID, cursor string) (*RatingPage, error) {
	var q url.Values
	if cursor != "" {
		q = url.Values{"cursor": {cursor}}
	}
	var page RatingPage
	if err := c.get(ctx, "/ratings/business/"+businessID.String(), q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) RatingSummary(ctx context.Context, businessID uuid.UUID) (*RatingSummary, error) {
	var s RatingSummary
	if err := c.get(ctx, "/ratings/business/"+businessID.String()+"/summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) SubmitRating(ctx context.Context, req RatingRequest) (uuid.UUID, error) {
	var created Created
	if err := c.call(ctx, http.MethodPost, "/ratings", &req, &created); err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

// Admin

func (c *Client) BusinessesForReview(ctx context.Context, status string) ([]Business, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var out []Business
	if err := c.get(ctx, "/admin/businesses", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetBusinessStatus(ctx context.Context, id uuid.UUID, status string) error {
	return c.call(ctx, http.MethodPatch, "/admin/businesses/"+id.String(), &VerificationStatusRequest{Status: status}, nil)
}

func (c *Client) Reports(ctx context.Context, status string) ([]Report, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var out []Report
	if err := c.get(ctx, "/admin/reports", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	return c.call(ctx, http.MethodPatch, "/admin/reports/"+id.String(), &ReportStatusRequest{Status: status}, nil)
}

// Upload sends an image as multipart field "image". Non-images and files over
// MaxUploadBytes are rejected without a request.
func (c *Client) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", invalid("only image files are accepted")
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", errs.Wrap(err, "read upload")
	}
	if len(data) > MaxUploadBytes {
		return "", invalid("image must be 6MB or smaller")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+escapeQuotes(filename)+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", errs.Wrap(err, "build multipart")
	}
	if _, err := part.Write(data); err != nil {
		return "", errs.Wrap(err, "build multipart")
	}
	if err := mw.Close(); err != nil {
		return "", errs.Wrap(err, "build multipart")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", errs.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var out Upload
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
