package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cadalt0/Space/internal/model"
)

// APIClient is the HTTP backend of Store, speaking the server's JSON
// envelopes.  400 and 404 responses are classified into ErrValidation and
// ErrNotFound wrapped around the server's message; anything else surfaces as
// a plain error with the status attached.
type APIClient struct {
	base string
	http *http.Client
}

// NewAPIClient builds a client against the given base URL; an empty baseURL
// falls back to SPACE_API_URL and then localhost.
func NewAPIClient(baseURL string) *APIClient {
	if baseURL == "" {
		baseURL = os.Getenv("SPACE_API_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &APIClient{
		base: baseURL,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

var _ Store = (*APIClient)(nil)

type apiError struct {
	Error string `json:"error"`
}

// do performs one request and decodes the success envelope into out.  The
// returned status lets upserts distinguish created from updated.
func (c *APIClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return resp.StatusCode, fmt.Errorf("decode response: %w", err)
			}
		}
		return resp.StatusCode, nil
	}

	var apiErr apiError
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	msg := apiErr.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return resp.StatusCode, fmt.Errorf("%s: %w", msg, ErrValidation)
	case http.StatusNotFound:
		return resp.StatusCode, fmt.Errorf("%s: %w", msg, ErrNotFound)
	default:
		return resp.StatusCode, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}
}

// withKeys copies the payload and overlays the required keys, leaving the
// caller's map untouched.
func withKeys(fields map[string]any, keys map[string]any) map[string]any {
	merged := make(map[string]any, len(fields)+len(keys))
	for k, v := range fields {
		merged[k] = v
	}
	for k, v := range keys {
		merged[k] = v
	}
	return merged
}

// --- SNS users ---

func (c *APIClient) UpsertUser(ctx context.Context, email, snsID string, fields map[string]any) (*model.User, bool, error) {
	var env struct {
		User *model.User `json:"user"`
	}
	body := withKeys(fields, map[string]any{"email": email, "sns_id": snsID})
	status, err := c.do(ctx, http.MethodPost, "/api/sns", body, &env)
	if err != nil {
		return nil, false, err
	}
	return env.User, status == http.StatusCreated, nil
}

func (c *APIClient) GetUser(ctx context.Context, email string) (*model.User, error) {
	var env struct {
		User *model.User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/sns/"+url.PathEscape(email), nil, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *APIClient) ListUsers(ctx context.Context) ([]*model.User, error) {
	var env struct {
		Users []*model.User `json:"users"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/sns", nil, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}

func (c *APIClient) PatchUser(ctx context.Context, email string, fields map[string]any) (*model.User, error) {
	var env struct {
		User *model.User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodPatch, "/api/sns/"+url.PathEscape(email), fields, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

// --- Spaces ---

func (c *APIClient) UpsertSpace(ctx context.Context, spaceID string, fields map[string]any) (*model.Space, bool, error) {
	var env struct {
		Space *model.Space `json:"space"`
	}
	body := withKeys(fields, map[string]any{"spaceId": spaceID})
	status, err := c.do(ctx, http.MethodPost, "/api/spaces", body, &env)
	if err != nil {
		return nil, false, err
	}
	return env.Space, status == http.StatusCreated, nil
}

func (c *APIClient) GetSpace(ctx context.Context, spaceID string) (*model.Space, error) {
	var env struct {
		Space *model.Space `json:"space"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/spaces/"+url.PathEscape(spaceID), nil, &env); err != nil {
		return nil, err
	}
	return env.Space, nil
}

func (c *APIClient) ListSpaces(ctx context.Context) ([]*model.Space, error) {
	var env struct {
		Spaces []*model.Space `json:"spaces"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/spaces", nil, &env); err != nil {
		return nil, err
	}
	return env.Spaces, nil
}

func (c *APIClient) PatchSpace(ctx context.Context, spaceID string, fields map[string]any) (*model.Space, error) {
	var env struct {
		Space *model.Space `json:"space"`
	}
	if _, err := c.do(ctx, http.MethodPatch, "/api/spaces/"+url.PathEscape(spaceID), fields, &env); err != nil {
		return nil, err
	}
	return env.Space, nil
}

func (c *APIClient) DeleteSpace(ctx context.Context, spaceID string) (*model.Space, error) {
	var env struct {
		Deleted *model.Space `json:"deletedSpace"`
	}
	if _, err := c.do(ctx, http.MethodDelete, "/api/spaces/"+url.PathEscape(spaceID), nil, &env); err != nil {
		return nil, err
	}
	return env.Deleted, nil
}

func (c *APIClient) ListSpaceShops(ctx context.Context, spaceID string) ([]*model.ShopWithSpace, error) {
	var env struct {
		Shops []*model.ShopWithSpace `json:"shops"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/spaces/"+url.PathEscape(spaceID)+"/shops", nil, &env); err != nil {
		return nil, err
	}
	return env.Shops, nil
}

// --- Shops ---

func (c *APIClient) UpsertShop(ctx context.Context, shopID, name, spaceID string, fields map[string]any) (*model.Shop, bool, error) {
	var env struct {
		Shop *model.Shop `json:"shop"`
	}
	body := withKeys(fields, map[string]any{"shopId": shopID, "name": name, "spaceId": spaceID})
	status, err := c.do(ctx, http.MethodPost, "/api/shops", body, &env)
	if err != nil {
		return nil, false, err
	}
	return env.Shop, status == http.StatusCreated, nil
}

func (c *APIClient) GetShop(ctx context.Context, shopID string) (*model.ShopWithSpace, error) {
	var env struct {
		Shop *model.ShopWithSpace `json:"shop"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/shops/"+url.PathEscape(shopID), nil, &env); err != nil {
		return nil, err
	}
	return env.Shop, nil
}

func (c *APIClient) ListShops(ctx context.Context) ([]*model.ShopWithSpace, error) {
	var env struct {
		Shops []*model.ShopWithSpace `json:"shops"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/shops", nil, &env); err != nil {
		return nil, err
	}
	return env.Shops, nil
}

func (c *APIClient) PatchShop(ctx context.Context, shopID string, fields map[string]any) (*model.Shop, error) {
	var env struct {
		Shop *model.Shop `json:"shop"`
	}
	if _, err := c.do(ctx, http.MethodPatch, "/api/shops/"+url.PathEscape(shopID), fields, &env); err != nil {
		return nil, err
	}
	return env.Shop, nil
}

func (c *APIClient) DeleteShop(ctx context.Context, shopID string) (*model.Shop, error) {
	var env struct {
		Deleted *model.Shop `json:"deletedShop"`
	}
	if _, err := c.do(ctx, http.MethodDelete, "/api/shops/"+url.PathEscape(shopID), nil, &env); err != nil {
		return nil, err
	}
	return env.Deleted, nil
}

// --- Lend items ---

func (c *APIClient) UpsertLendItem(ctx context.Context, itemID, name, owner string, fields map[string]any) (*model.LendItem, bool, error) {
	var env struct {
		Item *model.LendItem `json:"item"`
	}
	body := withKeys(fields, map[string]any{"id": itemID, "name": name, "owner": owner})
	status, err := c.do(ctx, http.MethodPost, "/api/lend-items", body, &env)
	if err != nil {
		return nil, false, err
	}
	return env.Item, status == http.StatusCreated, nil
}

func (c *APIClient) GetLendItem(ctx context.Context, itemID string) (*model.LendItemWithSpace, error) {
	var env struct {
		Item *model.LendItemWithSpace `json:"item"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/lend-items/"+url.PathEscape(itemID), nil, &env); err != nil {
		return nil, err
	}
	return env.Item, nil
}

func (c *APIClient) ListLendItems(ctx context.Context, spaceID string) ([]*model.LendItemWithSpace, error) {
	var env struct {
		Items []*model.LendItemWithSpace `json:"items"`
	}
	path := "/api/lend-items"
	if spaceID != "" {
		path += "?spaceId=" + url.QueryEscape(spaceID)
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

func (c *APIClient) PatchLendItem(ctx context.Context, itemID string, fields map[string]any) (*model.LendItem, error) {
	var env struct {
		Item *model.LendItem `json:"item"`
	}
	if _, err := c.do(ctx, http.MethodPatch, "/api/lend-items/"+url.PathEscape(itemID), fields, &env); err != nil {
		return nil, err
	}
	return env.Item, nil
}

func (c *APIClient) DeleteLendItem(ctx context.Context, itemID string) (*model.LendItem, error) {
	var env struct {
		Deleted *model.LendItem `json:"deletedItem"`
	}
	if _, err := c.do(ctx, http.MethodDelete, "/api/lend-items/"+url.PathEscape(itemID), nil, &env); err != nil {
		return nil, err
	}
	return env.Deleted, nil
}

// --- Requests ---

func (c *APIClient) UpsertRequest(ctx context.Context, requestID, title, requester string, fields map[string]any) (*model.Request, bool, error) {
	var env struct {
		Request *model.Request `json:"request"`
	}
	body := withKeys(fields, map[string]any{"id": requestID, "title": title, "requester": requester})
	status, err := c.do(ctx, http.MethodPost, "/api/requests", body, &env)
	if err != nil {
		return nil, false, err
	}
	return env.Request, status == http.StatusCreated, nil
}

func (c *APIClient) GetRequest(ctx context.Context, requestID string) (*model.RequestWithSpace, error) {
	var env struct {
		Request *model.RequestWithSpace `json:"request"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/requests/"+url.PathEscape(requestID), nil, &env); err != nil {
		return nil, err
	}
	return env.Request, nil
}

func (c *APIClient) ListRequests(ctx context.Context, spaceID string) ([]*model.RequestWithSpace, error) {
	var env struct {
		Requests []*model.RequestWithSpace `json:"requests"`
	}
	path := "/api/requests"
	if spaceID != "" {
		path += "?spaceId=" + url.QueryEscape(spaceID)
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Requests, nil
}

func (c *APIClient) PatchRequest(ctx context.Context, requestID string, fields map[string]any) (*model.Request, error) {
	var env struct {
		Request *model.Request `json:"request"`
	}
	if _, err := c.do(ctx, http.MethodPatch, "/api/requests/"+url.PathEscape(requestID), fields, &env); err != nil {
		return nil, err
	}
	return env.Request, nil
}

func (c *APIClient) DeleteRequest(ctx context.Context, requestID string) (*model.Request, error) {
	var env struct {
		Deleted *model.Request `json:"deletedRequest"`
	}
	if _, err := c.do(ctx, http.MethodDelete, "/api/requests/"+url.PathEscape(requestID), nil, &env); err != nil {
		return nil, err
	}
	return env.Deleted, nil
}

// --- Hangouts ---

func (c *APIClient) UpsertHangout(ctx context.Context, hangID, title, host string, fields map[string]any) (*model.Hangout, bool, error) {
	var env struct {
		Hangout *model.Hangout `json:"hangout"`
	}
	body := withKeys(fields, map[string]any{"id": hangID, "title": title, "host": host})
	status, err := c.do(ctx, http.MethodPost, "/api/hangouts", body, &env)
	if err != nil {
		return nil, false, err
	}
	return env.Hangout, status == http.StatusCreated, nil
}

func (c *APIClient) GetHangout(ctx context.Context, hangID string) (*model.HangoutWithSpace, error) {
	var env struct {
		Hangout *model.HangoutWithSpace `json:"hangout"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/hangouts/"+url.PathEscape(hangID), nil, &env); err != nil {
		return nil, err
	}
	return env.Hangout, nil
}

func (c *APIClient) ListHangouts(ctx context.Context, spaceID string) ([]*model.HangoutWithSpace, error) {
	var env struct {
		Hangouts []*model.HangoutWithSpace `json:"hangouts"`
	}
	path := "/api/hangouts"
	if spaceID != "" {
		path += "?spaceId=" + url.QueryEscape(spaceID)
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Hangouts, nil
}

func (c *APIClient) PatchHangout(ctx context.Context, hangID string, fields map[string]any) (*model.Hangout, error) {
	var env struct {
		Hangout *model.Hangout `json:"hangout"`
	}
	if _, err := c.do(ctx, http.MethodPatch, "/api/hangouts/"+url.PathEscape(hangID), fields, &env); err != nil {
		return nil, err
	}
	return env.Hangout, nil
}

func (c *APIClient) DeleteHangout(ctx context.Context, hangID string) (*model.Hangout, error) {
	var env struct {
		Deleted *model.Hangout `json:"deletedHangout"`
	}
	if _, err := c.do(ctx, http.MethodDelete, "/api/hangouts/"+url.PathEscape(hangID), nil, &env); err != nil {
		return nil, err
	}
	return env.Deleted, nil
}
