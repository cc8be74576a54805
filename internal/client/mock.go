package client

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cadalt0/Space/internal/config"
	"github.com/cadalt0/Space/internal/model"
)

// MockStore is the in-memory Store used as the development fallback and in
// tests.  It mirrors the server's observable semantics: create-or-update
// with per-field overwrite, immutable natural keys, parent-space joins, and
// the asymmetric delete (shops cascade, the other room kinds are orphaned
// with a nulled space reference).
type MockStore struct {
	mu       sync.Mutex
	seq      uint64
	users    map[string]*model.User
	spaces   map[string]*model.Space
	shops    map[string]*model.Shop
	items    map[string]*model.LendItem
	requests map[string]*model.Request
	hangouts map[string]*model.Hangout
}

func NewMockStore() *MockStore {
	return &MockStore{
		users:    map[string]*model.User{},
		spaces:   map[string]*model.Space{},
		shops:    map[string]*model.Shop{},
		items:    map[string]*model.LendItem{},
		requests: map[string]*model.Request{},
		hangouts: map[string]*model.Hangout{},
	}
}

var _ Store = (*MockStore)(nil)

func (m *MockStore) next() uint64 {
	m.seq++
	return m.seq
}

func mockNow() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}

// --- payload field coercion ---

func strPtrField(fields map[string]any, key string) (*string, bool) {
	v, ok := fields[key]
	if !ok {
		return nil, false
	}
	if v == nil {
		return nil, true
	}
	if s, ok := v.(string); ok {
		return &s, true
	}
	return nil, false
}

func strValField(fields map[string]any, key string) (string, bool) {
	if s, ok := fields[key].(string); ok {
		return s, true
	}
	return "", false
}

func intValField(fields map[string]any, key string) (int, bool) {
	switch v := fields[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

func listField(fields map[string]any, key string) (model.List, bool) {
	v, ok := fields[key]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case nil:
		return model.List{}, true
	case []string:
		return model.List(t), true
	case model.List:
		return t, true
	case []any:
		out := make(model.List, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// checkSpace enforces the parent-space requirement the server applies before
// any write naming a spaceId.  A missing parent rejects the payload, so the
// error classifies as validation, matching the API's 400.
func (m *MockStore) checkSpace(spaceID string) error {
	if _, ok := m.spaces[spaceID]; !ok {
		return fmt.Errorf("Space not found. Create the space first.: %w", ErrValidation)
	}
	return nil
}

func (m *MockStore) spaceJoin(spaceID *string) (title, desc *string) {
	if spaceID == nil {
		return nil, nil
	}
	sp, ok := m.spaces[*spaceID]
	if !ok {
		return nil, nil
	}
	return sp.Title, sp.Description
}

// --- SNS users ---

func (m *MockStore) UpsertUser(_ context.Context, email, snsID string, fields map[string]any) (*model.User, bool, error) {
	if email == "" || snsID == "" {
		return nil, false, fmt.Errorf("Email and SNS ID are required: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[email]; ok {
		u.SNSID = snsID
		if stake, ok := fields["stake"].(float64); ok {
			u.Stake = stake
		}
		u.UpdatedAt = mockNow()
		out := *u
		return &out, false, nil
	}
	stake, _ := fields["stake"].(float64)
	now := mockNow()
	u := &model.User{ID: m.next(), Email: email, SNSID: snsID, Stake: stake, CreatedAt: now, UpdatedAt: now}
	m.users[email] = u
	out := *u
	return &out, true, nil
}

func (m *MockStore) GetUser(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	out := *u
	return &out, nil
}

func (m *MockStore) ListUsers(_ context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockStore) PatchUser(_ context.Context, email string, fields map[string]any) (*model.User, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("No update data provided: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if s, ok := strValField(fields, "sns_id"); ok {
		u.SNSID = s
	}
	if stake, ok := fields["stake"].(float64); ok {
		u.Stake = stake
	}
	u.UpdatedAt = mockNow()
	out := *u
	return &out, nil
}

// --- Spaces ---

func (m *MockStore) applySpaceFields(sp *model.Space, fields map[string]any) {
	if v, ok := strPtrField(fields, "spacecontractid"); ok {
		sp.ContractID = v
	}
	if v, ok := strPtrField(fields, "space_contract_id"); ok {
		sp.ContractID = v
	}
	if v, ok := strPtrField(fields, "title"); ok {
		sp.Title = v
	}
	if v, ok := strPtrField(fields, "description"); ok {
		sp.Description = v
	}
	if v, ok := strPtrField(fields, "date"); ok {
		sp.Date = v
	}
	if v, ok := strPtrField(fields, "location"); ok {
		sp.Location = v
	}
	if v, ok := strPtrField(fields, "location_link"); ok {
		sp.LocationLink = v
	}
	if v, ok := listField(fields, "featuresEnabled"); ok {
		sp.FeaturesEnabled = v
	}
	if v, ok := listField(fields, "features_enabled"); ok {
		sp.FeaturesEnabled = v
	}
	if v, ok := listField(fields, "admins"); ok {
		sp.Admins = v
	}
	if v, ok := strPtrField(fields, "artwork"); ok {
		sp.Artwork = v
	}
	if v, ok := strPtrField(fields, "background"); ok {
		sp.Background = v
	}
	if v, ok := listField(fields, "tags"); ok {
		sp.Tags = v
	}
	if v, ok := intValField(fields, "upvotes"); ok {
		sp.Upvotes = v
	}
	if v, ok := intValField(fields, "downvotes"); ok {
		sp.Downvotes = v
	}
	if v, ok := strPtrField(fields, "stakeAddress"); ok {
		sp.StakeAddress = v
	}
	if v, ok := strPtrField(fields, "stake_address"); ok {
		sp.StakeAddress = v
	}
	sp.UpdatedAt = mockNow()
}

func (m *MockStore) UpsertSpace(_ context.Context, spaceID string, fields map[string]any) (*model.Space, bool, error) {
	if spaceID == "" {
		return nil, false, fmt.Errorf("spaceId is required: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sp, ok := m.spaces[spaceID]; ok {
		m.applySpaceFields(sp, fields)
		out := *sp
		return &out, false, nil
	}
	now := mockNow()
	addr := config.DefaultStakeAddressFallback
	sp := &model.Space{
		ID:              m.next(),
		SpaceID:         spaceID,
		FeaturesEnabled: model.List{},
		Admins:          model.List{},
		Tags:            model.List{},
		StakeAddress:    &addr,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.applySpaceFields(sp, fields)
	sp.CreatedAt = now
	m.spaces[spaceID] = sp
	out := *sp
	return &out, true, nil
}

func (m *MockStore) GetSpace(_ context.Context, spaceID string) (*model.Space, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sp, ok := m.spaces[spaceID]
	if !ok {
		return nil, fmt.Errorf("space %s: %w", spaceID, ErrNotFound)
	}
	out := *sp
	return &out, nil
}

func (m *MockStore) ListSpaces(_ context.Context) ([]*model.Space, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Space, 0, len(m.spaces))
	for _, sp := range m.spaces {
		cp := *sp
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockStore) PatchSpace(_ context.Context, spaceID string, fields map[string]any) (*model.Space, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("No update data provided: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sp, ok := m.spaces[spaceID]
	if !ok {
		return nil, fmt.Errorf("space %s: %w", spaceID, ErrNotFound)
	}
	m.applySpaceFields(sp, fields)
	out := *sp
	return &out, nil
}

func (m *MockStore) DeleteSpace(_ context.Context, spaceID string) (*model.Space, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sp, ok := m.spaces[spaceID]
	if !ok {
		return nil, fmt.Errorf("space %s: %w", spaceID, ErrNotFound)
	}
	delete(m.spaces, spaceID)
	// Shops cascade with the space; the other room kinds survive with a
	// nulled reference.
	for id, s := range m.shops {
		if s.SpaceID == spaceID {
			delete(m.shops, id)
		}
	}
	for _, it := range m.items {
		if it.SpaceID != nil && *it.SpaceID == spaceID {
			it.SpaceID = nil
		}
	}
	for _, rq := range m.requests {
		if rq.SpaceID != nil && *rq.SpaceID == spaceID {
			rq.SpaceID = nil
		}
	}
	for _, hg := range m.hangouts {
		if hg.SpaceID != nil && *hg.SpaceID == spaceID {
			hg.SpaceID = nil
		}
	}
	out := *sp
	return &out, nil
}

func (m *MockStore) ListSpaceShops(_ context.Context, spaceID string) ([]*model.ShopWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.spaces[spaceID]; !ok {
		return nil, fmt.Errorf("space %s: %w", spaceID, ErrNotFound)
	}
	out := []*model.ShopWithSpace{}
	for _, s := range m.shops {
		if s.SpaceID == spaceID {
			out = append(out, m.joinShop(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// --- Shops ---

func (m *MockStore) joinShop(s *model.Shop) *model.ShopWithSpace {
	cp := *s
	sid := s.SpaceID
	title, desc := m.spaceJoin(&sid)
	return &model.ShopWithSpace{Shop: cp, SpaceTitle: title, SpaceDescription: desc}
}

func (m *MockStore) applyShopFields(s *model.Shop, fields map[string]any) {
	if v, ok := strValField(fields, "spaceId"); ok {
		s.SpaceID = v
	}
	if v, ok := strValField(fields, "name"); ok {
		s.Name = v
	}
	if v, ok := strPtrField(fields, "description"); ok {
		s.Description = v
	}
	if v, ok := intValField(fields, "up"); ok {
		s.Up = v
	}
	if v, ok := intValField(fields, "down"); ok {
		s.Down = v
	}
	if v, ok := listField(fields, "tags"); ok {
		s.Tags = v
	}
	if v, ok := strPtrField(fields, "location"); ok {
		s.Location = v
	}
	if v, ok := strPtrField(fields, "location_link"); ok {
		s.LocationLink = v
	}
	s.UpdatedAt = mockNow()
}

func (m *MockStore) UpsertShop(_ context.Context, shopID, name, spaceID string, fields map[string]any) (*model.Shop, bool, error) {
	if shopID == "" || name == "" || spaceID == "" {
		return nil, false, fmt.Errorf("shopId, name, and spaceId are required: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSpace(spaceID); err != nil {
		return nil, false, err
	}
	if s, ok := m.shops[shopID]; ok {
		m.applyShopFields(s, fields)
		out := *s
		return &out, false, nil
	}
	now := mockNow()
	s := &model.Shop{ID: m.next(), ShopID: shopID, Name: name, SpaceID: spaceID, Tags: model.List{}, CreatedAt: now, UpdatedAt: now}
	m.applyShopFields(s, fields)
	s.CreatedAt = now
	m.shops[shopID] = s
	out := *s
	return &out, true, nil
}

func (m *MockStore) GetShop(_ context.Context, shopID string) (*model.ShopWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shops[shopID]
	if !ok {
		return nil, fmt.Errorf("shop %s: %w", shopID, ErrNotFound)
	}
	return m.joinShop(s), nil
}

func (m *MockStore) ListShops(_ context.Context) ([]*model.ShopWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.ShopWithSpace{}
	for _, s := range m.shops {
		out = append(out, m.joinShop(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockStore) PatchShop(_ context.Context, shopID string, fields map[string]any) (*model.Shop, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("No update data provided: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shops[shopID]
	if !ok {
		return nil, fmt.Errorf("shop %s: %w", shopID, ErrNotFound)
	}
	m.applyShopFields(s, fields)
	out := *s
	return &out, nil
}

func (m *MockStore) DeleteShop(_ context.Context, shopID string) (*model.Shop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shops[shopID]
	if !ok {
		return nil, fmt.Errorf("shop %s: %w", shopID, ErrNotFound)
	}
	delete(m.shops, shopID)
	out := *s
	return &out, nil
}

// --- Lend items ---

func (m *MockStore) joinItem(it *model.LendItem) *model.LendItemWithSpace {
	cp := *it
	title, desc := m.spaceJoin(it.SpaceID)
	return &model.LendItemWithSpace{LendItem: cp, SpaceTitle: title, SpaceDescription: desc}
}

func (m *MockStore) applyItemFields(it *model.LendItem, fields map[string]any) {
	if v, ok := strPtrField(fields, "spaceId"); ok {
		it.SpaceID = v
	}
	if v, ok := strValField(fields, "name"); ok {
		it.Name = v
	}
	if v, ok := strValField(fields, "owner"); ok {
		it.Owner = v
	}
	if v, ok := strPtrField(fields, "description"); ok {
		it.Description = v
	}
	if v, ok := fields["available"].(bool); ok {
		it.Available = v
	}
	if v, ok := intValField(fields, "up"); ok {
		it.Up = v
	}
	if v, ok := intValField(fields, "down"); ok {
		it.Down = v
	}
	if v, ok := listField(fields, "tags"); ok {
		it.Tags = v
	}
	if v, ok := strPtrField(fields, "image"); ok {
		it.Image = v
	}
	it.UpdatedAt = mockNow()
}

func (m *MockStore) UpsertLendItem(_ context.Context, itemID, name, owner string, fields map[string]any) (*model.LendItem, bool, error) {
	if itemID == "" || name == "" || owner == "" {
		return nil, false, fmt.Errorf("id, name, and owner are required: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sid, ok := strValField(fields, "spaceId"); ok && sid != "" {
		if err := m.checkSpace(sid); err != nil {
			return nil, false, err
		}
	}
	if it, ok := m.items[itemID]; ok {
		m.applyItemFields(it, fields)
		out := *it
		return &out, false, nil
	}
	now := mockNow()
	it := &model.LendItem{ID: m.next(), ItemID: itemID, Name: name, Owner: owner, Available: true, Tags: model.List{}, CreatedAt: now, UpdatedAt: now}
	m.applyItemFields(it, fields)
	it.CreatedAt = now
	m.items[itemID] = it
	out := *it
	return &out, true, nil
}

func (m *MockStore) GetLendItem(_ context.Context, itemID string) (*model.LendItemWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[itemID]
	if !ok {
		return nil, fmt.Errorf("lend item %s: %w", itemID, ErrNotFound)
	}
	return m.joinItem(it), nil
}

func (m *MockStore) ListLendItems(_ context.Context, spaceID string) ([]*model.LendItemWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.LendItemWithSpace{}
	for _, it := range m.items {
		if spaceID != "" && (it.SpaceID == nil || *it.SpaceID != spaceID) {
			continue
		}
		out = append(out, m.joinItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockStore) PatchLendItem(_ context.Context, itemID string, fields map[string]any) (*model.LendItem, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("No update data provided: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[itemID]
	if !ok {
		return nil, fmt.Errorf("lend item %s: %w", itemID, ErrNotFound)
	}
	m.applyItemFields(it, fields)
	out := *it
	return &out, nil
}

func (m *MockStore) DeleteLendItem(_ context.Context, itemID string) (*model.LendItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[itemID]
	if !ok {
		return nil, fmt.Errorf("lend item %s: %w", itemID, ErrNotFound)
	}
	delete(m.items, itemID)
	out := *it
	return &out, nil
}

// --- Requests ---

func (m *MockStore) joinRequest(rq *model.Request) *model.RequestWithSpace {
	cp := *rq
	title, desc := m.spaceJoin(rq.SpaceID)
	return &model.RequestWithSpace{Request: cp, SpaceTitle: title, SpaceDescription: desc}
}

func (m *MockStore) applyRequestFields(rq *model.Request, fields map[string]any) {
	if v, ok := strPtrField(fields, "spaceId"); ok {
		rq.SpaceID = v
	}
	if v, ok := strValField(fields, "title"); ok {
		rq.Title = v
	}
	if v, ok := strValField(fields, "requester"); ok {
		rq.Requester = v
	}
	if v, ok := strPtrField(fields, "description"); ok {
		rq.Description = v
	}
	if v, ok := intValField(fields, "up"); ok {
		rq.Up = v
	}
	if v, ok := intValField(fields, "down"); ok {
		rq.Down = v
	}
	if v, ok := listField(fields, "tags"); ok {
		rq.Tags = v
	}
	rq.UpdatedAt = mockNow()
}

func (m *MockStore) UpsertRequest(_ context.Context, requestID, title, requester string, fields map[string]any) (*model.Request, bool, error) {
	if requestID == "" || title == "" || requester == "" {
		return nil, false, fmt.Errorf("id, title, and requester are required: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sid, ok := strValField(fields, "spaceId"); ok && sid != "" {
		if err := m.checkSpace(sid); err != nil {
			return nil, false, err
		}
	}
	if rq, ok := m.requests[requestID]; ok {
		m.applyRequestFields(rq, fields)
		out := *rq
		return &out, false, nil
	}
	now := mockNow()
	rq := &model.Request{ID: m.next(), RequestID: requestID, Title: title, Requester: requester, Tags: model.List{}, CreatedAt: now, UpdatedAt: now}
	m.applyRequestFields(rq, fields)
	rq.CreatedAt = now
	m.requests[requestID] = rq
	out := *rq
	return &out, true, nil
}

func (m *MockStore) GetRequest(_ context.Context, requestID string) (*model.RequestWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rq, ok := m.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", requestID, ErrNotFound)
	}
	return m.joinRequest(rq), nil
}

func (m *MockStore) ListRequests(_ context.Context, spaceID string) ([]*model.RequestWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.RequestWithSpace{}
	for _, rq := range m.requests {
		if spaceID != "" && (rq.SpaceID == nil || *rq.SpaceID != spaceID) {
			continue
		}
		out = append(out, m.joinRequest(rq))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockStore) PatchRequest(_ context.Context, requestID string, fields map[string]any) (*model.Request, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("No update data provided: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rq, ok := m.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", requestID, ErrNotFound)
	}
	m.applyRequestFields(rq, fields)
	out := *rq
	return &out, nil
}

func (m *MockStore) DeleteRequest(_ context.Context, requestID string) (*model.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rq, ok := m.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", requestID, ErrNotFound)
	}
	delete(m.requests, requestID)
	out := *rq
	return &out, nil
}

// --- Hangouts ---

func (m *MockStore) joinHangout(hg *model.Hangout) *model.HangoutWithSpace {
	cp := *hg
	title, desc := m.spaceJoin(hg.SpaceID)
	return &model.HangoutWithSpace{Hangout: cp, SpaceTitle: title, SpaceDescription: desc}
}

func (m *MockStore) applyHangoutFields(hg *model.Hangout, fields map[string]any) {
	if v, ok := strPtrField(fields, "spaceId"); ok {
		hg.SpaceID = v
	}
	if v, ok := strValField(fields, "title"); ok {
		hg.Title = v
	}
	if v, ok := strValField(fields, "host"); ok {
		hg.Host = v
	}
	if v, ok := strPtrField(fields, "description"); ok {
		hg.Description = v
	}
	if v, ok := strPtrField(fields, "date"); ok {
		hg.Date = v
	}
	if v, ok := strPtrField(fields, "location"); ok {
		hg.Location = v
	}
	if v, ok := intValField(fields, "up"); ok {
		hg.Up = v
	}
	if v, ok := intValField(fields, "down"); ok {
		hg.Down = v
	}
	if v, ok := listField(fields, "tags"); ok {
		hg.Tags = v
	}
	hg.UpdatedAt = mockNow()
}

func (m *MockStore) UpsertHangout(_ context.Context, hangID, title, host string, fields map[string]any) (*model.Hangout, bool, error) {
	if hangID == "" || title == "" || host == "" {
		return nil, false, fmt.Errorf("id, title, and host are required: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sid, ok := strValField(fields, "spaceId"); ok && sid != "" {
		if err := m.checkSpace(sid); err != nil {
			return nil, false, err
		}
	}
	if hg, ok := m.hangouts[hangID]; ok {
		m.applyHangoutFields(hg, fields)
		out := *hg
		return &out, false, nil
	}
	now := mockNow()
	hg := &model.Hangout{ID: m.next(), HangID: hangID, Title: title, Host: host, Tags: model.List{}, CreatedAt: now, UpdatedAt: now}
	m.applyHangoutFields(hg, fields)
	hg.CreatedAt = now
	m.hangouts[hangID] = hg
	out := *hg
	return &out, true, nil
}

func (m *MockStore) GetHangout(_ context.Context, hangID string) (*model.HangoutWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hg, ok := m.hangouts[hangID]
	if !ok {
		return nil, fmt.Errorf("hangout %s: %w", hangID, ErrNotFound)
	}
	return m.joinHangout(hg), nil
}

func (m *MockStore) ListHangouts(_ context.Context, spaceID string) ([]*model.HangoutWithSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.HangoutWithSpace{}
	for _, hg := range m.hangouts {
		if spaceID != "" && (hg.SpaceID == nil || *hg.SpaceID != spaceID) {
			continue
		}
		out = append(out, m.joinHangout(hg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockStore) PatchHangout(_ context.Context, hangID string, fields map[string]any) (*model.Hangout, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("No update data provided: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	hg, ok := m.hangouts[hangID]
	if !ok {
		return nil, fmt.Errorf("hangout %s: %w", hangID, ErrNotFound)
	}
	m.applyHangoutFields(hg, fields)
	out := *hg
	return &out, nil
}

func (m *MockStore) DeleteHangout(_ context.Context, hangID string) (*model.Hangout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hg, ok := m.hangouts[hangID]
	if !ok {
		return nil, fmt.Errorf("hangout %s: %w", hangID, ErrNotFound)
	}
	delete(m.hangouts, hangID)
	out := *hg
	return &out, nil
}
