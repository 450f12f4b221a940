package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-marketplace/internal/asset"
	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/service"
	"github.com/MKhiriev/go-marketplace/internal/store"
	"github.com/MKhiriev/go-marketplace/internal/utils"
	"github.com/MKhiriev/go-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory collaborators ──────────────────────────────────────────────────

type memoryAccounts struct {
	mu   sync.Mutex
	byID map[string]models.Account
}

func (m *memoryAccounts) Create(_ context.Context, account models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Email == account.Email || a.Token == account.Token {
			return models.Account{}, store.ErrAccountAlreadyExists
		}
	}
	account.CreatedAt = time.Now()
	m.byID[account.ID] = account
	return account, nil
}

func (m *memoryAccounts) find(match func(models.Account) bool) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if match(a) {
			return a, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (m *memoryAccounts) FindByEmail(_ context.Context, email string) (models.Account, error) {
	return m.find(func(a models.Account) bool { return a.Email == email })
}

func (m *memoryAccounts) FindByToken(_ context.Context, token string) (models.Account, error) {
	return m.find(func(a models.Account) bool { return a.Token == token })
}

type memoryListings struct {
	mu       sync.Mutex
	accounts *memoryAccounts
	rows     []models.Listing
}

func (m *memoryListings) Create(_ context.Context, listing models.Listing) (models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	m.rows = append(m.rows, listing)
	return listing, nil
}

func (m *memoryListings) owner(id string) *models.Owner {
	a, ok := m.accounts.byID[id]
	if !ok {
		return nil
	}
	return &models.Owner{ID: a.ID, Account: models.PublicProfile{Username: a.Profile.Username, Avatar: a.Profile.Avatar}}
}

func (m *memoryListings) Search(_ context.Context, f models.SearchFilter) ([]models.ListingSummary, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Listing
	for _, l := range m.rows {
		if f.Title != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(f.Title)) {
			continue
		}
		if f.PriceMin != nil && l.Price < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && l.Price > *f.PriceMax {
			continue
		}
		matched = append(matched, l)
	}

	switch f.Sort {
	case models.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	}

	offers := []models.ListingSummary{}
	for i := int(f.Offset()); i < len(matched) && len(offers) < models.SearchPageSize; i++ {
		l := matched[i]
		offers = append(offers, models.ListingSummary{ID: l.ID, Name: l.Name, Price: l.Price, Owner: m.owner(l.OwnerID)})
	}
	return offers, int64(len(matched)), nil
}

func (m *memoryListings) FindByID(_ context.Context, id string) (models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.rows {
		if l.ID == id {
			l.Owner = m.owner(l.OwnerID)
			return l, nil
		}
	}
	return models.Listing{}, store.ErrListingNotFound
}

func (m *memoryListings) Update(_ context.Context, u models.OfferUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID != u.ID {
			continue
		}
		if u.Name != nil {
			m.rows[i].Name = *u.Name
		}
		if u.Description != nil {
			m.rows[i].Description = *u.Description
		}
		if u.Price != nil {
			m.rows[i].Price = *u.Price
		}
		if u.Image != nil {
			m.rows[i].Image = u.Image
		}
		if u.Details != nil {
			m.rows[i].Details = u.Details
		}
		m.rows[i].UpdatedAt = time.Now()
		return nil
	}
	return store.ErrListingNotFound
}

type memoryMediaHost struct {
	mu        sync.Mutex
	seq       int
	destroyed []string
}

func (m *memoryMediaHost) Upload(_ context.Context, image models.Image, folder string) (models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	publicID := fmt.Sprintf("%s/%d", folder, m.seq)
	return models.Asset{URL: "https://cdn.example/" + publicID, PublicID: publicID, Bytes: int64(len(image.Data))}, nil
}

func (m *memoryMediaHost) Destroy(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = append(m.destroyed, publicID)
	return nil
}

var pngPicture = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newFlowHandler(t *testing.T, policy service.AccessPolicy) (http.Handler, *memoryMediaHost) {
	t.Helper()

	accounts := &memoryAccounts{byID: map[string]models.Account{}}
	listings := &memoryListings{accounts: accounts}
	host := &memoryMediaHost{}
	relay := asset.NewRelay(host, "vinted", logger.Nop())
	ids := utils.NewUUIDGenerator()

	services := &service.Services{
		AccountService: service.NewAccountService(accounts, relay, ids, logger.Nop()),
		ListingService: service.NewListingService(listings, relay, ids, policy, logger.Nop()),
	}

	h := &Handler{services: services, maxUploadSize: 1 << 20, requestTimeout: 5 * time.Second, logger: logger.Nop()}
	return h.Init(), host
}

// ── Flow helpers ─────────────────────────────────────────────────────────────

func doRequest(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func signupAccount(t *testing.T, router http.Handler, username, email, password string) models.SignupResponse {
	t.Helper()

	body, contentType := multipartBody(t, map[string]string{
		"username": username, "email": email, "password": password, "newsletter": "false",
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/user/signup", body)
	req.Header.Set("Content-Type", contentType)

	rr := doRequest(t, router, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp models.SignupResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func publishOffer(t *testing.T, router http.Handler, token, title, price string) models.Listing {
	t.Helper()

	body, contentType := multipartBody(t, map[string]string{
		"title": title, "price": price, "brand": "X", "size": "M", "city": "Paris",
	}, map[string][]byte{"picture": pngPicture})
	req := httptest.NewRequest(http.MethodPost, "/offer/publish", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := doRequest(t, router, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var listing models.Listing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listing))
	return listing
}

func searchOffers(t *testing.T, router http.Handler, query url.Values) models.SearchResult {
	t.Helper()

	rr := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/offers?"+query.Encode(), nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result models.SearchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	return result
}

func updateOffer(t *testing.T, router http.Handler, token, id string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, "/offers/"+id, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	return doRequest(t, router, req)
}

// ── Flows ────────────────────────────────────────────────────────────────────

func TestFlow_SignupPublishSearchUpdate(t *testing.T) {
	router, _ := newFlowHandler(t, service.AccessPolicy{})

	alice := signupAccount(t, router, "alice", "a@x.com", "pw1")
	assert.NotEmpty(t, alice.Token)
	assert.Equal(t, "alice", alice.Account.Username)

	dress := publishOffer(t, router, alice.Token, "Dress", "20")
	assert.Equal(t, "Dress", dress.Name)
	require.NotNil(t, dress.Owner)
	assert.Equal(t, "alice", dress.Owner.Account.Username)
	require.NotNil(t, dress.Image)
	assert.True(t, strings.HasPrefix(dress.Image.PublicID, "vinted/offers/"+dress.ID+"/"))

	result := searchOffers(t, router, url.Values{"priceMax": {"25"}})
	require.GreaterOrEqual(t, result.Count, int64(1))
	var names []string
	for _, o := range result.Offers {
		names = append(names, o.Name)
	}
	assert.Contains(t, names, "Dress")

	// A different, valid account may still update the listing: ownership is
	// not enforced by default.
	bob := signupAccount(t, router, "bob", "b@x.com", "pw2")
	rr := updateOffer(t, router, bob.Token, dress.ID, url.Values{"price": {"25"}, "color": {"blue"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated models.UpdateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.InDelta(t, 25.0, updated.Offer.Price, 1e-9)
	color, _ := updated.Offer.Details.Get(models.DetailColor)
	brand, _ := updated.Offer.Details.Get(models.DetailBrand)
	assert.Equal(t, "blue", color)
	assert.Equal(t, "X", brand)
}

func TestFlow_OwnershipEnforced(t *testing.T) {
	router, _ := newFlowHandler(t, service.AccessPolicy{OwnershipEnforced: true})

	alice := signupAccount(t, router, "alice", "a@x.com", "pw1")
	bob := signupAccount(t, router, "bob", "b@x.com", "pw2")
	dress := publishOffer(t, router, alice.Token, "Dress", "20")

	assert.Equal(t, http.StatusForbidden, updateOffer(t, router, bob.Token, dress.ID, url.Values{"title": {"Mine"}}).Code)
	assert.Equal(t, http.StatusOK, updateOffer(t, router, alice.Token, dress.ID, url.Values{"title": {"Gown"}}).Code)
}

func TestFlow_DuplicateSignupAndLogin(t *testing.T) {
	router, _ := newFlowHandler(t, service.AccessPolicy{})

	alice := signupAccount(t, router, "alice", "a@x.com", "pw1")

	body, contentType := multipartBody(t, map[string]string{"username": "alice2", "email": "a@x.com", "password": "pw"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/user/signup", body)
	req.Header.Set("Content-Type", contentType)
	dup := doRequest(t, router, req)
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, service.ErrConflict.Error(), decodeMessage(t, dup))

	login := func(password string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/user/login",
			strings.NewReader(`{"email":"a@x.com","password":"`+password+`"}`))
		req.Header.Set("Content-Type", "application/json")
		return doRequest(t, router, req)
	}

	rr := login("pw1")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, alice.Token, resp.Token)
	assert.Equal(t, alice.ID, resp.ID)

	assert.Equal(t, http.StatusUnauthorized, login("wrong").Code)
}

func TestFlow_SearchPaginationAndSort(t *testing.T) {
	router, _ := newFlowHandler(t, service.AccessPolicy{})
	alice := signupAccount(t, router, "alice", "a@x.com", "pw1")

	for i := 1; i <= 12; i++ {
		publishOffer(t, router, alice.Token, fmt.Sprintf("Item %02d", i), fmt.Sprintf("%d", i*10))
	}

	page2 := searchOffers(t, router, url.Values{"sort": {"price-desc"}, "page": {"2"}})
	assert.Equal(t, int64(12), page2.Count)
	require.Len(t, page2.Offers, 5)
	for i := 1; i < len(page2.Offers); i++ {
		assert.GreaterOrEqual(t, page2.Offers[i-1].Price, page2.Offers[i].Price)
	}
	assert.InDelta(t, 70.0, page2.Offers[0].Price, 1e-9)

	bounded := searchOffers(t, router, url.Values{"priceMin": {"50"}, "priceMax": {"100"}})
	assert.Equal(t, int64(6), bounded.Count)
	for _, o := range bounded.Offers {
		assert.True(t, o.Price >= 50 && o.Price <= 100, "price %v out of bounds", o.Price)
	}
}

func TestFlow_UpdatePictureDestroysOld(t *testing.T) {
	router, host := newFlowHandler(t, service.AccessPolicy{})
	alice := signupAccount(t, router, "alice", "a@x.com", "pw1")
	dress := publishOffer(t, router, alice.Token, "Dress", "20")

	body, contentType := multipartBody(t, nil, map[string][]byte{"picture": pngPicture})
	req := httptest.NewRequest(http.MethodPut, "/offers/"+dress.ID, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+alice.Token)

	rr := doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, []string{dress.Image.PublicID}, host.destroyed)
}

func TestFlow_UnknownOffer(t *testing.T) {
	router, _ := newFlowHandler(t, service.AccessPolicy{})
	alice := signupAccount(t, router, "alice", "a@x.com", "pw1")

	missing := utils.NewUUIDGenerator().Generate()

	rr := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/offers/"+missing, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, http.StatusNotFound, updateOffer(t, router, alice.Token, missing, url.Values{"title": {"x"}}).Code)
}
