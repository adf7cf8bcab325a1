package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"plumbfam/internal/catalog"
	"plumbfam/internal/policy"
	"plumbfam/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFamilyStore struct {
	families []*types.Family
	deleted  []string
}

func (f *fakeFamilyStore) AllFamilies(_ context.Context) ([]*types.Family, error) {
	return f.families, nil
}

func (f *fakeFamilyStore) FamilyByID(_ context.Context, familyID string) (*types.Family, error) {
	for _, family := range f.families {
		if family.ID == familyID {
			return family, nil
		}
	}
	return nil, types.ErrFamilyNotFound
}

func (f *fakeFamilyStore) CreateFamily(_ context.Context, family *types.Family) error {
	f.families = append(f.families, family)
	return nil
}

func (f *fakeFamilyStore) DeleteFamily(_ context.Context, familyID string) error {
	f.deleted = append(f.deleted, familyID)

	kept := make([]*types.Family, 0, len(f.families))
	for _, family := range f.families {
		if family.ID != familyID {
			kept = append(kept, family)
		}
	}
	f.families = kept

	return nil
}

type fakeObjectStore struct{}

func (f *fakeObjectStore) Upload(_ context.Context, _, key string, _ io.Reader, _ string) (string, error) {
	return key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeObjectStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://blobs.test/%s/%s", bucket, key)
}

type fakeSubscriber struct {
	events chan types.ChangeEvent
}

func (f *fakeSubscriber) Subscribe() (<-chan types.ChangeEvent, func()) {
	return f.events, func() {}
}

func newTestService(t *testing.T, families ...*types.Family) (*Service, *fakeFamilyStore) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := &fakeFamilyStore{families: families}

	controller := catalog.NewController(
		store,
		&fakeObjectStore{},
		policy.NewFixedCredentialPolicy("upload-secret", "delete-secret"),
		logger,
		"family-images",
		"rvt-files",
	)
	require.NoError(t, controller.Refresh(context.Background()))

	config := &types.Config{
		ServerPort:      8080,
		ReadTimeoutSec:  1,
		WriteTimeoutSec: 1,
		MaxUploadBytes:  1 << 20,
	}

	svc, err := New(config, logger, controller, &fakeSubscriber{})
	require.NoError(t, err)

	return svc, store
}

func postForm(svc *Service, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(rec, req)
	return rec
}

func flashCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == flashCookieName {
			return cookie
		}
	}
	return nil
}

func TestDeleteRouteExtractsFamilyID(t *testing.T) {
	svc, store := newTestService(t, &types.Family{
		ID:         "fam-1",
		FamilyName: "Ball Valve",
		Category:   types.CategoryPipeFitting,
		ImageURL:   "https://blobs.test/family-images/1-valve.png",
		RvtFileURL: "https://blobs.test/rvt-files/1-valve.rvt",
	})

	rec := postForm(svc, "/families/fam-1/delete", url.Values{
		"password": {"delete-secret"},
		"category": {"all"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"fam-1"}, store.deleted)
}

func TestDeleteRouteWrongPasswordKeepsRecordAndFlashesError(t *testing.T) {
	svc, store := newTestService(t, &types.Family{
		ID:         "fam-1",
		FamilyName: "Ball Valve",
		Category:   types.CategoryPipeFitting,
	})

	rec := postForm(svc, "/families/fam-1/delete", url.Values{
		"password": {"nope"},
		"category": {"all"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, store.deleted)

	cookie := flashCookie(t, rec)
	require.NotNil(t, cookie, "error flash cookie must be set")
	assert.NotEmpty(t, cookie.Value)
}

func TestFlashRoundTripWithoutConfiguredKeys(t *testing.T) {
	svc, _ := newTestService(t)

	rec := httptest.NewRecorder()
	svc.setFlash(rec, "", "Enter correct password")

	cookie := flashCookie(t, rec)
	require.NotNil(t, cookie, "flash cookie must be written with generated keys")
	require.NotEmpty(t, cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	notice, errMsg := svc.popFlash(httptest.NewRecorder(), req)
	assert.Empty(t, notice)
	assert.Equal(t, "Enter correct password", errMsg)
}

func TestCookieKeyDecoding(t *testing.T) {
	key, err := cookieKey("", 32)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = cookieKey("%%not-base64%%", 32)
	require.Error(t, err)
}

func TestEventsStreamDeliversChangeEvents(t *testing.T) {
	svc, _ := newTestService(t)

	events := make(chan types.ChangeEvent, 1)
	events <- types.ChangeEvent{Op: types.ChangeOpDelete, ID: "fam-1"}
	close(events)
	svc.subscriber = &fakeSubscriber{events: events}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	svc.handleEvents(rec, req)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: families-changed")
	assert.Contains(t, body, `"id":"fam-1"`)
}

func TestDeleteDialogReopenWiring(t *testing.T) {
	templates, err := loadTemplates()
	require.NoError(t, err)

	data := homePageData(&types.Family{ID: "fam-1", FamilyName: "Ball Valve"})
	data.Error = "Enter correct password"

	var buf bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&buf, "page.home", data))
	assert.Contains(t, buf.String(), `class="flash flash-error"`)

	script, err := uiFS.ReadFile("static/js/app.js")
	require.NoError(t, err)
	assert.Contains(t, string(script), "pending-delete-dialog")
	assert.Contains(t, string(script), "showModal")
}
