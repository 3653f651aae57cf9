package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/GoArmGo/PetAdoption/internal/adapter/storage/local"
	"github.com/GoArmGo/PetAdoption/internal/core/ports"
	"github.com/GoArmGo/PetAdoption/internal/database/memory"
	"github.com/GoArmGo/PetAdoption/internal/domain"
	"github.com/GoArmGo/PetAdoption/internal/logger"
	"github.com/GoArmGo/PetAdoption/internal/security"
	"github.com/GoArmGo/PetAdoption/internal/session"
	"github.com/GoArmGo/PetAdoption/internal/usecase"
	"github.com/GoArmGo/PetAdoption/internal/view"
)

const maxUpload = 64 << 10

type testServer struct {
	*httptest.Server
	imagesDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithSessions(t, session.NewMemoryStore(time.Hour))
}

func newTestServerWithSessions(t *testing.T, sessions ports.SessionStore) *testServer {
	t.Helper()
	log := logger.Discard()

	hasher, err := security.NewPasswordHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	files, err := local.NewStore(dir, log)
	if err != nil {
		t.Fatal(err)
	}

	db := memory.NewDB()
	users := memory.NewUserStorage(db)
	pets := memory.NewPetStorage(db)
	apps := memory.NewApplicationStorage(db)

	h := NewHandler(
		usecase.NewAccountUseCase(users, hasher, log),
		usecase.NewPetUseCase(pets, apps, files, log),
		usecase.NewApplicationUseCase(pets, apps, log),
		sessions,
		renderer,
		Options{
			CookieName:     "sid",
			SessionTTL:     time.Hour,
			MaxUploadBytes: maxUpload,
			ImagesDir:      dir,
			RequestTimeout: 5 * time.Second,
		},
		log,
	)

	srv := httptest.NewServer(NewRouter(h, log))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, imagesDir: dir}
}

// browser — клиент с cookie, не следующий редиректам.
type browser struct {
	t    *testing.T
	base string
	c    *http.Client
}

func (s *testServer) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &browser{t: t, base: s.URL, c: &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.c.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatal(err)
	}
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	req, _ := http.NewRequest(http.MethodGet, b.base+path, nil)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	req, _ := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postMultipart(path string, fields map[string]string, filename string, file []byte) (*http.Response, string) {
	b.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("photo", filename)
		if err != nil {
			b.t.Fatal(err)
		}
		_, _ = fw.Write(file)
	}
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, b.base+path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

func expectRedirect(t *testing.T, resp *http.Response, want string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

func (b *browser) signUp(name, email, role string) {
	b.t.Helper()
	resp, _ := b.post("/register", url.Values{
		"name": {name}, "email": {email}, "password": {"pw123"}, "password_confirm": {"pw123"}, "role": {role},
	})
	expectRedirect(b.t, resp, "/login")

	resp, _ = b.post("/login", url.Values{"email": {email}, "password": {"pw123"}, "role": {role}})
	if resp.StatusCode != http.StatusSeeOther {
		b.t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
}

func (b *browser) listPet(name, species string) {
	b.t.Helper()
	resp, _ := b.postMultipart("/shelter/pet/new", map[string]string{"name": name, "species": species, "age": "2"}, "", nil)
	expectRedirect(b.t, resp, "/shelter/pets?message=Pet+listed+successfully")
}

func TestShelterListsAndTogglesPet(t *testing.T) {
	srv := newTestServer(t)
	shelter := srv.browser(t)

	resp, _ := shelter.post("/register", url.Values{
		"name": {"Happy Paws"}, "email": {"paws@shelter.org"}, "password": {"pw"}, "password_confirm": {"pw"}, "role": {"shelter"},
	})
	expectRedirect(t, resp, "/login")
	resp, _ = shelter.post("/login", url.Values{"email": {"paws@shelter.org"}, "password": {"pw"}, "role": {"shelter"}})
	expectRedirect(t, resp, "/shelter/pets")

	shelter.listPet("Rex", "Dog")

	_, body := srv.browser(t).get("/pets")
	if !strings.Contains(body, "Rex") {
		t.Fatalf("/pets does not list Rex: %s", body)
	}

	resp, _ = shelter.post("/shelter/pets/1/toggle", nil)
	expectRedirect(t, resp, "/shelter/pets?message=Status+updated+to%3A+adopted")

	_, body = shelter.get("/shelter/pets")
	if !strings.Contains(body, "<td>adopted</td>") {
		t.Fatalf("status not adopted: %s", body)
	}
	if _, body = srv.browser(t).get("/pets"); strings.Contains(body, "Rex") {
		t.Fatal("adopted pet still listed publicly")
	}

	resp, _ = shelter.post("/shelter/pets/1/toggle", nil)
	expectRedirect(t, resp, "/shelter/pets?message=Status+updated+to%3A+active")
}

func TestAdopterAppliesAndShelterApproves(t *testing.T) {
	srv := newTestServer(t)
	shelter := srv.browser(t)
	shelter.signUp("Happy Paws", "paws@shelter.org", "shelter")
	shelter.listPet("Rex", "Dog")

	adopter := srv.browser(t)
	adopter.signUp("Ann", "ann@mail.org", "adopter")

	resp, body := adopter.get("/pets/1/apply")
	expectStatus(t, resp, http.StatusOK)
	if !strings.Contains(body, "Apply to adopt Rex") {
		t.Fatalf("apply form: %s", body)
	}

	resp, _ = adopter.post("/pets/1/apply", url.Values{"home_setup": {"house with garden"}, "prior_pets": {"a cat"}})
	expectRedirect(t, resp, "/adopter/applications?submitted=true")

	resp, body = adopter.post("/pets/1/apply", url.Values{"home_setup": {"again"}})
	expectStatus(t, resp, http.StatusConflict)
	if !strings.Contains(body, "You have already applied for this pet") {
		t.Fatalf("duplicate message missing: %s", body)
	}

	_, body = adopter.get("/adopter/applications?submitted=true")
	if strings.Count(body, "<td>submitted</td>") != 1 {
		t.Fatalf("expected exactly one submitted row: %s", body)
	}

	_, body = adopter.get("/pets/1")
	if !strings.Contains(body, "Your application: submitted") {
		t.Fatalf("pet page does not show application status: %s", body)
	}

	_, body = shelter.get("/shelter/applications")
	if !strings.Contains(body, "ann@mail.org") || !strings.Contains(body, "house with garden") {
		t.Fatalf("incoming applications: %s", body)
	}

	resp, _ = shelter.post("/application/1/update", url.Values{"status": {"submitted"}})
	expectStatus(t, resp, http.StatusBadRequest)

	resp, _ = shelter.post("/application/1/update", url.Values{"status": {"approved"}})
	expectRedirect(t, resp, "/shelter/applications")

	resp, _ = shelter.post("/application/1/update", url.Values{"status": {"declined"}})
	expectStatus(t, resp, http.StatusConflict)

	_, body = adopter.get("/adopter/applications")
	if !strings.Contains(body, "<td>approved</td>") {
		t.Fatalf("approval not visible to adopter: %s", body)
	}
}

func TestOwnershipIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.browser(t)
	owner.signUp("Owner", "owner@shelter.org", "shelter")
	owner.listPet("Rex", "Dog")

	adopter := srv.browser(t)
	adopter.signUp("Ann", "ann@mail.org", "adopter")
	resp, _ := adopter.post("/pets/1/apply", url.Values{"home_setup": {"flat"}})
	expectRedirect(t, resp, "/adopter/applications?submitted=true")

	intruder := srv.browser(t)
	intruder.signUp("Other", "other@shelter.org", "shelter")

	resp, _ = intruder.post("/shelter/pets/1/toggle", nil)
	expectStatus(t, resp, http.StatusNotFound)
	resp, _ = intruder.get("/shelter/pets/1/edit")
	expectStatus(t, resp, http.StatusNotFound)
	resp, _ = intruder.postMultipart("/shelter/pets/1/edit", map[string]string{"name": "Stolen", "species": "Dog"}, "", nil)
	expectStatus(t, resp, http.StatusNotFound)
	resp, _ = intruder.post("/application/1/update", url.Values{"status": {"approved"}})
	expectStatus(t, resp, http.StatusNotFound)

	// несуществующая запись неотличима от чужой
	resp, _ = intruder.post("/shelter/pets/99/toggle", nil)
	expectStatus(t, resp, http.StatusNotFound)

	_, body := owner.get("/shelter/pets")
	if !strings.Contains(body, "<td>active</td>") || strings.Contains(body, "Stolen") {
		t.Fatalf("pet changed by another shelter: %s", body)
	}
	_, body = adopter.get("/adopter/applications")
	if !strings.Contains(body, "<td>submitted</td>") {
		t.Fatalf("application changed by another shelter: %s", body)
	}
}

func TestRoleGuards(t *testing.T) {
	srv := newTestServer(t)
	anon := srv.browser(t)

	for _, path := range []string{"/shelter/pets", "/shelter/pet/new", "/adopter/applications", "/adopter/profile", "/pets/1/apply"} {
		resp, _ := anon.get(path)
		expectRedirect(t, resp, "/login")
	}

	adopter := srv.browser(t)
	adopter.signUp("Ann", "ann@mail.org", "adopter")
	resp, _ := adopter.get("/shelter/pets")
	expectRedirect(t, resp, "/login")
	resp, _ = adopter.post("/application/1/update", url.Values{"status": {"approved"}})
	expectRedirect(t, resp, "/login")

	shelter := srv.browser(t)
	shelter.signUp("Paws", "paws@shelter.org", "shelter")
	resp, _ = shelter.get("/adopter/applications")
	expectRedirect(t, resp, "/login")
}

func TestRegistrationErrors(t *testing.T) {
	srv := newTestServer(t)
	b := srv.browser(t)

	form := func(edit func(url.Values)) url.Values {
		v := url.Values{"name": {"Ann"}, "email": {"ann@mail.org"}, "password": {"pw"}, "password_confirm": {"pw"}, "role": {"adopter"}}
		edit(v)
		return v
	}

	resp, _ := b.post("/register", form(func(v url.Values) { v.Set("password_confirm", "other") }))
	expectRedirect(t, resp, "/register?error=password_mismatch")
	resp, _ = b.post("/register", form(func(v url.Values) { v.Set("role", "admin") }))
	expectRedirect(t, resp, "/register?error=invalid_role")
	resp, _ = b.post("/register", form(func(v url.Values) { v.Set("email", "") }))
	expectRedirect(t, resp, "/register?error=invalid_input")

	// ни одна из отклонённых попыток не создала пользователя
	resp, _ = b.post("/register", form(func(url.Values) {}))
	expectRedirect(t, resp, "/login")
	resp, _ = b.post("/register", form(func(v url.Values) { v.Set("role", "shelter") }))
	expectRedirect(t, resp, "/register?error=email_exists")

	_, body := b.get("/register?error=email_exists")
	if !strings.Contains(body, "already exists") {
		t.Fatalf("error message not rendered: %s", body)
	}
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	srv := newTestServer(t)
	b := srv.browser(t)
	b.signUp("Ann", "ann@mail.org", "adopter")
	resp, _ := b.get("/logout")
	expectRedirect(t, resp, "/")

	wrongPassword, _ := b.post("/login", url.Values{"email": {"ann@mail.org"}, "password": {"nope"}, "role": {"adopter"}})
	unknownUser, _ := b.post("/login", url.Values{"email": {"bob@mail.org"}, "password": {"pw123"}, "role": {"adopter"}})
	wrongRole, _ := b.post("/login", url.Values{"email": {"ann@mail.org"}, "password": {"pw123"}, "role": {"shelter"}})

	for _, resp := range []*http.Response{wrongPassword, unknownUser, wrongRole} {
		expectRedirect(t, resp, "/login?error=invalid")
		for _, c := range resp.Cookies() {
			if c.Name == "sid" && c.Value != "" {
				t.Fatal("session cookie issued on failed login")
			}
		}
	}

	resp, _ = b.get("/adopter/profile")
	expectRedirect(t, resp, "/login")
}

func TestLoginSetsSessionAndLogoutDestroysIt(t *testing.T) {
	srv := newTestServer(t)
	b := srv.browser(t)
	b.signUp("Ann", "ann@mail.org", "adopter")

	resp, body := b.get("/adopter/profile")
	expectStatus(t, resp, http.StatusOK)
	if !strings.Contains(body, "ann@mail.org") {
		t.Fatalf("profile does not show session user: %s", body)
	}

	resp, _ = b.get("/logout")
	expectRedirect(t, resp, "/")
	resp, _ = b.get("/adopter/profile")
	expectRedirect(t, resp, "/login")
}

func TestUploadPhoto(t *testing.T) {
	srv := newTestServer(t)
	shelter := srv.browser(t)
	shelter.signUp("Paws", "paws@shelter.org", "shelter")

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	resp, _ := shelter.postMultipart("/shelter/pet/new", map[string]string{"name": "Tom", "species": "Cat"}, "tom.png", png)
	expectRedirect(t, resp, "/shelter/pets?message=Pet+listed+successfully")

	entries, err := os.ReadDir(srv.imagesDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one uploaded file, got %v (%v)", entries, err)
	}
	name := entries[0].Name()
	if !strings.HasSuffix(name, "-tom.png") {
		t.Fatalf("unexpected file name %q", name)
	}
	if data, _ := os.ReadFile(filepath.Join(srv.imagesDir, name)); !bytes.Equal(data, png) {
		t.Fatal("uploaded content differs")
	}

	_, body := shelter.get("/pets/1")
	if !strings.Contains(body, "/images/"+name) {
		t.Fatalf("pet page does not reference the photo: %s", body)
	}
	resp, _ = srv.browser(t).get("/images/" + name)
	expectStatus(t, resp, http.StatusOK)
}

func TestUploadRejectsNonImageAndOversize(t *testing.T) {
	srv := newTestServer(t)
	shelter := srv.browser(t)
	shelter.signUp("Paws", "paws@shelter.org", "shelter")
	fields := map[string]string{"name": "Tom", "species": "Cat"}

	resp, body := shelter.postMultipart("/shelter/pet/new", fields, "tom.png", []byte("definitely not an image"))
	expectStatus(t, resp, http.StatusBadRequest)
	if !strings.Contains(body, "must be an image") {
		t.Fatalf("non-image error not shown: %s", body)
	}

	big := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 2*maxUpload)...)
	resp, _ = shelter.postMultipart("/shelter/pet/new", fields, "big.png", big)
	expectStatus(t, resp, http.StatusBadRequest)

	resp, _ = shelter.postMultipart("/shelter/pet/new", map[string]string{"species": "Cat"}, "", nil)
	expectStatus(t, resp, http.StatusBadRequest)

	if entries, _ := os.ReadDir(srv.imagesDir); len(entries) != 0 {
		t.Fatalf("rejected uploads were stored: %v", entries)
	}
	_, body = shelter.get("/shelter/pets")
	if strings.Contains(body, "Tom") {
		t.Fatal("rejected listing was created")
	}
}

func TestEditPet(t *testing.T) {
	srv := newTestServer(t)
	shelter := srv.browser(t)
	shelter.signUp("Paws", "paws@shelter.org", "shelter")
	shelter.listPet("Rex", "Dog")

	resp, body := shelter.get("/shelter/pets/1/edit")
	expectStatus(t, resp, http.StatusOK)
	if !strings.Contains(body, `value="Rex"`) {
		t.Fatalf("edit form not prefilled: %s", body)
	}

	resp, _ = shelter.postMultipart("/shelter/pets/1/edit", map[string]string{"name": "Rex", "species": "Dog", "age": "x"}, "", nil)
	expectStatus(t, resp, http.StatusBadRequest)

	resp, _ = shelter.postMultipart("/shelter/pets/1/edit", map[string]string{"name": "Rexy", "species": "Dog", "breed": "Beagle"}, "", nil)
	expectRedirect(t, resp, "/shelter/pets?message=Pet+updated+successfully")

	_, body = shelter.get("/pets/1")
	if !strings.Contains(body, "Rexy") || !strings.Contains(body, "Beagle") {
		t.Fatalf("edit not applied: %s", body)
	}
}

func TestPetFormWithoutMultipart(t *testing.T) {
	srv := newTestServer(t)
	shelter := srv.browser(t)
	shelter.signUp("Paws", "paws@shelter.org", "shelter")

	resp, _ := shelter.post("/shelter/pet/new", url.Values{"name": {"Rex"}, "species": {"Dog"}})
	expectRedirect(t, resp, "/shelter/pets?message=Pet+listed+successfully")

	_, body := shelter.get("/pets/1")
	if !strings.Contains(body, `src="/images/no_photo.jpg"`) {
		t.Fatalf("placeholder photo not used: %s", body)
	}

	resp, _ = shelter.post("/shelter/pet/new", url.Values{"species": {"Dog"}})
	expectStatus(t, resp, http.StatusBadRequest)

	resp, _ = shelter.post("/shelter/pets/1/edit", url.Values{"name": {"Rexy"}, "species": {"Dog"}})
	expectRedirect(t, resp, "/shelter/pets?message=Pet+updated+successfully")
	_, body = shelter.get("/pets/1")
	if !strings.Contains(body, "Rexy") || !strings.Contains(body, `src="/images/no_photo.jpg"`) {
		t.Fatalf("urlencoded edit not applied: %s", body)
	}
}

// brokenSessions имитирует недоступное хранилище сессий.
type brokenSessions struct{}

var errSessionsDown = errors.New("connection refused")

func (brokenSessions) Create(context.Context, domain.SessionUser) (string, error) {
	return "", errSessionsDown
}

func (brokenSessions) Get(context.Context, string) (*domain.SessionUser, error) {
	return nil, errSessionsDown
}

func (brokenSessions) Delete(context.Context, string) error { return errSessionsDown }

func TestSessionStoreFailureIsServerError(t *testing.T) {
	srv := newTestServerWithSessions(t, brokenSessions{})
	b := srv.browser(t)

	// без cookie хранилище не опрашивается
	resp, _ := b.get("/pets")
	expectStatus(t, resp, http.StatusOK)

	u, _ := url.Parse(srv.URL)
	b.c.Jar.SetCookies(u, []*http.Cookie{{Name: "sid", Value: "some-session"}})

	resp, _ = b.get("/shelter/pets")
	expectStatus(t, resp, http.StatusInternalServerError)
	resp, _ = b.get("/pets")
	expectStatus(t, resp, http.StatusInternalServerError)
}

func TestPublicPages(t *testing.T) {
	srv := newTestServer(t)
	b := srv.browser(t)

	for _, path := range []string{"/", "/about", "/contact", "/pets", "/login", "/register"} {
		resp, _ := b.get(path)
		expectStatus(t, resp, http.StatusOK)
	}
	for _, path := range []string{"/pets/1", "/pets/abc", "/nowhere"} {
		resp, _ := b.get(path)
		expectStatus(t, resp, http.StatusNotFound)
	}

	resp, _ := b.get("/images/no_photo.jpg")
	expectStatus(t, resp, http.StatusOK)

	resp, body := b.get("/health")
	expectStatus(t, resp, http.StatusOK)
	if body != "ok" {
		t.Fatalf("health body = %q", body)
	}
}
