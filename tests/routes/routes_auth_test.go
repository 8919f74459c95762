package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ewaste/models"
	"ewaste/routes"
	"ewaste/tests/mocks"
	"ewaste/utils"
)

/* ---------- helpers ---------- */

type serverDeps struct {
	s  *gin.Engine
	ur *mocks.MockUserRepo
	er *mocks.MockEventRepo
	dr *mocks.MockDropOffRepo
}

func setupServerWithDeps(t *testing.T) serverDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	t.Cleanup(func() { mr.Close() })

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inv := utils.NewCacheInvalidator(rdb)

	ur := &mocks.MockUserRepo{Users: map[string]models.User{}}
	er := &mocks.MockEventRepo{Items: map[string]models.Event{}}
	dr := &mocks.MockDropOffRepo{Users: ur}

	s := gin.New()
	routes.RegisterRoutes(s, ur, er, dr, rdb, inv)
	return serverDeps{s: s, ur: ur, er: er, dr: dr}
}

func authToken(t *testing.T, uid int64, isAdmin bool) string {
	t.Helper()
	token, err := utils.GenerateToken("tester@example.com", uid, isAdmin)
	if err != nil {
		t.Fatalf("gen token: %v", err)
	}
	return token
}

func doReq(s *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	s.ServeHTTP(w, req)
	return w
}

/* ---------- registration & login ---------- */

func TestRegisterAndLogin(t *testing.T) {
	deps := setupServerWithDeps(t)

	w := doReq(deps.s, http.MethodPost, "/api/users/register",
		`{"email":"a@x.com","password":"pw123"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register code=%d body=%s", w.Code, w.Body.String())
	}

	w = doReq(deps.s, http.MethodPost, "/api/users/login",
		`{"email":"a@x.com","password":"pw123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login code=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token   string `json:"token"`
		Rewards int64  `json:"rewards"`
		IsAdmin bool   `json:"isAdmin"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("empty token")
	}
	if resp.Rewards != 0 || resp.IsAdmin {
		t.Fatalf("fresh user: rewards=%d isAdmin=%v", resp.Rewards, resp.IsAdmin)
	}

	// the token's claims must decode back to the same account
	claims, err := utils.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != deps.ur.Users["a@x.com"].ID || claims.Email != "a@x.com" || claims.IsAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	deps := setupServerWithDeps(t)

	w := doReq(deps.s, http.MethodPost, "/api/users/register", `{"email":"a@x.com"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 got %d", w.Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	deps := setupServerWithDeps(t)

	body := `{"email":"dup@x.com","password":"pw"}`
	if w := doReq(deps.s, http.MethodPost, "/api/users/register", body, ""); w.Code != http.StatusCreated {
		t.Fatalf("first register code=%d", w.Code)
	}
	w := doReq(deps.s, http.MethodPost, "/api/users/register", body, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("dup register want 409 got %d body=%s", w.Code, w.Body.String())
	}
}

// Wrong password and unknown email must be indistinguishable.
func TestLogin_UniformFailure(t *testing.T) {
	deps := setupServerWithDeps(t)

	doReq(deps.s, http.MethodPost, "/api/users/register",
		`{"email":"known@x.com","password":"right"}`, "")

	wrongPw := doReq(deps.s, http.MethodPost, "/api/users/login",
		`{"email":"known@x.com","password":"wrong"}`, "")
	unknown := doReq(deps.s, http.MethodPost, "/api/users/login",
		`{"email":"nobody@x.com","password":"whatever"}`, "")

	if wrongPw.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("want 401/401 got %d/%d", wrongPw.Code, unknown.Code)
	}
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Fatalf("failure bodies differ: %q vs %q", wrongPw.Body.String(), unknown.Body.String())
	}
}

func TestAdminRegisterAndLogin(t *testing.T) {
	deps := setupServerWithDeps(t)

	w := doReq(deps.s, http.MethodPost, "/api/admin/register",
		`{"email":"boss@x.com","password":"pw"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("admin register code=%d", w.Code)
	}
	if !deps.ur.Users["boss@x.com"].IsAdmin {
		t.Fatalf("admin flag not set")
	}

	w = doReq(deps.s, http.MethodPost, "/api/admin/login",
		`{"email":"boss@x.com","password":"pw"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("admin login code=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"isAdmin"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" || !resp.IsAdmin {
		t.Fatalf("admin login resp: %+v", resp)
	}
}

// A plain user with the right password still cannot pass admin login.
func TestAdminLogin_NonAdminRejected(t *testing.T) {
	deps := setupServerWithDeps(t)

	doReq(deps.s, http.MethodPost, "/api/users/register",
		`{"email":"pleb@x.com","password":"pw"}`, "")
	w := doReq(deps.s, http.MethodPost, "/api/admin/login",
		`{"email":"pleb@x.com","password":"pw"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d", w.Code)
	}
}

/* ---------- /api/users/me ---------- */

func TestMe(t *testing.T) {
	deps := setupServerWithDeps(t)

	doReq(deps.s, http.MethodPost, "/api/users/register",
		`{"email":"me@x.com","password":"pw"}`, "")
	token := authToken(t, deps.ur.Users["me@x.com"].ID, false)

	w := doReq(deps.s, http.MethodGet, "/api/users/me", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("me code=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Email   string `json:"email"`
		Rewards int64  `json:"rewards"`
		IsAdmin bool   `json:"isAdmin"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Email != "me@x.com" || resp.Rewards != 0 || resp.IsAdmin {
		t.Fatalf("me resp: %+v", resp)
	}
}

func TestMe_UnknownAccount(t *testing.T) {
	deps := setupServerWithDeps(t)

	// valid token for an id that has no account record behind it
	token := authToken(t, 9999, false)
	w := doReq(deps.s, http.MethodGet, "/api/users/me", "", token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404 got %d", w.Code)
	}
}

func TestMe_NoToken(t *testing.T) {
	deps := setupServerWithDeps(t)

	w := doReq(deps.s, http.MethodGet, "/api/users/me", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d", w.Code)
	}
}
