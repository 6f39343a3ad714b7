package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pumpcare/connect/internal/auth"
	"github.com/pumpcare/connect/internal/config"
	"github.com/pumpcare/connect/internal/model"
)

var testCfg = config.Config{
	JWTSecret:    "handler-test-secret",
	AccessTTLMin: 60,
	BcryptCost:   4, // low cost keeps the tests fast
}

func newAuthHandler() (*AuthHandler, *fakeAdminStore, *fakeVillagerStore) {
	admins := newFakeAdminStore()
	villagers := newFakeVillagerStore()
	h := NewAuthHandler(testCfg, admins, newFakePanchayatStore(), newFakeOperatorStore(), villagers)
	return h, admins, villagers
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
}

func seedAdmin(t *testing.T, admins *fakeAdminStore, email, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password, testCfg.BcryptCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if _, err := admins.Create(context.Background(), "Admin", email, hash); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	admins.calls = 0
}

func TestLoginAdmin_Success(t *testing.T) {
	h, admins, _ := newAuthHandler()
	seedAdmin(t, admins, "admin@gp.gov.in", "secret123")

	rec := doJSON(t, h.LoginAdmin, http.MethodPost, "/login",
		`{"email":"admin@gp.gov.in","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	if resp.Message != "Login successful" {
		t.Errorf("message = %q", resp.Message)
	}
	claims, err := auth.ParseToken(testCfg.JWTSecret, resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Role != auth.RoleAdmin || claims.Email != "admin@gp.gov.in" {
		t.Errorf("claims = (%q, %q), want (admin, admin@gp.gov.in)", claims.Role, claims.Email)
	}
}

// The villager's house number doubles as the token principal id.
func TestLoginVillager_HouseNoAsPrincipal(t *testing.T) {
	h, _, villagers := newAuthHandler()
	hash, err := auth.HashPassword("pw", testCfg.BcryptCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if err := villagers.Create(context.Background(), model.Villager{
		HouseNo: 77, Name: "Ravi", ContactNo: "9876543210",
		Email: "ravi@x.com", PasswordHash: hash,
	}); err != nil {
		t.Fatalf("seed villager: %v", err)
	}

	rec := doJSON(t, h.LoginVillager, http.MethodPost, "/loginv",
		`{"email":"ravi@x.com","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	claims, err := auth.ParseToken(testCfg.JWTSecret, resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.ID != 77 || claims.Role != auth.RoleVillager {
		t.Errorf("claims = (%d, %q), want (77, villager)", claims.ID, claims.Role)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLogin_DoesNotRevealWhichFieldFailed(t *testing.T) {
	h, admins, _ := newAuthHandler()
	seedAdmin(t, admins, "admin@gp.gov.in", "secret123")

	unknown := doJSON(t, h.LoginAdmin, http.MethodPost, "/login",
		`{"email":"nobody@gp.gov.in","password":"secret123"}`)
	wrongPw := doJSON(t, h.LoginAdmin, http.MethodPost, "/login",
		`{"email":"admin@gp.gov.in","password":"nope"}`)

	if unknown.Code != http.StatusBadRequest || wrongPw.Code != http.StatusBadRequest {
		t.Fatalf("status = (%d, %d), want (400, 400)", unknown.Code, wrongPw.Code)
	}
	if unknown.Body.String() != wrongPw.Body.String() {
		t.Errorf("bodies differ:\n unknown email: %s\n wrong password: %s",
			unknown.Body.String(), wrongPw.Body.String())
	}
	if !strings.Contains(unknown.Body.String(), "Email or Password does not match!!") {
		t.Errorf("body = %s, want the shared mismatch message", unknown.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h, admins, _ := newAuthHandler()
	rec := doJSON(t, h.LoginAdmin, http.MethodPost, "/login", `{"email":"admin@gp.gov.in"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if admins.calls != 0 {
		t.Errorf("store was queried %d times for an incomplete request", admins.calls)
	}
}

func TestSignupAdmin_StoresHashNotPlaintext(t *testing.T) {
	h, admins, _ := newAuthHandler()
	rec := doJSON(t, h.SignupAdmin, http.MethodPost, "/signup",
		`{"admin_name":"A","admin_email":"admin@gp.gov.in","admin_password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	stored, err := admins.GetByEmail(context.Background(), "admin@gp.gov.in")
	if err != nil {
		t.Fatalf("admin was not stored: %v", err)
	}
	if stored.PasswordHash == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.VerifyPassword(stored.PasswordHash, "secret123") {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestSignupAdmin_DuplicateEmail(t *testing.T) {
	h, _, _ := newAuthHandler()
	body := `{"admin_name":"A","admin_email":"admin@gp.gov.in","admin_password":"secret123"}`
	if rec := doJSON(t, h.SignupAdmin, http.MethodPost, "/signup", body); rec.Code != http.StatusOK {
		t.Fatalf("first signup: status = %d", rec.Code)
	}
	rec := doJSON(t, h.SignupAdmin, http.MethodPost, "/signup", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second signup: status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Errorf("body = %s, want an already-exists message", rec.Body.String())
	}
}

func TestSignupAdmin_RejectsBadEmail(t *testing.T) {
	h, admins, _ := newAuthHandler()
	rec := doJSON(t, h.SignupAdmin, http.MethodPost, "/signup",
		`{"admin_name":"A","admin_email":"not-an-email","admin_password":"secret123"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if admins.calls != 0 {
		t.Errorf("store was touched %d times for an invalid email", admins.calls)
	}
}

func TestSignupVillager_RejectsBadPhone(t *testing.T) {
	h, _, villagers := newAuthHandler()
	rec := doJSON(t, h.SignupVillager, http.MethodPost, "/signupv",
		`{"house_no":12,"villager_name":"R","contact_no":"12345","v_email":"r@x.com","v_password":"pw"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if villagers.calls != 0 {
		t.Errorf("store was touched %d times for an invalid phone", villagers.calls)
	}
}
