package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/pumpcare/connect/internal/auth"
	"github.com/pumpcare/connect/internal/model"
)

// Updates go through the same email and phone validators as signups; a
// malformed value must be rejected before the store is touched.

func TestVillagerUpdate_RejectsBadEmail(t *testing.T) {
	villagers := newFakeVillagerStore()
	h := NewVillagerHandler(testCfg, villagers, newFakeFeedbackStore(), nil)
	if err := villagers.Create(context.Background(), model.Villager{
		HouseNo: 12, Name: "Ravi", ContactNo: "9876543210",
		Email: "ravi@x.com", PasswordHash: "x",
	}); err != nil {
		t.Fatalf("seed villager: %v", err)
	}
	villagers.calls = 0

	c, rec := sectorCtx(http.MethodPut, "/updateVillager/12",
		`{"villager_name":"Ravi","contact_no":"9876543210","v_email":"not-an-email"}`,
		1, auth.RoleAdmin, "house_no", "12")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
	if villagers.calls != 0 {
		t.Errorf("store was touched %d times for an invalid email", villagers.calls)
	}
	v, err := villagers.GetByHouseNo(context.Background(), 12)
	if err != nil || v.Email != "ravi@x.com" {
		t.Errorf("stored email = %q (%v), row changed by rejected update", v.Email, err)
	}
}

func TestOperatorUpdate_RejectsBadPhone(t *testing.T) {
	operators := newFakeOperatorStore()
	h := NewOperatorHandler(testCfg, operators)
	if _, err := operators.Create(context.Background(), model.Operator{
		Name: "Kumar", ContactNo: "9876543210", Email: "kumar@x.com", PasswordHash: "x",
	}); err != nil {
		t.Fatalf("seed operator: %v", err)
	}
	operators.calls = 0

	c, rec := sectorCtx(http.MethodPut, "/updateOperator/1",
		`{"pump_operator_name":"Kumar","contact_no":"12345","po_email":"kumar@x.com"}`,
		1, auth.RoleAdmin, "id", "1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
	if operators.calls != 0 {
		t.Errorf("store was touched %d times for an invalid phone", operators.calls)
	}
}

func TestOperatorAdd_RejectsBadPhone(t *testing.T) {
	operators := newFakeOperatorStore()
	h := NewOperatorHandler(testCfg, operators)

	c, rec := sectorCtx(http.MethodPost, "/adminAddOperator",
		`{"pump_operator_name":"Kumar","contact_no":"12345","po_email":"kumar@x.com","po_password":"pw"}`,
		1, auth.RoleAdmin)
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
	if operators.calls != 0 {
		t.Errorf("store was touched %d times for an invalid phone", operators.calls)
	}
}

func TestPanchayatUpdate_RejectsBadEmail(t *testing.T) {
	panchayats := newFakePanchayatStore()
	h := NewPanchayatHandler(testCfg, panchayats, newFakeFeedbackStore())
	if _, err := panchayats.Create(context.Background(), model.Panchayat{
		Name: "Hosur GP", Location: "Hosur", PDOName: "Meena",
		ContactNo: "9876543210", Email: "hosur@gp.gov.in", PasswordHash: "x",
	}); err != nil {
		t.Fatalf("seed panchayat: %v", err)
	}
	panchayats.calls = 0

	c, rec := sectorCtx(http.MethodPut, "/adminUpdatePanchayat/1",
		`{"panchayat_name":"Hosur GP","panchayat_loc":"Hosur","pdo_name":"Meena","contact_no":"9876543210","p_email":"bad email"}`,
		1, auth.RoleAdmin, "id", "1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
	if panchayats.calls != 0 {
		t.Errorf("store was touched %d times for an invalid email", panchayats.calls)
	}
}
