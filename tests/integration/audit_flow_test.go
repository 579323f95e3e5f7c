package integration

import (
	"fmt"
	"net/http"
	"testing"

	"marketbook/internal/models"
)

func TestAuditFlow_ChainGrowsWithTenantActivity(t *testing.T) {
	app := setupApp(t)
	token, _, tenantID := app.registerTenant(t, "Riverside Pottery", "owner@pottery.test", "password123")

	// Registration itself is the chain head.
	result := app.verifyChain(t, token)
	if result["is_valid"] != true {
		t.Fatalf("expected valid chain after registration, got %v", result)
	}
	if result["entries_checked"].(float64) != 1 {
		t.Fatalf("expected 1 entry (registration), got %v", result["entries_checked"])
	}

	// Product lifecycle: create, update, delete.
	productID := app.createProduct(t, token, "MUG-001", "Stoneware Mug", 2500, 40)

	rec := app.request("PUT", "/api/v1/products/"+productID, `{"price_cents":2700}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", "/api/v1/products/"+productID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	// Registration + create + update + delete = 4 entries, all linked.
	result = app.verifyChain(t, token)
	if result["is_valid"] != true {
		t.Fatalf("expected valid chain, got %v", result)
	}
	if result["entries_checked"].(float64) != 4 {
		t.Errorf("expected 4 entries, got %v", result["entries_checked"])
	}

	// The entries list shows the lifecycle, newest first.
	rec = app.request("GET", "/api/v1/audit/entries", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	listResult := parseJSON(t, rec)
	data := listResult["data"].([]interface{})
	if len(data) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(data))
	}
	newest := data[0].(map[string]interface{})
	if newest["action"] != string(models.AuditActionDelete) {
		t.Errorf("expected newest entry DELETE, got %v", newest["action"])
	}
	if newest["tenant_id"] != tenantID {
		t.Errorf("expected tenant %s, got %v", tenantID, newest["tenant_id"])
	}
	if newest["before_state"] == nil || newest["before_state"] == "" {
		t.Error("expected DELETE entry to carry a before-state snapshot")
	}
}

func TestAuditFlow_TamperingIsDetected(t *testing.T) {
	app := setupApp(t)
	token, _, tenantID := app.registerTenant(t, "Riverside Pottery", "owner@pottery.test", "password123")

	app.createProduct(t, token, "MUG-001", "Stoneware Mug", 2500, 40)
	app.createProduct(t, token, "VASE-001", "Tall Vase", 6000, 10)

	result := app.verifyChain(t, token)
	if result["is_valid"] != true {
		t.Fatalf("expected valid chain before tampering, got %v", result)
	}

	// Rewrite an entry's actor directly in the database, bypassing the writer.
	var entries []models.AuditEntry
	if err := app.DB.Where("tenant_id = ?", tenantID).Order("timestamp asc, id asc").Find(&entries).Error; err != nil {
		t.Fatalf("failed to load entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	tampered := entries[1]
	if err := app.DB.Model(&models.AuditEntry{}).Where("id = ?", tampered.ID).
		Update("actor_email", "intruder@evil.test").Error; err != nil {
		t.Fatalf("failed to tamper: %v", err)
	}

	result = app.verifyChain(t, token)
	if result["is_valid"] != false {
		t.Fatal("expected tampering to break verification")
	}
	if result["first_broken_entry_id"] != tampered.ID {
		t.Errorf("expected first broken entry %s, got %v", tampered.ID, result["first_broken_entry_id"])
	}
	anomalies := result["anomalies"].([]interface{})
	first := anomalies[0].(map[string]interface{})
	if first["kind"] != "HASH_MISMATCH" {
		t.Errorf("expected HASH_MISMATCH, got %v", first["kind"])
	}
}

func TestAuditFlow_DeletedEntryIsDetected(t *testing.T) {
	app := setupApp(t)
	token, _, tenantID := app.registerTenant(t, "Riverside Pottery", "owner@pottery.test", "password123")

	app.createProduct(t, token, "MUG-001", "Stoneware Mug", 2500, 40)
	app.createProduct(t, token, "VASE-001", "Tall Vase", 6000, 10)

	var entries []models.AuditEntry
	if err := app.DB.Where("tenant_id = ?", tenantID).Order("timestamp asc, id asc").Find(&entries).Error; err != nil {
		t.Fatalf("failed to load entries: %v", err)
	}
	// Remove the middle entry, bypassing the append-only contract.
	if err := app.DB.Delete(&models.AuditEntry{}, "id = ?", entries[1].ID).Error; err != nil {
		t.Fatalf("failed to delete entry: %v", err)
	}

	result := app.verifyChain(t, token)
	if result["is_valid"] != false {
		t.Fatal("expected deletion to break verification")
	}
	if result["first_broken_entry_id"] != entries[2].ID {
		t.Errorf("expected break at successor %s, got %v", entries[2].ID, result["first_broken_entry_id"])
	}
}

func TestAuditFlow_TenantChainsAreIsolated(t *testing.T) {
	app := setupApp(t)
	tokenA, _, _ := app.registerTenant(t, "Riverside Pottery", "owner@pottery.test", "password123")
	tokenB, _, tenantB := app.registerTenant(t, "Harbor Prints", "owner@prints.test", "password123")

	app.createProduct(t, tokenA, "MUG-001", "Stoneware Mug", 2500, 40)
	app.createProduct(t, tokenB, "PRINT-001", "Harbor Print", 1500, 100)

	// Tamper with tenant B's chain.
	if err := app.DB.Model(&models.AuditEntry{}).
		Where("tenant_id = ? AND action = ?", tenantB, models.AuditActionCreate).
		Update("actor_email", "intruder@evil.test").Error; err != nil {
		t.Fatalf("failed to tamper: %v", err)
	}

	// Tenant A's chain is unaffected; tenant B's is broken.
	resultA := app.verifyChain(t, tokenA)
	if resultA["is_valid"] != true {
		t.Errorf("expected tenant A chain valid, got %v", resultA)
	}
	resultB := app.verifyChain(t, tokenB)
	if resultB["is_valid"] != false {
		t.Error("expected tenant B chain broken")
	}

	// Tenant A cannot see tenant B's entries.
	rec := app.request("GET", "/api/v1/audit/entries?page_size=100", "", tokenA)
	listResult := parseJSON(t, rec)
	for _, raw := range listResult["data"].([]interface{}) {
		entry := raw.(map[string]interface{})
		if entry["tenant_id"] == tenantB {
			t.Fatal("tenant A listing leaked tenant B entries")
		}
	}
}

func TestAuditFlow_LoginAppendsToChain(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerTenant(t, "Riverside Pottery", "owner@pottery.test", "password123")

	before := app.verifyChain(t, token)["entries_checked"].(float64)

	app.loginUser(t, "owner@pottery.test", "password123")

	after := app.verifyChain(t, token)
	if after["entries_checked"].(float64) != before+1 {
		t.Errorf("expected %v entries after login, got %v", before+1, after["entries_checked"])
	}
	if after["is_valid"] != true {
		t.Errorf("expected valid chain, got %v", after)
	}

	rec := app.request("GET", "/api/v1/audit/entries", "", token)
	listResult := parseJSON(t, rec)
	newest := listResult["data"].([]interface{})[0].(map[string]interface{})
	if newest["action"] != string(models.AuditActionLogin) {
		t.Errorf("expected newest entry LOGIN, got %v", newest["action"])
	}
}

func TestAuditFlow_WindowedVerification(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerTenant(t, "Riverside Pottery", "owner@pottery.test", "password123")
	app.createProduct(t, token, "MUG-001", "Stoneware Mug", 2500, 40)

	rec := app.request("GET", fmt.Sprintf("/api/v1/audit/verify?window_days=%d", 30), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["is_valid"] != true {
		t.Errorf("expected valid window, got %v", result)
	}
	if result["entries_checked"].(float64) != 2 {
		t.Errorf("expected 2 entries in window, got %v", result["entries_checked"])
	}
}
