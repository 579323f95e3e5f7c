package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"marketbook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTenant creates a tenant organization.
func CreateTestTenant(t *testing.T, db *gorm.DB) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		Name:         fmt.Sprintf("Test Vendor %d", nextID()),
		ContactEmail: fmt.Sprintf("vendor%d@test.com", nextID()),
		IsActive:     true,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("failed to create test tenant: %v", err)
	}
	return tenant
}

// CreateTestUser creates a user in the given tenant with a hashed password
// and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, tenantID string) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, tenantID, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, tenantID, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		TenantID: tenantID,
		Email:    email,
		Password: string(hash),
		Role:     "member",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProduct creates an active product in the given tenant.
func CreateTestProduct(t *testing.T, db *gorm.DB, tenantID string) *models.Product {
	t.Helper()

	n := nextID()
	product := &models.Product{
		TenantID:   tenantID,
		SKU:        fmt.Sprintf("SKU-%04d", n),
		Name:       fmt.Sprintf("Test Product %d", n),
		Category:   "ceramics",
		PriceCents: 2500,
		Currency:   "USD",
		StockQty:   10,
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestSale creates a direct-channel sale of the given product.
func CreateTestSale(t *testing.T, db *gorm.DB, tenantID, productID string) *models.Sale {
	t.Helper()

	sale := &models.Sale{
		TenantID:       tenantID,
		ProductID:      productID,
		Quantity:       1,
		UnitPriceCents: 2500,
		TotalCents:     2500,
		Currency:       "USD",
		Channel:        models.SaleChannelDirect,
		CustomerEmail:  fmt.Sprintf("customer%d@test.com", nextID()),
		SoldAt:         time.Now().UTC(),
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("failed to create test sale: %v", err)
	}
	return sale
}
