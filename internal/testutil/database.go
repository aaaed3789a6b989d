package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a MySQL instance
// on localhost:3306 with a 'gasline_test' schema; skips the test when none
// is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/gasline_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders", "ProductTax", "PricelistItem", "Tax",
		"Product", "Warehouse", "Company", "Partner"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the back-office tables the repositories touch.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createPartnerTable := `
	CREATE TABLE IF NOT EXISTS Partner (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		parentId BIGINT,
		type VARCHAR(20) NOT NULL DEFAULT 'contact',
		name VARCHAR(255) NOT NULL,
		email VARCHAR(150),
		phone VARCHAR(30),
		street VARCHAR(255),
		street2 VARCHAR(255),
		city VARCHAR(100),
		state VARCHAR(100),
		zip VARCHAR(20),
		country VARCHAR(100),
		lat DECIMAL(10,7),
		lng DECIMAL(10,7),
		vat VARCHAR(20),
		fiscalRegime VARCHAR(40),
		isCompany TINYINT(1) NOT NULL DEFAULT 0,
		companyId INT,
		portalActive TINYINT(1) NOT NULL DEFAULT 0,
		portalToken VARCHAR(64),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_parent_type (parentId, type)
	)`

	createCompanyTable := `
	CREATE TABLE IF NOT EXISTS Company (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		street VARCHAR(255),
		city VARCHAR(100),
		zip VARCHAR(20),
		isBranch TINYINT(1) NOT NULL DEFAULT 0
	)`

	createWarehouseTable := `
	CREATE TABLE IF NOT EXISTS Warehouse (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		branchId INT,
		street VARCHAR(255),
		city VARCHAR(100),
		zip VARCHAR(20),
		lat DECIMAL(10,7),
		lng DECIMAL(10,7),
		INDEX idx_branch (branchId)
	)`

	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		listPrice DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		categoryId INT,
		category VARCHAR(20) NOT NULL DEFAULT 'supply',
		companyId INT,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		isDeleted TINYINT(1) NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_deleted (isDeleted)
	)`

	createTaxTable := `
	CREATE TABLE IF NOT EXISTS Tax (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		amount DECIMAL(6,3) NOT NULL,
		companyId INT NOT NULL
	)`

	createProductTaxTable := `
	CREATE TABLE IF NOT EXISTS ProductTax (
		productId INT NOT NULL,
		taxId INT NOT NULL,
		PRIMARY KEY (productId, taxId)
	)`

	createPricelistItemTable := `
	CREATE TABLE IF NOT EXISTS PricelistItem (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		appliedOn VARCHAR(20) NOT NULL,
		productId INT,
		categoryId INT,
		computePrice VARCHAR(20) NOT NULL,
		fixedPrice DECIMAL(10,2),
		percentPrice DECIMAL(6,3),
		minQuantity INT NOT NULL DEFAULT 0,
		dateStart DATETIME,
		dateEnd DATETIME,
		INDEX idx_applied (appliedOn)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		partnerId BIGINT NOT NULL,
		shippingAddressId BIGINT NOT NULL,
		invoiceAddressId BIGINT NOT NULL,
		warehouseId INT,
		companyId INT NOT NULL DEFAULT 1,
		notes TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'CREATED',
		totalPrice DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_partner (partnerId)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId BIGINT NOT NULL,
		productId INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		quantity DECIMAL(10,3) NOT NULL DEFAULT 1,
		priceUnit DECIMAL(10,2) NOT NULL,
		taxRate DECIMAL(6,3) NOT NULL DEFAULT 0,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Partner", createPartnerTable},
		{"Company", createCompanyTable},
		{"Warehouse", createWarehouseTable},
		{"Product", createProductTable},
		{"Tax", createTaxTable},
		{"ProductTax", createProductTaxTable},
		{"PricelistItem", createPricelistItemTable},
		{"Orders", createOrdersTable},
		{"OrderItems", createOrderItemsTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
