package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	// sqlite serializes writers; a single connection keeps concurrent
	// test goroutines from tripping over table locks
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'student',
		phone TEXT,
		balance_cents INTEGER NOT NULL DEFAULT 0,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		referral_code TEXT NOT NULL UNIQUE,
		referred_by TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createReferralTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE referrals (
		id TEXT PRIMARY KEY,
		referrer_id TEXT NOT NULL,
		referred_id TEXT NOT NULL UNIQUE,
		reward_paid BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		mpesa_code TEXT,
		bank_tx_code TEXT,
		screenshot_url TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		verified_by TEXT,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createWithdrawalTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE withdrawals (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		processed_by TEXT,
		processed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createEnrollmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE enrollments (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		mentor_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		enrolled_at DATETIME
	);`)
}

func createAdminSettingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admin_settings (
		id TEXT PRIMARY KEY,
		setting_key TEXT NOT NULL UNIQUE,
		setting_value TEXT,
		updated_by TEXT,
		updated_at DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createAccountTable(t, db)
	createReferralTable(t, db)
	createPaymentTable(t, db)
	createWithdrawalTable(t, db)
	createEnrollmentTable(t, db)
	createAdminSettingTable(t, db)
}
