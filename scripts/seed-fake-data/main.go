package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	numGuestProfiles = 20
	numOrders        = 40
)

var (
	db         *sql.DB
	productIDs []string
	guestIDs   []string
	guestMails []string
)

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/chocolaterie.db"
	}

	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("🌱 Starting database seeding...")

	loadProductIDs()
	if len(productIDs) == 0 {
		log.Fatal("❌ No products found. Run scripts/seed-products first.")
	}
	fmt.Printf("✓ Found %d products\n", len(productIDs))

	clearFakeData()
	seedGuestProfiles()
	seedOrders()

	fmt.Println()
	fmt.Println("✅ Database seeding completed!")
}

func loadProductIDs() {
	rows, err := db.Query("SELECT id FROM products WHERE is_active = 1 LIMIT 50")
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Printf("Error scanning product: %v", err)
			continue
		}
		productIDs = append(productIDs, id)
	}
}

func clearFakeData() {
	fmt.Println("🧹 Clearing existing fake data...")

	for _, table := range []string{"order_items", "orders"} {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			log.Printf("Warning: failed to clear %s: %v", table, err)
		}
	}
	// Keep profiles that are bound to a real account
	if _, err := db.Exec("DELETE FROM profiles WHERE user_id IS NULL"); err != nil {
		log.Printf("Warning: failed to clear guest profiles: %v", err)
	}
}

func seedGuestProfiles() {
	fmt.Println("👥 Creating guest profiles...")

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO profiles (id, email, first_name, last_name, phone, is_guest)
		VALUES (?, ?, ?, ?, ?, 1)
	`)
	if err != nil {
		log.Fatalf("Failed to prepare statement: %v", err)
	}
	defer stmt.Close()

	for i := 0; i < numGuestProfiles; i++ {
		id := uuid.New().String()
		email := strings.ToLower(gofakeit.Email())
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		phone := gofakeit.Phone()

		if _, err := stmt.Exec(id, email, first, last, phone); err != nil {
			log.Printf("Skipping duplicate guest %s: %v", email, err)
			continue
		}
		guestIDs = append(guestIDs, id)
		guestMails = append(guestMails, email)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit guests: %v", err)
	}
	fmt.Printf("✓ Created %d guest profiles\n", len(guestIDs))
}

func seedOrders() {
	fmt.Println("📦 Creating orders...")

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	orderStmt, err := tx.Prepare(`
		INSERT INTO orders (id, profile_id, order_number, customer_email, customer_name,
			status, shipping_address_line1, shipping_city, shipping_postal_code, shipping_country,
			subtotal_cents, shipping_cents, total_cents, stripe_session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		log.Fatalf("Failed to prepare order statement: %v", err)
	}
	defer orderStmt.Close()

	itemStmt, err := tx.Prepare(`
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price_cents, total_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		log.Fatalf("Failed to prepare item statement: %v", err)
	}
	defer itemStmt.Close()

	for i := 0; i < numOrders; i++ {
		g := rand.Intn(len(guestIDs))
		orderID := uuid.New().String()
		orderNumber := fmt.Sprintf("CB-%08X", rand.Int31())
		createdAt := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())

		var subtotal int64
		numItems := 1 + rand.Intn(3)
		type line struct {
			productID string
			name      string
			qty       int64
			unit      int64
		}
		lines := make([]line, 0, numItems)
		for j := 0; j < numItems; j++ {
			pid := productIDs[rand.Intn(len(productIDs))]
			var name string
			var unit int64
			if err := tx.QueryRow("SELECT name, price_cents FROM products WHERE id = ?", pid).Scan(&name, &unit); err != nil {
				log.Fatalf("Failed to read product: %v", err)
			}
			qty := int64(1 + rand.Intn(3))
			lines = append(lines, line{pid, name, qty, unit})
			subtotal += qty * unit
		}

		var shippingCents int64 = 1000
		if subtotal >= 7000 {
			shippingCents = 0
		}

		_, err := orderStmt.Exec(
			orderID,
			guestIDs[g],
			orderNumber,
			guestMails[g],
			gofakeit.Name(),
			"confirmed",
			gofakeit.Street(),
			gofakeit.City(),
			gofakeit.Zip(),
			"FR",
			subtotal,
			shippingCents,
			subtotal+shippingCents,
			"cs_test_"+uuid.New().String(),
			createdAt.UTC().Format("2006-01-02 15:04:05"),
		)
		if err != nil {
			log.Fatalf("Failed to insert order: %v", err)
		}

		for _, l := range lines {
			if _, err := itemStmt.Exec(uuid.New().String(), orderID, l.productID, l.name, l.qty, l.unit, l.qty*l.unit); err != nil {
				log.Fatalf("Failed to insert order item: %v", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit orders: %v", err)
	}
	fmt.Printf("✓ Created %d orders\n", numOrders)
}
