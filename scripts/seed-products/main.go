package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type product struct {
	Slug          string
	Name          string
	Description   string
	Category      string
	PriceCents    int64
	ProPriceCents int64
	WeightGrams   int64
}

// The real catalog: tablettes, ballotins and seasonal pieces. Pro prices
// are roughly 20% under retail, matching the wholesale price list.
var catalog = []product{
	{"tablette-noir-70", "Tablette Noir 70%", "Grand cru de Tanzanie, notes de fruits rouges", "tablettes", 650, 520, 100},
	{"tablette-noir-85", "Tablette Noir 85%", "Intense et peu sucré, origine Équateur", "tablettes", 700, 560, 100},
	{"tablette-lait-45", "Tablette Lait 45%", "Lait entier des Alpes, caramel doux", "tablettes", 600, 480, 100},
	{"tablette-lait-noisettes", "Tablette Lait Noisettes", "Noisettes du Piémont torréfiées entières", "tablettes", 750, 600, 110},
	{"tablette-blanc-vanille", "Tablette Blanc Vanille", "Vanille Bourbon de Madagascar", "tablettes", 680, 540, 100},
	{"ballotin-250", "Ballotin Assortiment 250g", "Assortiment de pralinés et ganaches maison", "ballotins", 1850, 1480, 250},
	{"ballotin-500", "Ballotin Assortiment 500g", "Assortiment de pralinés et ganaches maison", "ballotins", 3500, 2800, 500},
	{"ballotin-750", "Ballotin Assortiment 750g", "Assortiment de pralinés et ganaches maison", "ballotins", 4950, 3960, 750},
	{"coffret-grands-crus", "Coffret Grands Crus", "Six tablettes d'origine, de 64% à 100%", "coffrets", 3900, 3120, 620},
	{"coffret-degustation", "Coffret Dégustation", "Seize bouchées, accord café et thé", "coffrets", 2400, 1920, 180},
	{"orangettes-200", "Orangettes 200g", "Écorces d'orange confites, chocolat noir", "confiseries", 1250, 1000, 200},
	{"mendiants-150", "Mendiants 150g", "Noir et lait, fruits secs et confits", "confiseries", 1100, 880, 150},
	{"pate-a-tartiner", "Pâte à Tartiner Noisette", "65% de noisettes, sans huile de palme", "confiseries", 890, 712, 300},
	{"truffes-nature-180", "Truffes Nature 180g", "Ganache crème fraîche, cacao amer", "confiseries", 1450, 1160, 180},
	{"chocolat-chaud-300", "Chocolat Chaud en Grains 300g", "Noir 70% à fondre, recette à l'ancienne", "confiseries", 950, 760, 300},
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/chocolaterie.db"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("🌱 Seeding product catalog...")

	stmt, err := db.Prepare(`
		INSERT INTO products (id, slug, name, description, category, price_cents, pro_price_cents, weight_grams, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			price_cents = excluded.price_cents,
			pro_price_cents = excluded.pro_price_cents,
			weight_grams = excluded.weight_grams,
			is_active = 1
	`)
	if err != nil {
		log.Fatalf("Failed to prepare statement: %v", err)
	}
	defer stmt.Close()

	for _, p := range catalog {
		_, err := stmt.Exec(uuid.New().String(), p.Slug, p.Name, p.Description, p.Category, p.PriceCents, p.ProPriceCents, p.WeightGrams)
		if err != nil {
			log.Fatalf("Failed to seed %s: %v", p.Slug, err)
		}
		fmt.Printf("✓ %s\n", p.Name)
	}

	fmt.Printf("\n✅ Seeded %d products\n", len(catalog))
}
