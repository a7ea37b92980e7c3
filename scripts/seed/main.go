// Package main implements a standalone seed script that populates a running
// storefront with a realistic sample catalog. It logs into the back-office,
// wipes the current catalog, and creates products through the admin API so
// the seeded data goes through the same validation as a manual load.
//
// Run: go run ./scripts/seed
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --------------------------------------------------------------------------
// HTTP helpers
// --------------------------------------------------------------------------

// client carries the admin session cookie between calls.
var client *http.Client

func request(method, url string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return result, nil
}

// --------------------------------------------------------------------------
// Seed data definitions
// --------------------------------------------------------------------------

type productDef struct {
	name        string
	description string
	category    string
	price       int64
	features    []string
}

var catalog = []productDef{
	{
		name:        "Sartén Antiadherente 24cm",
		description: "Sartén de cerámica antiadherente apta para todo tipo de hornallas",
		category:    "cocina",
		price:       30450,
		features:    []string{"Envío Gratis 🚚"},
	},
	{
		name:        "Pava Eléctrica 1.7L",
		description: "Pava eléctrica con corte automático y base giratoria",
		category:    "cocina",
		price:       37400,
		features:    []string{"Envío Gratis 🚚"},
	},
	{
		name:        "Auriculares Inalámbricos",
		description: "Auriculares bluetooth con cancelación de ruido y estuche de carga",
		category:    "tech",
		price:       45900,
		features:    []string{"Envío Gratis 🚚"},
	},
	{
		name:        "Smartwatch Deportivo",
		description: "Reloj inteligente resistente al agua con monitor de ritmo cardíaco",
		category:    "tech",
		price:       52800,
	},
	{
		name:        "Juego de Sábanas Queen",
		description: "Sábanas de microfibra suave, juego completo con fundas",
		category:    "hogar",
		price:       28600,
	},
	{
		name:        "Lámpara Velador Táctil",
		description: "Velador de mesa con tres intensidades y carga inalámbrica",
		category:    "hogar",
		price:       19800,
	},
	{
		name:        "Carpa Iglú 4 Personas",
		description: "Carpa impermeable para camping con mosquitero y bolso de transporte",
		category:    "aire-libre",
		price:       89100,
		features:    []string{"Envío Gratis 🚚"},
	},
	{
		name:        "Linterna LED Recargable",
		description: "Linterna táctica recargable USB con zoom y tres modos de luz",
		category:    "aire-libre",
		price:       16500,
	},
	{
		name:        "Plancha de Pelo Cerámica",
		description: "Planchita de pelo con placas de cerámica y temperatura regulable",
		category:    "belleza",
		price:       33000,
	},
	{
		name:        "Set de Brochas Maquillaje",
		description: "Set de 12 brochas profesionales con estuche",
		category:    "belleza",
		price:       14300,
	},
}

// --------------------------------------------------------------------------
// main
// --------------------------------------------------------------------------

func main() {
	log.SetFlags(log.Ltime | log.Lmsgprefix)
	log.SetPrefix("[seed] ")

	siteURL := getEnv("SITE_URL", "http://localhost:8080")
	adminUser := getEnv("ADMIN_USER", "admin")
	adminPassword := getEnv("ADMIN_PASSWORD", "")

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("create cookie jar: %v", err)
	}
	client = &http.Client{Timeout: 15 * time.Second, Jar: jar}

	// ---------------------------------------------------------------
	// 1. Log into the back-office
	// ---------------------------------------------------------------
	log.Println("Logging into the back-office...")
	_, err = request(http.MethodPost, siteURL+"/api/v1/admin/login", map[string]string{
		"username": adminUser,
		"password": adminPassword,
	})
	if err != nil {
		log.Fatalf("admin login: %v", err)
	}
	log.Println("Logged in.")

	// ---------------------------------------------------------------
	// 2. Wipe the current catalog
	// ---------------------------------------------------------------
	log.Println("Wiping the catalog...")
	_, err = request(http.MethodDelete, siteURL+"/api/v1/admin/products?confirm=true", nil)
	if err != nil {
		log.Fatalf("wipe catalog: %v", err)
	}

	// ---------------------------------------------------------------
	// 3. Create the sample products
	// ---------------------------------------------------------------
	log.Printf("Creating %d products...", len(catalog))
	created := 0
	for _, p := range catalog {
		body := map[string]any{
			"name":        p.name,
			"price":       p.price,
			"category":    p.category,
			"description": p.description,
		}
		if len(p.features) > 0 {
			body["features"] = p.features
		}

		if _, err := request(http.MethodPost, siteURL+"/api/v1/admin/products", body); err != nil {
			log.Printf("  create %q: %v", p.name, err)
			continue
		}
		created++
	}
	log.Printf("Created %d/%d products.", created, len(catalog))

	// ---------------------------------------------------------------
	// 4. Verify through the public API
	// ---------------------------------------------------------------
	result, err := request(http.MethodGet, siteURL+"/api/v1/products?per_page=100", nil)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	if total, ok := result["total_count"].(float64); ok {
		log.Printf("Public catalog now holds %d products.", int(total))
	}

	log.Println("Done.")
}
