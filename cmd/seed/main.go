// seed puebla la base de datos con datos de arranque del CPR: un operador
// admin, el catálogo mínimo de artículos y ubicaciones, y una elaboración
// de ejemplo con su escandallo. Pensado para entornos de desarrollo.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el servidor (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cpr-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cpr-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	stmts := []struct {
		desc  string
		query string
		args  []any
	}{
		{
			"operador admin",
			`INSERT INTO users (id, email, password_hash, nombre, rol, estado, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, 'admin', 'active', now(), now())
			 ON CONFLICT (email) DO NOTHING`,
			[]any{uuid.New().String(), "admin@cpr.local", string(hash), "Administrador"},
		},
		{
			"ubicaciones",
			`INSERT INTO ubicaciones (id, nombre) VALUES
			 ('UBI_SECO', 'Almacén seco'),
			 ('UBI_FRIO', 'Cámara refrigerada'),
			 ('UBI_CONG', 'Cámara de congelados')
			 ON CONFLICT (id) DO NOTHING`,
			nil,
		},
		{
			"articulos",
			`INSERT INTO articulos (id, nombre, unidad, coste_unitario) VALUES
			 ('ART_HARINA', 'Harina de trigo', 'kg', 0.85),
			 ('ART_TOMATE', 'Tomate triturado', 'kg', 1.40),
			 ('ART_ACEITE', 'Aceite de oliva', 'l', 6.20),
			 ('ART_POLLO', 'Pechuga de pollo', 'kg', 7.50)
			 ON CONFLICT (id) DO NOTHING`,
			nil,
		},
		{
			"stock inicial",
			`INSERT INTO stock (articulo_id, ubicacion_id, cantidad) VALUES
			 ('ART_HARINA', 'UBI_SECO', 120),
			 ('ART_TOMATE', 'UBI_SECO', 80),
			 ('ART_ACEITE', 'UBI_SECO', 40),
			 ('ART_POLLO', 'UBI_FRIO', 60)
			 ON CONFLICT (articulo_id, ubicacion_id) DO NOTHING`,
			nil,
		},
		{
			"elaboracion de ejemplo",
			`INSERT INTO elaboraciones (id, nombre, produccion_total, unidad_produccion, partida_produccion, tipo_expedicion) VALUES
			 ('ELAB_POLLO_TOMATE', 'Pollo en salsa de tomate', 10, 'kg', 'CALIENTE', 'REFRIGERADO')
			 ON CONFLICT (id) DO NOTHING`,
			nil,
		},
		{
			"escandallo",
			`INSERT INTO elaboracion_componentes (elaboracion_id, componente_id, cantidad, unidad) VALUES
			 ('ELAB_POLLO_TOMATE', 'ART_POLLO', 8, 'kg'),
			 ('ELAB_POLLO_TOMATE', 'ART_TOMATE', 3, 'kg'),
			 ('ELAB_POLLO_TOMATE', 'ART_ACEITE', 0.5, 'l')
			 ON CONFLICT (elaboracion_id, componente_id) DO NOTHING`,
			nil,
		},
	}

	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s.query, s.args...); err != nil {
			fmt.Fprintf(os.Stderr, "seed %s: %v\n", s.desc, err)
			os.Exit(1)
		}
		fmt.Printf("seed %s: ok\n", s.desc)
	}
}
