package router

import (
	"database/sql"
	"net/http"
	"os"

	"pet-adoption-hub/internal/adapters/media/localfs"
	"pet-adoption-hub/internal/adapters/queue/memqueue"
	"pet-adoption-hub/internal/adapters/queue/redisqueue"
	mem "pet-adoption-hub/internal/adapters/storage/memory"
	pg "pet-adoption-hub/internal/adapters/storage/postgres"
	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/notifications"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/middleware"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/ports/mailq"

	_ "pet-adoption-hub/docs" // doc.json generado por swag

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: cola de emails. Si no viene, intenta Redis por env
	// (REDIS_ADDR) y cae a memoria.
	Mail mailq.Queue

	// Opcional: borrado de imágenes al retirar publicaciones. Si no viene,
	// se arma desde UPLOADS_DIR (vacío = no se borra nada).
	Images adoptions.ImageRemover

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		petRepo   pets.Repository
		noteRepo  notifications.Repository
		lifecycle adoptions.Store
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, falling back to memory", map[string]any{"err": err.Error()})
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		noteRepo = pg.NewNotificationsRepo(db)
		lifecycle = pg.NewLifecycleStore(db)
	} else {
		// Un solo store compartido: las tres vistas ven los mismos mapas,
		// si no el motor de adopciones no vería las mascotas creadas.
		store := mem.New()
		petRepo = store.Pets()
		noteRepo = store.Notifications()
		lifecycle = store.Adoptions()
	}

	mail := opts.Mail
	if mail == nil {
		if os.Getenv("REDIS_ADDR") != "" {
			rq, err := redisqueue.NewFromEnv(log)
			if err != nil {
				log.Warn("redis queue unavailable, falling back to memory", map[string]any{"err": err.Error()})
			} else {
				mail = rq
			}
		}
		if mail == nil {
			mail = memqueue.New()
		}
	}

	images := opts.Images
	if images == nil {
		if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
			images = localfs.New(dir)
		}
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	notesSvc := notifications.NewService(noteRepo)
	adoptionsSvc := adoptions.NewService(lifecycle, mail, images, log)

	// Rutas por módulo. adoptions registra también las rutas de ciclo de
	// vida sobre /pets/{petID} (requests, relist, delete).
	pets.RegisterRoutes(r, petsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	notifications.RegisterRoutes(r, notesSvc)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
