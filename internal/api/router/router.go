package router

import (
	"encoding/json"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"goship/internal/api/employee"
	"goship/internal/api/returncase"
	"goship/internal/api/returndetail"
	"goship/internal/api/shipment"
	"goship/internal/api/shipmentstatus"
	"goship/internal/api/shippingmethod"
	"goship/internal/api/warehouse"
	"goship/internal/api/warehouselog"
	"goship/internal/pkg/cache"
	"goship/internal/pkg/logger"
	"goship/internal/pkg/middleware"
)

// Handlers agrupa os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	Employee     *employee.Handler
	Method       *shippingmethod.Handler
	Warehouse    *warehouse.Handler
	Shipment     *shipment.Handler
	Status       *shipmentstatus.Handler
	Return       *returncase.Handler
	ReturnDetail *returndetail.Handler
	WarehouseLog *warehouselog.Handler
}

// RateLimit carrega os parâmetros do middleware de limitação de requisições.
type RateLimit struct {
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Cada grupo registra o caminho exato (busca filtrada) e a subárvore com
// barra (listagem, criação e operações por ID).
func NewRouter(h Handlers, log logger.Logger, cacheClient cache.Client, rl RateLimit) http.Handler {
	mux := http.NewServeMux()

	// Health check e banner da API
	mux.HandleFunc("/ping", PingHandler)
	mux.HandleFunc("/", RootHandler)

	// Documentação interativa (Swagger UI)
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Empleados (o login é mais específico que a subárvore /empleado/)
	mux.HandleFunc("/empleado", h.Employee.CollectionHandler)
	mux.HandleFunc("/empleado/", h.Employee.ResourceHandler)
	mux.HandleFunc("/empleado/login", h.Employee.LoginHandler)

	// Métodos de envio
	mux.HandleFunc("/metodo_envio", h.Method.CollectionHandler)
	mux.HandleFunc("/metodo_envio/", h.Method.ResourceHandler)

	// Bodegas
	mux.HandleFunc("/bodega", h.Warehouse.CollectionHandler)
	mux.HandleFunc("/bodega/", h.Warehouse.ResourceHandler)

	// Envios (o rastreamento é mais específico que a subárvore /envio/)
	mux.HandleFunc("/envio", h.Shipment.CollectionHandler)
	mux.HandleFunc("/envio/", h.Shipment.ResourceHandler)
	mux.HandleFunc("/envio/track/", h.Shipment.TrackShipmentHandler)

	// Estados de envio
	mux.HandleFunc("/estado_envio", h.Status.CollectionHandler)
	mux.HandleFunc("/estado_envio/", h.Status.ResourceHandler)

	// Devoluções e seus detalhes
	mux.HandleFunc("/devolucion", h.Return.CollectionHandler)
	mux.HandleFunc("/devolucion/", h.Return.ResourceHandler)
	mux.HandleFunc("/devolucion_detalle", h.ReturnDetail.CollectionHandler)
	mux.HandleFunc("/devolucion_detalle/", h.ReturnDetail.ResourceHandler)

	// Logs de bodega
	mux.HandleFunc("/log_bodega", h.WarehouseLog.CollectionHandler)
	mux.HandleFunc("/log_bodega/", h.WarehouseLog.ResourceHandler)

	// Middlewares globais aplicados de fora para dentro: log da requisição,
	// limitação por IP via Redis e, por último, CORS.
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.RateLimiter(cacheClient, rl.MaxRequests, rl.Period)(handler)
	handler = middleware.RequestLogger(log)(handler)

	return handler
}

// PingHandler é o health check do serviço.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// RootHandler devolve o banner da API na raiz. Como "/" é a rota pega-tudo
// do ServeMux, qualquer caminho desconhecido cai aqui e recebe 404.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Logistics Service API - Sistema de gestión de envíos y logística",
	})
}
