package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"goship/config"
	"goship/internal/pkg/cache"
	"goship/internal/pkg/database"
	"goship/internal/pkg/logger"
	"goship/internal/pkg/token"

	// Camadas de apresentação
	"goship/internal/api/employee"
	"goship/internal/api/returncase"
	"goship/internal/api/returndetail"
	"goship/internal/api/router"
	"goship/internal/api/shipment"
	"goship/internal/api/shipmentstatus"
	"goship/internal/api/shippingmethod"
	"goship/internal/api/warehouse"
	"goship/internal/api/warehouselog"

	// Acesso a dados
	"goship/internal/repository/employeerepo"
	"goship/internal/repository/methodrepo"
	"goship/internal/repository/returndetailrepo"
	"goship/internal/repository/returnrepo"
	"goship/internal/repository/shipmentrepo"
	"goship/internal/repository/statusrepo"
	"goship/internal/repository/warehouselogrepo"
	"goship/internal/repository/warehouserepo"

	// Lógica de negócio
	"goship/internal/service/employeeservice"
	"goship/internal/service/methodservice"
	"goship/internal/service/returndetailservice"
	"goship/internal/service/returnservice"
	"goship/internal/service/shipmentservice"
	"goship/internal/service/statusservice"
	"goship/internal/service/warehouselogservice"
	"goship/internal/service/warehouseservice"
)

func main() {
	// 1. Configuração e Inicialização
	stdlog.Println("⚡ Inicializando serviço GoShip...")

	// O godotenv.Load() procura por um arquivo .env na raiz. Se não existir,
	// seguimos em frente: as variáveis podem vir do ambiente (ex: Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.DBConnectRetries, cfg.DBConnectDelay)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis), backend do rate limiter
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// C. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios (Camada de Acesso a Dados)
	employeeRepo := employeerepo.NewEmployeeRepository(db, cfg.DBTimeout, log)
	methodRepo := methodrepo.NewMethodRepository(db, cfg.DBTimeout, log)
	warehouseRepo := warehouserepo.NewWarehouseRepository(db, cfg.DBTimeout, log)
	shipmentRepo := shipmentrepo.NewShipmentRepository(db, cfg.DBTimeout, log)
	statusRepo := statusrepo.NewStatusRepository(db, cfg.DBTimeout, log)
	returnRepo := returnrepo.NewReturnRepository(db, cfg.DBTimeout, log)
	detailRepo := returndetailrepo.NewReturnDetailRepository(db, cfg.DBTimeout, log)
	logRepo := warehouselogrepo.NewWarehouseLogRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços (Camada de Lógica de Negócio)
	employeeSvc := employeeservice.NewService(employeeRepo, tokenSvc, log)
	methodSvc := methodservice.NewService(methodRepo, log)
	warehouseSvc := warehouseservice.NewService(warehouseRepo, log)
	shipmentSvc := shipmentservice.NewService(shipmentRepo, methodRepo, statusRepo, log)
	statusSvc := statusservice.NewService(statusRepo, shipmentRepo, employeeRepo, log)
	returnSvc := returnservice.NewService(returnRepo, shipmentRepo, log)
	detailSvc := returndetailservice.NewService(detailRepo, returnRepo, log)
	warehouseLogSvc := warehouselogservice.NewService(logRepo, warehouseRepo, employeeRepo, log)
	log.Debug("Serviços inicializados.", nil)

	// C. Handlers (Camada de Apresentação)
	handlers := router.Handlers{
		Employee:     employee.NewHandler(employeeSvc, log),
		Method:       shippingmethod.NewHandler(methodSvc, log),
		Warehouse:    warehouse.NewHandler(warehouseSvc, log),
		Shipment:     shipment.NewHandler(shipmentSvc, log),
		Status:       shipmentstatus.NewHandler(statusSvc, log),
		Return:       returncase.NewHandler(returnSvc, log),
		ReturnDetail: returndetail.NewHandler(detailSvc, log),
		WarehouseLog: warehouselog.NewHandler(warehouseLogSvc, log),
	}
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, log, cacheClient, router.RateLimit{
		MaxRequests: cfg.RateLimitMaxRequests,
		Period:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoShip ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
