package app

import (
	"database/sql"

	"go-payroll/internal/company"
	"go-payroll/internal/holiday"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/timesheet"
	"go-payroll/internal/unitrecord"
	"go-payroll/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// migrate creates or updates every table the API and the background
// processes touch.
func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&company.Company{},
		&counter.CompanyCounter{},
		&worker.Worker{},
		&holiday.Holiday{},
		&timesheet.Timesheet{},
		&leave.LeaveType{},
		&leave.LeaveBalance{},
		&leave.LeaveRequest{},
		&unitrecord.UnitRecord{},
		&payroll.Record{},
	); err != nil {
		return err
	}
	return kafka.AutoMigrate(gormDB)
}

// modules is the service graph shared by the API, the worker and the
// consumer processes. Handlers are built on top of it by registerModules.
type modules struct {
	rbac       rbac.Service
	companies  company.Service
	workers    worker.Service
	holidays   holiday.Service
	timesheets timesheet.Service
	leaves     leave.Service
	units      unitrecord.Service
	payroll    payroll.Service
}

func buildModules(db *sql.DB, gormDB *gorm.DB, rdb *redis.Client, logger *zap.Logger) (*modules, error) {
	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	workerRepo := worker.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	unitRepo := unitrecord.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultRules(), logger)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	companyService := company.NewService(companyRepo, rbacService, rdb, logger)
	calendar := holiday.NewCalendar(holidayRepo, rdb, logger)
	workerService := worker.NewService(db, workerRepo, counterRepo, outboxRepo, companyService, rbacService, logger)
	timesheetService := timesheet.NewService(db, timesheetRepo, outboxRepo, workerRepo, companyService, calendar, rbacService, logger)
	holidayService := holiday.NewService(holidayRepo, calendar, timesheetService, rbacService, logger)
	leaveService := leave.NewService(db, leaveRepo, workerRepo, timesheetService, rbacService, logger)
	unitService := unitrecord.NewService(unitRepo, workerRepo, rbacService, logger)

	calculators := payroll.NewCalculators(calendar, leaveService, timesheetRepo, unitRepo, logger)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, workerRepo, companyService, calculators, rbacService, logger)

	return &modules{
		rbac:       rbacService,
		companies:  companyService,
		workers:    workerService,
		holidays:   holidayService,
		timesheets: timesheetService,
		leaves:     leaveService,
		units:      unitService,
		payroll:    payrollService,
	}, nil
}

func registerModules(
	router *gin.Engine,
	m *modules,
	rdb *redis.Client,
	jwtSecret string,
	logger *zap.Logger,
) {
	// --- Handlers ---
	companyHandler := company.NewHandler(m.companies, logger)
	workerHandler := worker.NewHandler(m.workers, logger)
	holidayHandler := holiday.NewHandler(m.holidays)
	timesheetHandler := timesheet.NewHandler(m.timesheets, logger)
	leaveHandler := leave.NewHandler(m.leaves, logger)
	unitHandler := unitrecord.NewHandler(m.units)
	payrollHandler := payroll.NewHandler(m.payroll, logger)
	rbacHandler := rbac.NewHandler(m.rbac)

	authenticated := []gin.HandlerFunc{
		middleware.AuthMiddleware(jwtSecret),
		middleware.ContextLogger(logger),
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler, m.rbac, authenticated...)
		worker.RegisterRoutes(api, workerHandler, m.rbac, authenticated...)
		holiday.RegisterRoutes(api, holidayHandler, m.rbac, authenticated...)
		timesheet.RegisterRoutes(api, timesheetHandler, m.rbac, authenticated...)
		leave.RegisterRoutes(api, leaveHandler, m.rbac, authenticated...)
		unitrecord.RegisterRoutes(api, unitHandler, m.rbac, authenticated...)
		payroll.RegisterRoutes(api, payrollHandler, m.rbac, middleware.Idempotency(rdb, logger), authenticated...)
		rbac.RegisterRoutes(api, rbacHandler, authenticated...)
	}
}
