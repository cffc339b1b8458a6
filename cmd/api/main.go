package main

import (
	"fmt"
	"net/http"

	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/config"
	appHTTP "github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/handler/http"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/pkg/database"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/pkg/jwt"
	"github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/repository/postgresql"
	payrollService "github.com/adityacpuu-stack/peoplehub-backend-sub001/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, cfg.App.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
