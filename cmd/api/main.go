package main

import (
	"log"
	"time"

	"oliveleos/internal/config"
	"oliveleos/internal/domain/model"
	"oliveleos/internal/handler"
	"oliveleos/internal/infra/db"
	infraRepo "oliveleos/internal/infra/repository"
	"oliveleos/internal/server"
	"oliveleos/internal/usecase"
	"oliveleos/internal/validator"

	"github.com/joho/godotenv"
)

// 初回導入（implantation）カートに投入するスターターアソートメント。
// SKUとMOQに揃えた初期数量。カタログに無いSKUはスキップされる。
var starterAssortment = usecase.ImplantationAssortment{
	{SKU: "HN100OL20", Quantity: 3},
	{SKU: "BT100OL20", Quantity: 3},
	{SKU: "SP030OL20", Quantity: 3},
	{SKU: "CC050OL20", Quantity: 3},
	{SKU: "EM075OL20", Quantity: 3},
	{SKU: "MH075OL20", Quantity: 3},
	{SKU: "BR005OL20", Quantity: 6},
	{SKU: "HS100OL20", Quantity: 3},
	{SKU: "SS080OL25", Quantity: 6},
	{SKU: "SE290OL25", Quantity: 3},
	{SKU: "ER500OL25", Quantity: 3},
	{SKU: "SH290OL25", Quantity: 3},
}

func main() {
	//.envはローカル開発用。無くても環境変数があれば動く。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Product{},
		&model.Pharmacy{},
		&model.PharmacyNote{},
		&model.Cart{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderLine{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	pharmacyRepo := infraRepo.NewPharmacyGormRepository(gormDB)
	noteRepo := infraRepo.NewPharmacyNoteGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartLineRepo := infraRepo.NewCartLineGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, authValidator)
	productUC := usecase.NewProductUsecase(productRepo, auditRepo)
	pharmacyUC := usecase.NewPharmacyUsecase(pharmacyRepo, noteRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartLineRepo, productRepo, pharmacyRepo, starterAssortment)
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, time.Now)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	reportUC := usecase.NewReportUsecase(reportRepo)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, cfg)
	productH := handler.NewProductHandler(productUC)
	adminProductH := handler.NewAdminProductHandler(productUC)
	pharmacyH := handler.NewPharmacyHandler(pharmacyUC)
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(orderUC)
	adminOrderH := handler.NewAdminOrderHandler(adminOrderUC)
	adminUserH := handler.NewAdminUserHandler(authUC, userRepo)
	reportH := handler.NewReportHandler(reportUC)

	//Server起動
	e := server.New(cfg)
	server.RegisterRoutes(e, cfg, userRepo,
		authH,
		productH,
		adminProductH,
		pharmacyH,
		cartH,
		orderH,
		adminOrderH,
		adminUserH,
		reportH,
	)

	if err := server.Start(e, cfg); err != nil {
		log.Fatal(err)
	}
}
