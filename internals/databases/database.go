package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nillpakhi2003-droid/saroyarsir/internals/configs"
	attendanceModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/attendance/model"
	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	examModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/model"
	feeModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/fees/model"
	onlineExamModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/online_exams/model"
	smsModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/sms/model"
	authModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/auth/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=saroyarsir",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer friendly
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate keeps the schema in sync. Safe to run on every boot; AutoMigrate
// only adds what is missing.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.UserSessionModel{},
		&batchModel.BatchModel{},
		&feeModel.FeeModel{},
		&examModel.MonthlyExamModel{},
		&examModel.IndividualExamModel{},
		&examModel.MonthlyMarkModel{},
		&examModel.MonthlyRankingModel{},
		&onlineExamModel.OnlineExamModel{},
		&onlineExamModel.OnlineQuestionModel{},
		&attendanceModel.AttendanceModel{},
		&smsModel.SettingModel{},
	)
}
