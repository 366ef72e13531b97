package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/attendance/route"
	batchRoute "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/route"
	examRoute "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/route"
	feeRoute "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/fees/route"
	onlineExamRoute "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/online_exams/route"
	smsRoute "github.com/nillpakhi2003-droid/saroyarsir/internals/features/sms/route"
	authRoute "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/auth/route"
	userRoute "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/route"
)

// SetupRoutes mounts every feature under /api. A single validator instance
// is shared across controllers.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()

	authRoute.AuthRoutes(app, db)
	examRoute.ExamRoutes(app, db, v)
	feeRoute.FeeRoutes(app, db, v)

	api := app.Group("/api")
	userRoute.UserRoutes(api, db, v)
	batchRoute.BatchRoutes(api, db, v)
	attendanceRoute.AttendanceRoutes(api, db, v)
	onlineExamRoute.OnlineExamRoutes(api, db, v)
	smsRoute.SMSRoutes(api, db, v)
}
