package models

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gorm_zerolog "github.com/wei840222/gorm-zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

// Connect opens the database and migrates all models.
//
// If DB_HOST is set, a postgresql connection is established,
// otherwise the sqlite database at the dsn path is used.
func Connect(dsn string) error {
	var err error
	var db *gorm.DB

	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: gorm_zerolog.New(),
	}

	// Check which database driver to use. If DB_HOST is set, assume postgresql
	_, ok := os.LookupEnv("DB_HOST")
	if ok {
		log.Debug().Msg("DB_HOST is set, using postgresql")
		pgDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
		db, err = gorm.Open(postgres.Open(pgDSN), config)
	} else {
		log.Debug().Msg("DB_HOST is not set, using sqlite database")
		db, err = gorm.Open(sqlite.Open(dsn), config)
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	// Query callbacks
	err = db.Callback().Query().After("*").Register("fpda:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("fpda:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("fpda:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("fpda:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("fpda:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("fpda:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("fpda:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		Location{}, ItemCategory{}, Unit{}, Item{}, Supplier{},
		RecipeType{}, RecipeItem{},
		Schedule{}, Requirement{},
		DayRequirement{}, DayRequirementLine{},
		DailyStock{}, Allocation{}, Delivery{},
		MaterialReceipt{}, SupplierRequest{}, SupplierRequestLine{},
		CleaningLog{},
		User{}, AppModule{}, Permission{},
	)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// uniqueViolations maps unique index violations to the sentinel
// error for the resource.
var uniqueViolations = map[string]error{
	"locations.name":       ErrLocationNameNotUnique,
	"item_categories.name": ErrCategoryNameNotUnique,
	"units.short":          ErrUnitShortNotUnique,
	"items.name":           ErrItemNameNotUnique,
	"suppliers.name":       ErrSupplierNameNotUnique,
	"recipe_types.name":    ErrRecipeTypeNameNotUnique,
	"recipe_items.recipe_type_id, recipe_items.item_id":                                      ErrRecipeItemNotUnique,
	"schedules.date, schedules.recipe_type_id":                                               ErrScheduleNotUnique,
	"requirements.date, requirements.location_id":                                            ErrRequirementNotUnique,
	"day_requirements.date, day_requirements.recipe_type_id, day_requirements.purchase_type": ErrDayRequirementNotUnique,
	"daily_stocks.date":                         ErrDailyStockNotUnique,
	"allocations.date, allocations.location_id": ErrAllocationNotUnique,
	"deliveries.date, deliveries.location_id":   ErrDeliveryNotUnique,
	"users.name": ErrUserNameTaken,
	"app_modules.name, app_modules.sub_module_name": ErrAppModuleNotUnique,
	"permissions.user_id, permissions.module_id":    ErrPermissionNotUnique,
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	for columns, sentinel := range uniqueViolations {
		if strings.Contains(db.Error.Error(), fmt.Sprintf("UNIQUE constraint failed: %s", columns)) {
			db.Error = sentinel
			return
		}
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}
