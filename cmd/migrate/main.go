package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/ivo225/fplhelper-sub000/internal/engine"
	"github.com/ivo225/fplhelper-sub000/internal/models"
	"github.com/ivo225/fplhelper-sub000/pkg/config"
	"github.com/ivo225/fplhelper-sub000/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	// Legacy tables carried the player reference as element_id. Rename it
	// before AutoMigrate so the canonical player_id column keeps the data.
	migrator := db.Migrator()
	if migrator.HasTable(&models.Recommendation{}) &&
		migrator.HasColumn(&models.Recommendation{}, "element_id") &&
		!migrator.HasColumn(&models.Recommendation{}, "player_id") {
		if err := migrator.RenameColumn(&models.Recommendation{}, "element_id", "player_id"); err != nil {
			return err
		}
		logrus.Info("Renamed legacy element_id column to player_id")
	}

	return db.AutoMigrate(&models.Recommendation{})
}

func dropTables(db *database.DB) error {
	return db.Migrator().DropTable(&models.Recommendation{})
}

func seedData(db *database.DB) error {
	now := time.Now().UTC()
	tags, _ := json.Marshal([]string{"easier upcoming fixtures", "better current form"})

	rows := []models.Recommendation{
		{
			Gameweek:      1,
			Kind:          engine.KindBuy,
			PlayerID:      427,
			PlayerName:    "Haaland",
			Team:          13,
			Position:      int(engine.Forward),
			Price:         151,
			Form:          "8.5",
			Reason:        "Form 8.5 with 4 upcoming fixtures",
			Confidence:    0.92,
			FixtureScore:  2.4,
			CombinedScore: 5.6,
			RationaleTags: datatypes.JSON(tags),
			CreatedAt:     now,
		},
		{
			Gameweek:   1,
			Kind:       engine.KindSell,
			PlayerID:   310,
			PlayerName: "Trippier",
			Team:       15,
			Position:   int(engine.Defender),
			Price:      65,
			Form:       "1.8",
			Reason:     "Poor recent form (1.8)",
			Confidence: 0.5,
			CreatedAt:  now,
		},
		{
			Gameweek:        1,
			Kind:            engine.KindCaptain,
			PlayerID:        427,
			PlayerName:      "Haaland",
			Team:            13,
			Position:        int(engine.Forward),
			Rank:            1,
			PredictedPoints: 8.4,
			Confidence:      0.92,
			CreatedAt:       now,
		},
	}

	return db.Create(&rows).Error
}
