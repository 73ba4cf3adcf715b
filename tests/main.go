package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seed tool: wipes and repopulates the doctors, patients and appointments
// collections with deterministic demo data for manual testing.
func main() {
	config.LoadConfig()
	database.InitDB()
	client := database.MongoClient
	db := client.Database(config.AppConfig.DatabaseName)
	doctorColl := db.Collection("doctors")
	patientColl := db.Collection("patients")
	apptColl := db.Collection("appointments")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Clear existing data.
	if _, err := doctorColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear doctors collection: %v", err)
	}
	if _, err := patientColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear patients collection: %v", err)
	}
	if _, err := apptColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear appointments collection: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	specialties := [][]string{
		{"cardiology"},
		{"dermatology"},
		{"pediatrics", "general medicine"},
		{"orthopedics"},
		{"neurology"},
	}

	var doctors []interface{}
	var doctorIDs []string
	for i, specs := range specialties {
		id := uuid.New().String()
		doctorIDs = append(doctorIDs, id)
		doctors = append(doctors, models.Doctor{
			ID:           id,
			Name:         fmt.Sprintf("Dr. Demo %d", i+1),
			Email:        fmt.Sprintf("doctor%d@medibook.test", i+1),
			PasswordHash: string(hash),
			Specialties:  specs,
			Experience:   5 + i,
			Age:          35 + i,
			ConsultationFees: models.ConsultationFees{
				Online:   500,
				Physical: 800,
			},
			CreatedAt: time.Now().UTC(),
		})
	}
	if _, err := doctorColl.InsertMany(ctx, doctors); err != nil {
		log.Fatalf("Failed to seed doctors: %v", err)
	}

	var patients []interface{}
	genders := []string{"male", "female", "other"}
	for i := 0; i < 10; i++ {
		patients = append(patients, models.Patient{
			ID:           uuid.New().String(),
			Name:         fmt.Sprintf("Patient Demo %d", i+1),
			Email:        fmt.Sprintf("patient%d@medibook.test", i+1),
			PasswordHash: string(hash),
			Age:          20 + i*3,
			Phone:        fmt.Sprintf("98765432%02d", i),
			Gender:       genders[i%len(genders)],
			Address:      fmt.Sprintf("%d Demo Street", i+1),
			CreatedAt:    time.Now().UTC(),
			UpdatedAt:    time.Now().UTC(),
		})
	}
	if _, err := patientColl.InsertMany(ctx, patients); err != nil {
		log.Fatalf("Failed to seed patients: %v", err)
	}

	// Open slots for the next 7 days: 09:00-12:00 at 30-minute intervals.
	var slots []interface{}
	today := time.Now().UTC()
	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, doctorID := range doctorIDs {
		for d := 0; d < 7; d++ {
			day := startOfDay.AddDate(0, 0, d)
			for hour := 9; hour < 12; hour++ {
				for _, minute := range []int{0, 30} {
					slots = append(slots, models.Appointment{
						ID:        uuid.New().String(),
						DoctorID:  doctorID,
						Date:      day,
						Time:      fmt.Sprintf("%02d:%02d", hour, minute),
						Status:    models.StatusAvailable,
						CreatedAt: time.Now().UTC(),
						UpdatedAt: time.Now().UTC(),
					})
				}
			}
		}
	}
	if _, err := apptColl.InsertMany(ctx, slots); err != nil {
		log.Fatalf("Failed to seed appointments: %v", err)
	}

	fmt.Printf("Seeded %d doctors, %d patients and %d open slots.\n", len(doctors), len(patients), len(slots))
	fmt.Println("All seed accounts use password: password123")
}
