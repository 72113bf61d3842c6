package patientRepo

import (
	"context"
	"fmt"
	"time"

	"medicore/database"
	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PatientRepository defines methods for patient data access.
type PatientRepository interface {
	// GetByID retrieves a patient by its unique ID.
	GetByID(id string) (*models.Patient, error)
	// GetByEmail retrieves a patient by its email address.
	GetByEmail(email string) (*models.Patient, error)
	// GetAll retrieves all patients.
	GetAll() ([]models.Patient, error)
	// Create inserts a new patient record.
	Create(patient *models.Patient) error
	// Update modifies an existing patient record.
	Update(patient *models.Patient) error
	// UpdateSetDocument applies a partial $set update by ID.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a patient record by its ID.
	Delete(id string) error
	// Count returns the number of patient records.
	Count() (int64, error)
}

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo creates a new instance of PatientRepository using MongoDB.
func NewMongoPatientRepo() PatientRepository {
	coll := database.DB().Collection("patients")
	repo := &MongoPatientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create patient indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoPatientRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create patient indexes: %w", err)
	}
	return nil
}
