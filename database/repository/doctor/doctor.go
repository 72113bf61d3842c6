package doctorRepo

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

// DoctorRepository defines methods for doctor data access.
type DoctorRepository interface {
	// GetByID retrieves a doctor by its unique ID.
	GetByID(id string) (*models.Doctor, error)
	// GetByEmail retrieves a doctor by its email address.
	GetByEmail(email string) (*models.Doctor, error)
	// GetAll retrieves all doctors.
	GetAll() ([]models.Doctor, error)
	// GetApproved retrieves all approved doctors, optionally filtered by specialization.
	GetApproved(specialization string) ([]models.Doctor, error)
	// Create inserts a new doctor record.
	Create(doctor *models.Doctor) error
	// Update modifies an existing doctor record.
	Update(doctor *models.Doctor) error
	// UpdateSetDocument applies a partial $set update by ID.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a doctor record by its ID.
	Delete(id string) error
	// Count returns the number of doctor records matching the filter.
	Count(filter bson.M) (int64, error)
}

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	coll := database.DB().Collection("doctors")
	repo := &MongoDoctorRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create doctor indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoDoctorRepo) ensureIndexes() error {
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
		{
			Keys:    bson.D{{Key: "specialization", Value: 1}, {Key: "approved", Value: 1}},
			Options: options.Index().SetName("specialization_approved_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create doctor indexes: %w", err)
	}
	return nil
}
